// Package service implements the application services of the miniblog panel:
// authentication, users, posts, categories, comments, settings, statistics
// and audit logging. Services are constructed once at startup with their
// database handle and shared by the controllers.
package service

import (
	"strconv"
	"time"

	"miniblog/database/model"
	"miniblog/util/common"
	"miniblog/util/random"
	"miniblog/web/entity"

	"gorm.io/gorm"
)

// defaultValueMap holds the fallback for every known setting key. Secrets
// are generated once per process and persisted on first read.
var defaultValueMap = map[string]string{
	"webListen":     "",
	"webDomain":     "",
	"webPort":       "8080",
	"webCertFile":   "",
	"webKeyFile":    "",
	"webBasePath":   "/",
	"sessionMaxAge": "60",
	"pageSize":      "5",
	"timeLocation":  "UTC",
	"secret":        random.Seq(32),
	"jwtSecret":     random.Seq(32),
	"auditLogDays":  "90",
}

type SettingService struct {
	DB *gorm.DB
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{DB: db}
}

func (s *SettingService) getSetting(key string) (string, error) {
	setting := &model.Setting{}
	err := s.DB.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err == gorm.ErrRecordNotFound {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", err
		}
		return value, s.saveSetting(key, value)
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting := &model.Setting{}
	err := s.DB.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err == gorm.ErrRecordNotFound {
		return s.DB.Create(&model.Setting{Key: key, Value: value}).Error
	} else if err != nil {
		return err
	}
	setting.Value = value
	return s.DB.Save(setting).Error
}

func (s *SettingService) getInt(key string) (int, error) {
	value, err := s.getSetting(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.saveSetting(key, strconv.Itoa(value))
}

func (s *SettingService) GetListen() (string, error) {
	return s.getSetting("webListen")
}

func (s *SettingService) GetWebDomain() (string, error) {
	return s.getSetting("webDomain")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) SetPort(port int) error {
	return s.setInt("webPort", port)
}

func (s *SettingService) GetCertFile() (string, error) {
	return s.getSetting("webCertFile")
}

func (s *SettingService) GetKeyFile() (string, error) {
	return s.getSetting("webKeyFile")
}

func (s *SettingService) GetBasePath() (string, error) {
	basePath, err := s.getSetting("webBasePath")
	if err != nil {
		return "", err
	}
	if basePath == "" {
		basePath = "/"
	}
	if basePath[0] != '/' {
		basePath = "/" + basePath
	}
	if basePath[len(basePath)-1] != '/' {
		basePath += "/"
	}
	return basePath, nil
}

func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) GetPageSize() (int, error) {
	return s.getInt("pageSize")
}

// GetSecret returns the cookie-store secret, generating one on first use.
func (s *SettingService) GetSecret() (string, error) {
	return s.getSetting("secret")
}

// GetJWTSecret returns the token signing secret, generating one on first use.
func (s *SettingService) GetJWTSecret() (string, error) {
	return s.getSetting("jwtSecret")
}

func (s *SettingService) GetAuditLogDays() (int, error) {
	return s.getInt("auditLogDays")
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.getSetting("timeLocation")
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(l)
	if err != nil {
		defaultLocation := defaultValueMap["timeLocation"]
		location, err = time.LoadLocation(defaultLocation)
		if err != nil {
			return nil, common.NewErrorf("time location %q not exist", l)
		}
	}
	return location, nil
}

func (s *SettingService) GetAllSetting() (*entity.AllSetting, error) {
	all := &entity.AllSetting{}
	var err error
	if all.WebListen, err = s.GetListen(); err != nil {
		return nil, err
	}
	if all.WebDomain, err = s.GetWebDomain(); err != nil {
		return nil, err
	}
	if all.WebPort, err = s.GetPort(); err != nil {
		return nil, err
	}
	if all.WebCertFile, err = s.GetCertFile(); err != nil {
		return nil, err
	}
	if all.WebKeyFile, err = s.GetKeyFile(); err != nil {
		return nil, err
	}
	if all.WebBasePath, err = s.GetBasePath(); err != nil {
		return nil, err
	}
	if all.SessionMaxAge, err = s.GetSessionMaxAge(); err != nil {
		return nil, err
	}
	if all.PageSize, err = s.GetPageSize(); err != nil {
		return nil, err
	}
	if all.TimeLocation, err = s.getSetting("timeLocation"); err != nil {
		return nil, err
	}
	if all.AuditLogDays, err = s.GetAuditLogDays(); err != nil {
		return nil, err
	}
	return all, nil
}

// ResetSettings drops every stored setting, falling back to defaults.
func (s *SettingService) ResetSettings() error {
	return s.DB.Where("1 = 1").Delete(model.Setting{}).Error
}

// Package config exposes build metadata and process-level configuration for
// the miniblog panel. Runtime settings that users may change live in the
// database (see web/service.SettingService); everything here comes from the
// environment or an optional TOML file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// FileConfig is the optional TOML override file, pointed to by
// MINIBLOG_CONFIG. Values set here win over the corresponding env vars.
type FileConfig struct {
	DBFolder  string `toml:"dbFolder"`
	LogFolder string `toml:"logFolder"`
	LogLevel  string `toml:"logLevel"`
	Debug     bool   `toml:"debug"`
}

var fileConfig FileConfig

// LoadFile reads the TOML config file if MINIBLOG_CONFIG is set. A missing
// file is not an error; a malformed one is.
func LoadFile() error {
	path := os.Getenv("MINIBLOG_CONFIG")
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return toml.Unmarshal(data, &fileConfig)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	if fileConfig.LogLevel != "" {
		return LogLevel(fileConfig.LogLevel)
	}
	logLevel := os.Getenv("MINIBLOG_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return fileConfig.Debug || os.Getenv("MINIBLOG_DEBUG") == "true"
}

func GetDBFolderPath() string {
	if fileConfig.DBFolder != "" {
		return fileConfig.DBFolder
	}
	dbFolderPath := os.Getenv("MINIBLOG_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/miniblog"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	if fileConfig.LogFolder != "" {
		return fileConfig.LogFolder
	}
	logFolderPath := os.Getenv("MINIBLOG_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// Package entity defines shared data structures used by the web layer of the
// miniblog panel.
package entity

// Msg represents a standard response envelope used by the web panel's AJAX
// endpoints.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// AllSetting contains the user-editable panel settings persisted in the
// settings table.
type AllSetting struct {
	WebListen     string `json:"webListen" form:"webListen"`
	WebDomain     string `json:"webDomain" form:"webDomain"`
	WebPort       int    `json:"webPort" form:"webPort"`
	WebCertFile   string `json:"webCertFile" form:"webCertFile"`
	WebKeyFile    string `json:"webKeyFile" form:"webKeyFile"`
	WebBasePath   string `json:"webBasePath" form:"webBasePath"`
	SessionMaxAge int    `json:"sessionMaxAge" form:"sessionMaxAge"`
	PageSize      int    `json:"pageSize" form:"pageSize"`
	TimeLocation  string `json:"timeLocation" form:"timeLocation"`
	AuditLogDays  int    `json:"auditLogDays" form:"auditLogDays"`
}

// Stats aggregates the counters shown on the moderation dashboards.
type Stats struct {
	TotalPosts    int64 `json:"total_posts"`
	TotalComments int64 `json:"total_comments"`
	TotalUsers    int64 `json:"total_users"`
}

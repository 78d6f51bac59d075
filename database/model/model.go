// Package model defines the database entities of the miniblog panel.
package model

import (
	"time"
)

// Role names recognized by the panel. Authorization semantics over these
// live in web/access.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	Id           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"not null;default:user"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Post struct {
	Id          int        `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	UserId      int        `json:"userId" gorm:"index;not null"`
	Title       string     `json:"title" form:"title" gorm:"not null"`
	Content     string     `json:"content" form:"content" gorm:"not null"`
	IsPublished bool       `json:"isPublished" form:"isPublished" gorm:"not null;default:true"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Categories  []Category `json:"categories" gorm:"many2many:post_categories"`
}

type Category struct {
	Id   int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" form:"name" gorm:"uniqueIndex;not null"`
}

// Comment is soft-deleted: hiding flips IsVisible and leaves the content
// untouched. There is no unhide.
type Comment struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	PostId    int       `json:"postId" gorm:"index;not null"`
	UserId    int       `json:"userId" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"not null"`
	IsVisible bool      `json:"isVisible" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt"`
}

type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key" gorm:"uniqueIndex"`
	Value string `json:"value" form:"value"`
}

type AuditLog struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestId  string    `json:"requestId"`
	UserId     int       `json:"userId" gorm:"index"`
	Username   string    `json:"username"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceId int       `json:"resourceId"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"userAgent"`
	Timestamp  time.Time `json:"timestamp" gorm:"index"`
}

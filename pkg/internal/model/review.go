package model

import (
	"time"

	"gorm.io/gorm"
)

// Review 书籍评论，发布前需审核通过.
type Review struct {
	ID       uint   `gorm:"primaryKey"     json:"id"`
	BookID   uint   `gorm:"index"          json:"book_id"`
	Book     *Book  `json:"book,omitempty"`
	UserID   string `gorm:"size:255;index" json:"user"`
	Rating   int    `json:"rating"`
	Comment  string `gorm:"type:text"      json:"comment"`
	Approved bool   `gorm:"index"          json:"approved"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

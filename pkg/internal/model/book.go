// Package model 定义市场实体的数据库模型.
package model

import (
	"time"

	"gorm.io/gorm"
)

// 书籍状态.
const (
	BookStatusDraft     = "draft"
	BookStatusPublished = "published"
	BookStatusArchived  = "archived"
)

// Book 电子书/有声书.
type Book struct {
	ID       uint   `gorm:"primaryKey"      json:"id"`
	Title    string `gorm:"size:512;index"  json:"title"`
	Author   string `gorm:"size:255;index"  json:"author"`
	Summary  string `gorm:"type:text"       json:"summary"`
	Language string `gorm:"size:32;index"   json:"language"`
	ISBN     string `gorm:"size:32"         json:"isbn"`
	Pages    int    `json:"pages"`

	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	IsFree        bool    `json:"is_free"`

	// 上传网关写入对象存储后回填的 URL
	PDFURL        string `gorm:"size:2048" json:"pdf_url"`
	AudioURL      string `gorm:"size:2048" json:"audio_url"`
	CoverImageURL string `gorm:"size:2048" json:"cover_image_url"`

	Status        string     `gorm:"size:32;index;default:draft" json:"status"`
	CategoryID    *uint      `gorm:"index"                       json:"category_id"`
	Category      *Category  `json:"category,omitempty"`
	PublishedDate *time.Time `json:"published_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Category 书籍分类，如种植、养殖、农机.
type Category struct {
	ID          uint   `gorm:"primaryKey"             json:"id"`
	Name        string `gorm:"size:255;uniqueIndex"   json:"name"`
	Slug        string `gorm:"size:255;uniqueIndex"   json:"slug"`
	Description string `gorm:"type:text"              json:"description"`
	Icon        string `gorm:"size:255"               json:"icon"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

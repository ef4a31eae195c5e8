package model

import (
	"time"

	"gorm.io/gorm"
)

// 课程资料状态.
const (
	CurriculumStatusActive   = "active"
	CurriculumStatusInactive = "inactive"
)

// Curriculum 按邦/年级组织的农业课程资料，正文是上传网关写入的 PDF.
type Curriculum struct {
	ID          uint   `gorm:"primaryKey"     json:"id"`
	Title       string `gorm:"size:512;index" json:"title"`
	Description string `gorm:"type:text"      json:"description"`

	// 资料按邦划分，state 存代码，state_name 存展示名
	State     string `gorm:"size:64;index" json:"state"`
	StateName string `gorm:"size:255"      json:"state_name"`

	Language   string `gorm:"size:64;default:English" json:"language"`
	SchemeName string `gorm:"size:255"                json:"scheme_name"`
	Grade      string `gorm:"size:64"                 json:"grade"`
	Subject    string `gorm:"size:255"                json:"subject"`

	BannerURL     string `gorm:"size:2048" json:"banner_url"`
	PDFURL        string `gorm:"size:2048" json:"pdf_url"`
	CoverImageURL string `gorm:"size:2048" json:"cover_image_url"`

	Status        string     `gorm:"size:32;index;default:active" json:"status"`
	PublishedDate *time.Time `json:"published_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

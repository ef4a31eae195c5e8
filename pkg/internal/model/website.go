package model

import "time"

// WebsiteContent 官网可配置文案，单行表，后台整体读写.
// 列表型字段用 gorm 的 JSON 序列化器落库.
type WebsiteContent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	LogoURL  string `gorm:"size:2048" json:"logo_url"`
	LogoText string `gorm:"size:255"  json:"logo_text"`

	HeroTitle    string `gorm:"size:512"  json:"hero_title"`
	HeroSubtitle string `gorm:"type:text" json:"hero_subtitle"`
	HeroImageURL string `gorm:"size:2048" json:"hero_image_url"`

	StatBooks   int `json:"stat_books"`
	StatAuthors int `json:"stat_authors"`
	StatReaders int `json:"stat_readers"`

	FeaturesTitle    string `gorm:"size:512"  json:"features_title"`
	FeaturesSubtitle string `gorm:"type:text" json:"features_subtitle"`

	FeaturedCategoryIDs []uint `gorm:"serializer:json" json:"featured_category_ids"`
	FeaturedBookIDs     []uint `gorm:"serializer:json" json:"featured_book_ids"`

	AboutTitle       string `gorm:"size:512"  json:"about_title"`
	AboutDescription string `gorm:"type:text" json:"about_description"`

	CTATitle    string `gorm:"size:512"  json:"cta_title"`
	CTASubtitle string `gorm:"type:text" json:"cta_subtitle"`

	FooterDescription string `gorm:"type:text" json:"footer_description"`
	FooterEmail       string `gorm:"size:255"  json:"footer_email"`
	FooterPhone       string `gorm:"size:64"   json:"footer_phone"`
	FooterCopyright   string `gorm:"size:255"  json:"footer_copyright"`

	MetaTitle       string `gorm:"size:512"  json:"meta_title"`
	MetaDescription string `gorm:"type:text" json:"meta_description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

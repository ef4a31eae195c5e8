package types

import "github.com/yeisme/agrivault/pkg/internal/model"

// Pagination 列表分页信息.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListBooksQuery 书籍列表的过滤与分页参数.
type ListBooksQuery struct {
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
	CategoryID uint   `form:"category"`
	Author     string `form:"author"`
	Language   string `form:"language"`
	Search     string `form:"search"`
	// Status 为空时默认只列出已发布的书，传 all 列出全部
	Status string `form:"status"`
}

// ListBooksResponse 书籍列表响应.
type ListBooksResponse struct {
	Books      []model.Book `json:"books"`
	Pagination Pagination   `json:"pagination"`
}

// BookInput 创建/更新书籍的请求体.
type BookInput struct {
	Title         string  `json:"title"            rule:"required"`
	Author        string  `json:"author"`
	Summary       string  `json:"summary"`
	Language      string  `json:"language"`
	ISBN          string  `json:"isbn"`
	Pages         int     `json:"pages"            rule:"min=0"`
	Price         float64 `json:"price"            rule:"gte=0"`
	OriginalPrice float64 `json:"original_price"   rule:"gte=0"`
	IsFree        bool    `json:"is_free"`
	PDFURL        string  `json:"pdf_url"`
	AudioURL      string  `json:"audio_url"`
	CoverImageURL string  `json:"cover_image_url"`
	Status        string  `json:"status"           rule:"omitempty,oneof=draft published archived"`
	CategoryID    *uint   `json:"category_id"`
	PublishedDate string  `json:"published_date"` // RFC3339，可为空
}

// CategoryWithCount 分类及其已发布书籍数.
type CategoryWithCount struct {
	model.Category

	BookCount int64 `json:"book_count"`
}

// CategoryInput 创建/更新分类的请求体.
type CategoryInput struct {
	Name        string `json:"name"        rule:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

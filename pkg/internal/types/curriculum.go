package types

import "github.com/yeisme/agrivault/pkg/internal/model"

// ListCurriculumQuery 课程资料列表的过滤与分页参数.
type ListCurriculumQuery struct {
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
	State string `form:"state"`
	// Status 为空时默认只列出启用的资料，传 all 列出全部
	Status string `form:"status"`
}

// ListCurriculumResponse 课程资料列表响应.
type ListCurriculumResponse struct {
	Curriculums []model.Curriculum `json:"curriculums"`
	Pagination  Pagination         `json:"pagination"`
}

// CurriculumInput 创建/更新课程资料的请求体.
type CurriculumInput struct {
	Title         string `json:"title"       rule:"required"`
	Description   string `json:"description"`
	State         string `json:"state"`
	StateName     string `json:"state_name"`
	Language      string `json:"language"`
	SchemeName    string `json:"scheme_name"`
	Grade         string `json:"grade"`
	Subject       string `json:"subject"`
	BannerURL     string `json:"banner_url"`
	PDFURL        string `json:"pdf_url"`
	CoverImageURL string `json:"cover_image_url"`
	Status        string `json:"status"          rule:"omitempty,oneof=active inactive"`
	PublishedDate string `json:"published_date"` // RFC3339，可为空
}

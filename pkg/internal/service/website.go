package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/agrivault/pkg/internal/model"
)

// WebsiteContentService 官网文案的读写，整表只有一行.
type WebsiteContentService struct{ *MarketService }

// NewWebsiteContentService 创建官网文案服务.
func NewWebsiteContentService(ms *MarketService) *WebsiteContentService {
	return &WebsiteContentService{ms}
}

// GetContent 返回当前官网文案，尚未配置时返回内置默认值.
func (ws *WebsiteContentService) GetContent(ctx context.Context) (*model.WebsiteContent, error) {
	var content model.WebsiteContent

	err := ws.dbClient.GetDB().WithContext(ctx).
		Order("updated_at DESC").
		First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultWebsiteContent(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("load website content: %w", err)
	}

	return &content, nil
}

// UpsertContent 整体覆盖官网文案，首次写入时建行.
func (ws *WebsiteContentService) UpsertContent(ctx context.Context, in *model.WebsiteContent) (*model.WebsiteContent, error) {
	dbx := ws.dbClient.GetDB().WithContext(ctx)

	var existing model.WebsiteContent

	err := dbx.First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		in.ID = 0
		if err := dbx.Create(in).Error; err != nil {
			return nil, fmt.Errorf("create website content: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("load website content: %w", err)
	default:
		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt

		if err := dbx.Save(in).Error; err != nil {
			return nil, fmt.Errorf("update website content: %w", err)
		}
	}

	return in, nil
}

// defaultWebsiteContent 未配置时的兜底文案.
func defaultWebsiteContent() *model.WebsiteContent {
	return &model.WebsiteContent{
		LogoText:     "Agrivault",
		HeroTitle:    "Your Agricultural Knowledge Hub",
		HeroSubtitle: "E-books, audiobooks and curriculum material for modern farming",
		StatBooks:    500,
		StatAuthors:  50,
		StatReaders:  10000,
		MetaTitle:    "Agrivault",
	}
}

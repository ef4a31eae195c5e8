package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/yeisme/agrivault/pkg/internal/model"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// CategoryService 书籍分类管理.
type CategoryService struct{ *MarketService }

// NewCategoryService 创建分类服务.
func NewCategoryService(ms *MarketService) *CategoryService { return &CategoryService{ms} }

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 把分类名转为 URL slug：小写、非字母数字折叠为连字符.
func Slugify(name string) string {
	slug := slugInvalidChars.ReplaceAllString(strings.ToLower(name), "-")

	return strings.Trim(slug, "-")
}

// ListCategories 列出全部分类，附带每个分类下已发布书籍的数量.
func (cs *CategoryService) ListCategories(ctx context.Context) ([]types.CategoryWithCount, error) {
	dbx := cs.dbClient.GetDB().WithContext(ctx)

	categories := []model.Category{}
	if err := dbx.Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	counts := []struct {
		CategoryID uint
		Cnt        int64
	}{}
	if err := dbx.Model(&model.Book{}).
		Select("category_id, COUNT(*) as cnt").
		Where("category_id IS NOT NULL AND status = ?", model.BookStatusPublished).
		Group("category_id").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("count books per category: %w", err)
	}

	byID := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byID[c.CategoryID] = c.Cnt
	}

	out := make([]types.CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		out = append(out, types.CategoryWithCount{Category: c, BookCount: byID[c.ID]})
	}

	return out, nil
}

// GetCategory 按 ID 查询分类.
func (cs *CategoryService) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := cs.dbClient.GetDB().WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

// CreateCategory 创建分类，slug 为空时从名称生成.
func (cs *CategoryService) CreateCategory(ctx context.Context, in *types.CategoryInput) (*model.Category, error) {
	category := &model.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Icon:        in.Icon,
	}

	if category.Slug == "" {
		category.Slug = Slugify(in.Name)
	}

	if err := cs.dbClient.GetDB().WithContext(ctx).Create(category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

// UpdateCategory 更新分类.
func (cs *CategoryService) UpdateCategory(ctx context.Context, id uint, in *types.CategoryInput) (*model.Category, error) {
	dbx := cs.dbClient.GetDB().WithContext(ctx)

	var category model.Category
	if err := dbx.First(&category, id).Error; err != nil {
		return nil, err
	}

	category.Name = in.Name
	category.Description = in.Description
	category.Icon = in.Icon

	if in.Slug != "" {
		category.Slug = in.Slug
	} else {
		category.Slug = Slugify(in.Name)
	}

	if err := dbx.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}

	return &category, nil
}

// DeleteCategory 软删除分类，分类下的书保留但不再归类.
func (cs *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	dbx := cs.dbClient.GetDB().WithContext(ctx)

	var category model.Category
	if err := dbx.First(&category, id).Error; err != nil {
		return err
	}

	if err := dbx.Model(&model.Book{}).
		Where("category_id = ?", id).
		Update("category_id", nil).Error; err != nil {
		return fmt.Errorf("detach books from category %d: %w", id, err)
	}

	if err := dbx.Delete(&category).Error; err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}

	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yeisme/agrivault/pkg/configs"
	"github.com/yeisme/agrivault/pkg/internal/model"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// BookService 书籍的增删改查.
type BookService struct{ *MarketService }

// NewBookService 创建书籍服务.
func NewBookService(ms *MarketService) *BookService { return &BookService{ms} }

// ListBooks 分页列出书籍，支持按分类、作者、语言、状态过滤和标题/作者模糊搜索.
// Status 为空时只返回已发布的书，传 all 返回全部状态.
func (bs *BookService) ListBooks(ctx context.Context, q *types.ListBooksQuery) (*types.ListBooksResponse, error) {
	marketCfg := configs.GetConfig().Market

	page := q.Page
	if page < 1 {
		page = 1
	}

	limit := q.Limit
	if limit < 1 {
		limit = marketCfg.DefaultPageSize
	}

	if limit > marketCfg.MaxPageSize {
		limit = marketCfg.MaxPageSize
	}

	dbx := bs.dbClient.GetDB().WithContext(ctx).Model(&model.Book{})

	switch q.Status {
	case "all":
	case "":
		dbx = dbx.Where("status = ?", model.BookStatusPublished)
	default:
		dbx = dbx.Where("status = ?", q.Status)
	}

	if q.CategoryID != 0 {
		dbx = dbx.Where("category_id = ?", q.CategoryID)
	}

	if q.Author != "" {
		dbx = dbx.Where("author = ?", q.Author)
	}

	if q.Language != "" {
		dbx = dbx.Where("language = ?", q.Language)
	}

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		dbx = dbx.Where("title LIKE ? OR author LIKE ?", pattern, pattern)
	}

	var total int64
	if err := dbx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	books := []model.Book{}
	if err := dbx.Preload("Category").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &types.ListBooksResponse{
		Books: books,
		Pagination: types.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetBook 按 ID 查询单本书.
func (bs *BookService) GetBook(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := bs.dbClient.GetDB().WithContext(ctx).
		Preload("Category").
		First(&book, id).Error; err != nil {
		return nil, err
	}

	return &book, nil
}

// CreateBook 创建书籍，默认为草稿状态.
func (bs *BookService) CreateBook(ctx context.Context, in *types.BookInput) (*model.Book, error) {
	book, err := bookFromInput(in)
	if err != nil {
		return nil, err
	}

	if book.Status == "" {
		book.Status = model.BookStatusDraft
	}

	if err := bs.dbClient.GetDB().WithContext(ctx).Create(book).Error; err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	return book, nil
}

// UpdateBook 全量更新书籍.
func (bs *BookService) UpdateBook(ctx context.Context, id uint, in *types.BookInput) (*model.Book, error) {
	dbx := bs.dbClient.GetDB().WithContext(ctx)

	var book model.Book
	if err := dbx.First(&book, id).Error; err != nil {
		return nil, err
	}

	updated, err := bookFromInput(in)
	if err != nil {
		return nil, err
	}

	updated.ID = book.ID
	updated.CreatedAt = book.CreatedAt

	if updated.Status == "" {
		updated.Status = book.Status
	}

	// Save 做全字段更新，零值字段也会写入
	if err := dbx.Save(updated).Error; err != nil {
		return nil, fmt.Errorf("update book %d: %w", id, err)
	}

	return updated, nil
}

// DeleteBook 软删除书籍.
func (bs *BookService) DeleteBook(ctx context.Context, id uint) error {
	dbx := bs.dbClient.GetDB().WithContext(ctx)

	var book model.Book
	if err := dbx.First(&book, id).Error; err != nil {
		return err
	}

	if err := dbx.Delete(&book).Error; err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	return nil
}

// bookFromInput 把请求体转换为模型，解析可选的出版日期.
func bookFromInput(in *types.BookInput) (*model.Book, error) {
	book := &model.Book{
		Title:         in.Title,
		Author:        in.Author,
		Summary:       in.Summary,
		Language:      in.Language,
		ISBN:          in.ISBN,
		Pages:         in.Pages,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		IsFree:        in.IsFree,
		PDFURL:        in.PDFURL,
		AudioURL:      in.AudioURL,
		CoverImageURL: in.CoverImageURL,
		Status:        in.Status,
		CategoryID:    in.CategoryID,
	}

	if in.PublishedDate != "" {
		t, err := time.Parse(time.RFC3339, in.PublishedDate)
		if err != nil {
			// 允许只传日期
			t, err = time.Parse("2006-01-02", in.PublishedDate)
			if err != nil {
				return nil, fmt.Errorf("parse published_date: %w", err)
			}
		}

		book.PublishedDate = &t
	}

	return book, nil
}

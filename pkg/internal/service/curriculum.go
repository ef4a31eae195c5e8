package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yeisme/agrivault/pkg/configs"
	"github.com/yeisme/agrivault/pkg/internal/model"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// CurriculumService 课程资料的增删改查.
type CurriculumService struct{ *MarketService }

// NewCurriculumService 创建课程资料服务.
func NewCurriculumService(ms *MarketService) *CurriculumService { return &CurriculumService{ms} }

// ListCurriculums 分页列出课程资料，支持按邦和状态过滤.
// Status 为空时只返回启用的资料，传 all 返回全部.
func (cs *CurriculumService) ListCurriculums(ctx context.Context, q *types.ListCurriculumQuery) (*types.ListCurriculumResponse, error) {
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

	dbx := cs.dbClient.GetDB().WithContext(ctx).Model(&model.Curriculum{})

	switch q.Status {
	case "all":
	case "":
		dbx = dbx.Where("status = ?", model.CurriculumStatusActive)
	default:
		dbx = dbx.Where("status = ?", q.Status)
	}

	if q.State != "" {
		dbx = dbx.Where("state = ?", q.State)
	}

	var total int64
	if err := dbx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count curriculums: %w", err)
	}

	curriculums := []model.Curriculum{}
	if err := dbx.Order("published_date DESC").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&curriculums).Error; err != nil {
		return nil, fmt.Errorf("list curriculums: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &types.ListCurriculumResponse{
		Curriculums: curriculums,
		Pagination: types.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetCurriculum 按 ID 查询单条课程资料.
func (cs *CurriculumService) GetCurriculum(ctx context.Context, id uint) (*model.Curriculum, error) {
	var cur model.Curriculum
	if err := cs.dbClient.GetDB().WithContext(ctx).First(&cur, id).Error; err != nil {
		return nil, err
	}

	return &cur, nil
}

// CreateCurriculum 创建课程资料，默认启用、语言为 English.
func (cs *CurriculumService) CreateCurriculum(ctx context.Context, in *types.CurriculumInput) (*model.Curriculum, error) {
	cur, err := curriculumFromInput(in)
	if err != nil {
		return nil, err
	}

	if cur.Language == "" {
		cur.Language = "English"
	}

	if cur.Status == "" {
		cur.Status = model.CurriculumStatusActive
	}

	if err := cs.dbClient.GetDB().WithContext(ctx).Create(cur).Error; err != nil {
		return nil, fmt.Errorf("create curriculum: %w", err)
	}

	return cur, nil
}

// UpdateCurriculum 全量更新课程资料.
func (cs *CurriculumService) UpdateCurriculum(ctx context.Context, id uint, in *types.CurriculumInput) (*model.Curriculum, error) {
	dbx := cs.dbClient.GetDB().WithContext(ctx)

	var cur model.Curriculum
	if err := dbx.First(&cur, id).Error; err != nil {
		return nil, err
	}

	updated, err := curriculumFromInput(in)
	if err != nil {
		return nil, err
	}

	updated.ID = cur.ID
	updated.CreatedAt = cur.CreatedAt

	if updated.Language == "" {
		updated.Language = cur.Language
	}

	if updated.Status == "" {
		updated.Status = cur.Status
	}

	if err := dbx.Save(updated).Error; err != nil {
		return nil, fmt.Errorf("update curriculum %d: %w", id, err)
	}

	return updated, nil
}

// DeleteCurriculum 软删除课程资料.
func (cs *CurriculumService) DeleteCurriculum(ctx context.Context, id uint) error {
	dbx := cs.dbClient.GetDB().WithContext(ctx)

	var cur model.Curriculum
	if err := dbx.First(&cur, id).Error; err != nil {
		return err
	}

	if err := dbx.Delete(&cur).Error; err != nil {
		return fmt.Errorf("delete curriculum %d: %w", id, err)
	}

	return nil
}

// curriculumFromInput 把请求体转换为模型，解析可选的发布日期.
func curriculumFromInput(in *types.CurriculumInput) (*model.Curriculum, error) {
	cur := &model.Curriculum{
		Title:         in.Title,
		Description:   in.Description,
		State:         in.State,
		StateName:     in.StateName,
		Language:      in.Language,
		SchemeName:    in.SchemeName,
		Grade:         in.Grade,
		Subject:       in.Subject,
		BannerURL:     in.BannerURL,
		PDFURL:        in.PDFURL,
		CoverImageURL: in.CoverImageURL,
		Status:        in.Status,
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

		cur.PublishedDate = &t
	}

	return cur, nil
}

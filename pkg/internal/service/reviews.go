package service

import (
	"context"
	"fmt"

	"github.com/yeisme/agrivault/pkg/internal/model"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// ReviewService 书籍评论管理.
type ReviewService struct{ *MarketService }

// NewReviewService 创建评论服务.
func NewReviewService(ms *MarketService) *ReviewService { return &ReviewService{ms} }

// ListReviews 列出某本书的评论，默认只返回审核通过的，includeAll 返回全部.
func (rs *ReviewService) ListReviews(ctx context.Context, bookID uint, includeAll bool) ([]model.Review, error) {
	dbx := rs.dbClient.GetDB().WithContext(ctx).
		Where("book_id = ?", bookID)

	if !includeAll {
		dbx = dbx.Where("approved = ?", true)
	}

	reviews := []model.Review{}
	if err := dbx.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews for book %d: %w", bookID, err)
	}

	return reviews, nil
}

// CreateReview 发表评论，初始为未审核状态.
// 书不存在时返回 gorm.ErrRecordNotFound.
func (rs *ReviewService) CreateReview(ctx context.Context, in *types.ReviewInput) (*model.Review, error) {
	dbx := rs.dbClient.GetDB().WithContext(ctx)

	var book model.Book
	if err := dbx.First(&book, in.BookID).Error; err != nil {
		return nil, err
	}

	review := &model.Review{
		BookID:  in.BookID,
		UserID:  in.User,
		Rating:  in.Rating,
		Comment: in.Comment,
	}

	if err := dbx.Create(review).Error; err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	return review, nil
}

// UpdateReview 部分更新评论，用于审核或修改内容，只更新传入的字段.
func (rs *ReviewService) UpdateReview(ctx context.Context, id uint, in *types.ReviewUpdateInput) (*model.Review, error) {
	dbx := rs.dbClient.GetDB().WithContext(ctx)

	var review model.Review
	if err := dbx.First(&review, id).Error; err != nil {
		return nil, err
	}

	if in.Rating != nil {
		review.Rating = *in.Rating
	}

	if in.Comment != nil {
		review.Comment = *in.Comment
	}

	if in.Approved != nil {
		review.Approved = *in.Approved
	}

	if err := dbx.Save(&review).Error; err != nil {
		return nil, fmt.Errorf("update review %d: %w", id, err)
	}

	return &review, nil
}

// DeleteReview 软删除评论.
func (rs *ReviewService) DeleteReview(ctx context.Context, id uint) error {
	dbx := rs.dbClient.GetDB().WithContext(ctx)

	var review model.Review
	if err := dbx.First(&review, id).Error; err != nil {
		return err
	}

	if err := dbx.Delete(&review).Error; err != nil {
		return fmt.Errorf("delete review %d: %w", id, err)
	}

	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yeisme/agrivault/pkg/internal/model"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// DashboardService 后台汇总统计.
type DashboardService struct {
	*MarketService

	commissionRate float64
}

// NewDashboardService 创建统计服务，commissionRate 是平台抽成比例.
func NewDashboardService(ms *MarketService, commissionRate float64) *DashboardService {
	return &DashboardService{MarketService: ms, commissionRate: commissionRate}
}

// Overview 汇总实体数量与收入.
// 收入按用户扣款流水计算：总收入是所有 debit 流水之和，
// 净收入按抽成比例折算.
func (ds *DashboardService) Overview(ctx context.Context) (*types.DashboardResponse, error) {
	dbx := ds.dbClient.GetDB().WithContext(ctx)

	out := &types.DashboardResponse{}

	if err := dbx.Model(&model.Book{}).Count(&out.Books).Error; err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	if err := dbx.Model(&model.Category{}).Count(&out.Categories).Error; err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	if err := dbx.Model(&model.Review{}).Count(&out.Reviews).Error; err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	if err := dbx.Model(&model.Review{}).
		Where("approved = ?", false).
		Count(&out.PendingReviews).Error; err != nil {
		return nil, fmt.Errorf("count pending reviews: %w", err)
	}

	if err := dbx.Model(&model.UserSubscription{}).
		Where("active = ? AND ends_at > ?", true, time.Now().UTC()).
		Count(&out.ActiveSubscriptions).Error; err != nil {
		return nil, fmt.Errorf("count active subscriptions: %w", err)
	}

	var agg struct {
		Gross float64 `gorm:"column:gross"`
	}

	if err := dbx.Model(&model.WalletTransaction{}).
		Select("COALESCE(SUM(amount),0) AS gross").
		Where("direction = ?", model.WalletDebit).
		Scan(&agg).Error; err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	out.GrossRevenue = agg.Gross
	out.NetRevenue = agg.Gross * (1 - ds.commissionRate)

	return out, nil
}

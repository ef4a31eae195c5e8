package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/agrivault/pkg/internal/model"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// SubscriptionService 订阅套餐与用户订阅管理.
type SubscriptionService struct{ *MarketService }

// NewSubscriptionService 创建订阅服务.
func NewSubscriptionService(ms *MarketService) *SubscriptionService {
	return &SubscriptionService{ms}
}

// ListPlans 列出订阅套餐，activeOnly 时只返回上架中的.
func (ss *SubscriptionService) ListPlans(ctx context.Context, activeOnly bool) ([]model.SubscriptionPlan, error) {
	dbx := ss.dbClient.GetDB().WithContext(ctx)
	if activeOnly {
		dbx = dbx.Where("active = ?", true)
	}

	plans := []model.SubscriptionPlan{}
	if err := dbx.Order("price").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	return plans, nil
}

// CreatePlan 创建订阅套餐.
func (ss *SubscriptionService) CreatePlan(ctx context.Context, in *types.PlanInput) (*model.SubscriptionPlan, error) {
	plan := &model.SubscriptionPlan{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		DurationDays: in.DurationDays,
		Active:       true,
	}

	if in.Active != nil {
		plan.Active = *in.Active
	}

	if err := ss.dbClient.GetDB().WithContext(ctx).Create(plan).Error; err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	return plan, nil
}

// UpdatePlan 更新订阅套餐.
func (ss *SubscriptionService) UpdatePlan(ctx context.Context, id uint, in *types.PlanInput) (*model.SubscriptionPlan, error) {
	dbx := ss.dbClient.GetDB().WithContext(ctx)

	var plan model.SubscriptionPlan
	if err := dbx.First(&plan, id).Error; err != nil {
		return nil, err
	}

	plan.Name = in.Name
	plan.Description = in.Description
	plan.Price = in.Price
	plan.DurationDays = in.DurationDays

	if in.Active != nil {
		plan.Active = *in.Active
	}

	if err := dbx.Save(&plan).Error; err != nil {
		return nil, fmt.Errorf("update plan %d: %w", id, err)
	}

	return &plan, nil
}

// Subscribe 为用户开通订阅：停用该用户已有的活跃订阅，再按套餐
// 时长开一条新记录.两步放在一个事务里，中途失败则全部回滚.
func (ss *SubscriptionService) Subscribe(ctx context.Context, in *types.SubscribeInput) (*model.UserSubscription, error) {
	dbx := ss.dbClient.GetDB().WithContext(ctx)

	var plan model.SubscriptionPlan
	if err := dbx.First(&plan, in.PlanID).Error; err != nil {
		return nil, err
	}

	if !plan.Active {
		return nil, fmt.Errorf("plan %q is not active", plan.Name)
	}

	now := time.Now().UTC()
	sub := &model.UserSubscription{
		UserID:   in.User,
		PlanID:   plan.ID,
		StartsAt: now,
		EndsAt:   now.AddDate(0, 0, plan.DurationDays),
		Active:   true,
	}

	err := dbx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.UserSubscription{}).
			Where("user_id = ? AND active = ?", in.User, true).
			Update("active", false).Error; err != nil {
			return fmt.Errorf("deactivate previous subscriptions: %w", err)
		}

		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("create subscription: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sub.Plan = &plan

	return sub, nil
}

// CurrentSubscription 返回用户当前的活跃订阅，没有则返回 gorm.ErrRecordNotFound.
// 已过期但未停用的记录在这里顺手停用.
func (ss *SubscriptionService) CurrentSubscription(ctx context.Context, user string) (*model.UserSubscription, error) {
	dbx := ss.dbClient.GetDB().WithContext(ctx)

	var sub model.UserSubscription
	if err := dbx.Preload("Plan").
		Where("user_id = ? AND active = ?", user, true).
		Order("ends_at DESC").
		First(&sub).Error; err != nil {
		return nil, err
	}

	if sub.EndsAt.Before(time.Now().UTC()) {
		if err := dbx.Model(&sub).Update("active", false).Error; err != nil {
			return nil, fmt.Errorf("expire subscription %d: %w", sub.ID, err)
		}

		return nil, gorm.ErrRecordNotFound
	}

	return &sub, nil
}

// CancelSubscription 取消用户的活跃订阅.
func (ss *SubscriptionService) CancelSubscription(ctx context.Context, user string) error {
	result := ss.dbClient.GetDB().WithContext(ctx).
		Model(&model.UserSubscription{}).
		Where("user_id = ? AND active = ?", user, true).
		Update("active", false)
	if result.Error != nil {
		return fmt.Errorf("cancel subscription for %s: %w", user, result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

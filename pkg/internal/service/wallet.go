package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeisme/agrivault/pkg/internal/model"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// ErrInsufficientFunds 扣款金额超过当前余额.
var ErrInsufficientFunds = errors.New("insufficient wallet balance")

// WalletService 钱包流水与余额.
// 余额不单独存一行，总是由流水聚合得出，避免余额与流水脱节.
type WalletService struct{ *MarketService }

// NewWalletService 创建钱包服务.
func NewWalletService(ms *MarketService) *WalletService { return &WalletService{ms} }

// Balance 聚合用户流水得出余额.
func (ws *WalletService) Balance(ctx context.Context, user string) (float64, error) {
	var agg struct {
		Balance float64 `gorm:"column:balance"`
	}

	// SQLite/MySQL 兼容：COALESCE 避免无流水时的 NULL
	selectExpr := "COALESCE(SUM(CASE WHEN direction = 'credit' THEN amount ELSE -amount END),0) AS balance"

	if err := ws.dbClient.GetDB().WithContext(ctx).
		Model(&model.WalletTransaction{}).
		Select(selectExpr).
		Where("user_id = ?", user).
		Scan(&agg).Error; err != nil {
		return 0, fmt.Errorf("aggregate balance for %s: %w", user, err)
	}

	return agg.Balance, nil
}

// Transact 记一条充值或扣款流水.扣款前在同一事务内复核余额，
// 不足则返回 ErrInsufficientFunds；Reference 用 UUID 保证流水可幂等对账.
func (ws *WalletService) Transact(ctx context.Context, in *types.WalletTransactInput) (*model.WalletTransaction, error) {
	txn := &model.WalletTransaction{
		UserID:    in.User,
		Amount:    in.Amount,
		Direction: in.Direction,
		Reference: uuid.NewString(),
		Note:      in.Note,
	}

	err := ws.dbClient.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.Direction == model.WalletDebit {
			var agg struct {
				Balance float64 `gorm:"column:balance"`
			}

			selectExpr := "COALESCE(SUM(CASE WHEN direction = 'credit' THEN amount ELSE -amount END),0) AS balance"

			if err := tx.Model(&model.WalletTransaction{}).
				Select(selectExpr).
				Where("user_id = ?", in.User).
				Scan(&agg).Error; err != nil {
				return fmt.Errorf("check balance for %s: %w", in.User, err)
			}

			if agg.Balance < in.Amount {
				return ErrInsufficientFunds
			}
		}

		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// History 返回用户的流水，按时间倒序，最多 limit 条.
func (ws *WalletService) History(ctx context.Context, user string, limit int) ([]model.WalletTransaction, error) {
	if limit < 1 {
		limit = 50
	}

	txns := []model.WalletTransaction{}
	if err := ws.dbClient.GetDB().WithContext(ctx).
		Where("user_id = ?", user).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("list transactions for %s: %w", user, err)
	}

	return txns, nil
}

package types

import "github.com/yeisme/agrivault/pkg/internal/model"

// WalletTransactInput 钱包充值/扣款请求体.
type WalletTransactInput struct {
	User      string  `json:"user"      rule:"required"`
	Amount    float64 `json:"amount"    rule:"gt=0"`
	Direction string  `json:"direction" rule:"oneof=credit debit"`
	Note      string  `json:"note"`
}

// WalletBalanceResponse 钱包余额响应.
type WalletBalanceResponse struct {
	User    string  `json:"user"`
	Balance float64 `json:"balance"`
}

// WalletHistoryResponse 钱包流水响应.
type WalletHistoryResponse struct {
	User         string                    `json:"user"`
	Transactions []model.WalletTransaction `json:"transactions"`
}

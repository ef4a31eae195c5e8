package model

import (
	"time"
)

// 钱包流水方向.
const (
	WalletCredit = "credit"
	WalletDebit  = "debit"
)

// WalletTransaction 钱包流水，余额由流水聚合得出，不单独存储.
type WalletTransaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// 列名用 user_id 而不是 user：user 在 PostgreSQL 里是保留字,
	// 裸谓词中会解析成 current_user
	UserID string `gorm:"size:255;index"       json:"user"`

	Amount    float64 `json:"amount"`
	Direction string  `gorm:"size:16;index"        json:"direction"`
	Reference string  `gorm:"size:64;uniqueIndex"  json:"reference"`
	Note      string  `gorm:"size:512"             json:"note"`

	CreatedAt time.Time `json:"created_at"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionPlan 订阅套餐.
type SubscriptionPlan struct {
	ID           uint    `gorm:"primaryKey"           json:"id"`
	Name         string  `gorm:"size:255;uniqueIndex" json:"name"`
	Description  string  `gorm:"type:text"            json:"description"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
	Active       bool    `gorm:"index;default:true"   json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserSubscription 用户订阅记录.
type UserSubscription struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// user 是 PostgreSQL 保留字，列名统一用 user_id
	UserID string `gorm:"size:255;index" json:"user"`

	PlanID uint              `gorm:"index"          json:"plan_id"`
	Plan   *SubscriptionPlan `json:"plan,omitempty"`

	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `gorm:"index" json:"ends_at"`
	Active   bool      `gorm:"index" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

package types

// PlanInput 创建/更新订阅套餐的请求体.
type PlanInput struct {
	Name         string  `json:"name"          rule:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"         rule:"gte=0"`
	DurationDays int     `json:"duration_days" rule:"min=1"`
	Active       *bool   `json:"active"`
}

// SubscribeInput 用户订阅请求体.
type SubscribeInput struct {
	User   string `json:"user"    rule:"required"`
	PlanID uint   `json:"plan_id" rule:"required"`
}

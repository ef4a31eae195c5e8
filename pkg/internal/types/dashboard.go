package types

// DashboardResponse 后台首页的汇总数据.
type DashboardResponse struct {
	Books               int64   `json:"books"`
	Categories          int64   `json:"categories"`
	Reviews             int64   `json:"reviews"`
	PendingReviews      int64   `json:"pending_reviews"`
	ActiveSubscriptions int64   `json:"active_subscriptions"`
	GrossRevenue        float64 `json:"gross_revenue"`
	// NetRevenue 按配置的抽成比例计算，比例是参数不是常量
	NetRevenue float64 `json:"net_revenue"`
}

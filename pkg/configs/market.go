package configs

import "github.com/spf13/viper"

const (
	DefaultCommissionRate  = 0.30 // 平台抽成比例
	DefaultDefaultPageSize = 20   // 列表默认每页条数
	DefaultMaxPageSize     = 100  // 列表每页条数上限
)

// MarketConfig 市场业务配置.
type MarketConfig struct {
	// CommissionRate 平台抽成比例，净收入 = 总收入 * (1 - CommissionRate)
	CommissionRate  float64 `mapstructure:"commission_rate"   rule:"gte=0,lte=1"`
	DefaultPageSize int     `mapstructure:"default_page_size" rule:"min=1"`
	MaxPageSize     int     `mapstructure:"max_page_size"     rule:"min=1"`
}

// setDefaults 设置市场配置的默认值.
func (c *MarketConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("market.commission_rate", DefaultCommissionRate)
	v.SetDefault("market.default_page_size", DefaultDefaultPageSize)
	v.SetDefault("market.max_page_size", DefaultMaxPageSize)
}

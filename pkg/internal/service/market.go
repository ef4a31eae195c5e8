// Package service 实现上传网关与市场实体的业务逻辑.
package service

import (
	"github.com/yeisme/agrivault/pkg/internal/storage/db"
)

// MarketService 市场实体服务的公共底座，持有数据库客户端.
type MarketService struct {
	dbClient *db.Client
}

// NewMarketService 创建市场服务底座.
func NewMarketService(dbc *db.Client) *MarketService {
	return &MarketService{dbClient: dbc}
}

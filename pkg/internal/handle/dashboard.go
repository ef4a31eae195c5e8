package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/internal/service"
)

// DashboardHandler 后台汇总统计接口.
type DashboardHandler struct {
	svc *service.DashboardService
}

// NewDashboardHandler 创建统计处理器.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Overview 实体数量与收入汇总.
func (h *DashboardHandler) Overview(c *gin.Context) {
	resp, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

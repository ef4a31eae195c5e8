package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/internal/service"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// SubscriptionHandler 订阅接口.
type SubscriptionHandler struct {
	svc *service.SubscriptionService
}

// NewSubscriptionHandler 创建订阅处理器.
func NewSubscriptionHandler(svc *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// ListPlans 列出订阅套餐，默认只含上架中的，?all=true 返回全部.
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	activeOnly := c.Query("all") != "true"

	plans, err := h.svc.ListPlans(c.Request.Context(), activeOnly)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// CreatePlan 创建订阅套餐.
func (h *SubscriptionHandler) CreatePlan(c *gin.Context) {
	var in types.PlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	plan, err := h.svc.CreatePlan(c.Request.Context(), &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, plan)
}

// UpdatePlan 更新订阅套餐.
func (h *SubscriptionHandler) UpdatePlan(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var in types.PlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	plan, err := h.svc.UpdatePlan(c.Request.Context(), id, &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, plan)
}

// Subscribe 为用户开通订阅.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var in types.SubscribeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	sub, err := h.svc.Subscribe(c.Request.Context(), &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, sub)
}

// Current 查询用户当前的活跃订阅.
func (h *SubscriptionHandler) Current(c *gin.Context) {
	user := c.Query("user")
	if user == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "user is required"})

		return
	}

	sub, err := h.svc.CurrentSubscription(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, sub)
}

// Cancel 取消用户的活跃订阅.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	user := c.Query("user")
	if user == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "user is required"})

		return
	}

	if err := h.svc.CancelSubscription(c.Request.Context(), user); err != nil {
		writeError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

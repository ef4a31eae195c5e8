package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/internal/service"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// WalletHandler 钱包接口.
type WalletHandler struct {
	svc *service.WalletService
}

// NewWalletHandler 创建钱包处理器.
func NewWalletHandler(svc *service.WalletService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// Balance 查询余额.
func (h *WalletHandler) Balance(c *gin.Context) {
	user := c.Query("user")
	if user == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "user is required"})

		return
	}

	balance, err := h.svc.Balance(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, types.WalletBalanceResponse{User: user, Balance: balance})
}

// Transact 充值或扣款.
func (h *WalletHandler) Transact(c *gin.Context) {
	var in types.WalletTransactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	txn, err := h.svc.Transact(c.Request.Context(), &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, txn)
}

// History 查询流水.
func (h *WalletHandler) History(c *gin.Context) {
	user := c.Query("user")
	if user == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "user is required"})

		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	txns, err := h.svc.History(c.Request.Context(), user, limit)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, types.WalletHistoryResponse{User: user, Transactions: txns})
}

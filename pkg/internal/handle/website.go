package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/internal/model"
	"github.com/yeisme/agrivault/pkg/internal/service"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// WebsiteContentHandler 官网文案接口.
type WebsiteContentHandler struct {
	svc *service.WebsiteContentService
}

// NewWebsiteContentHandler 创建官网文案处理器.
func NewWebsiteContentHandler(svc *service.WebsiteContentService) *WebsiteContentHandler {
	return &WebsiteContentHandler{svc: svc}
}

// Get 返回当前官网文案.
func (h *WebsiteContentHandler) Get(c *gin.Context) {
	content, err := h.svc.GetContent(c.Request.Context())
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, content)
}

// Update 整体覆盖官网文案.
func (h *WebsiteContentHandler) Update(c *gin.Context) {
	var in model.WebsiteContent
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	content, err := h.svc.UpsertContent(c.Request.Context(), &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, content)
}

package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/internal/service"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// ReviewHandler 评论接口.
type ReviewHandler struct {
	svc *service.ReviewService
}

// NewReviewHandler 创建评论处理器.
func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// ListByBook 列出某本书的评论，?all=true 返回含未审核的全部评论.
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	bookID, ok := idParam(c, "id")
	if !ok {
		return
	}

	includeAll := c.Query("all") == "true"

	reviews, err := h.svc.ListReviews(c.Request.Context(), bookID, includeAll)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// Create 发表评论.
func (h *ReviewHandler) Create(c *gin.Context) {
	var in types.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	review, err := h.svc.CreateReview(c.Request.Context(), &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, review)
}

// Update 审核或修改评论.
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var in types.ReviewUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	review, err := h.svc.UpdateReview(c.Request.Context(), id, &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, review)
}

// Delete 软删除评论.
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteReview(c.Request.Context(), id); err != nil {
		writeError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

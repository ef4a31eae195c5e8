package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/internal/service"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// CategoryHandler 分类接口.
type CategoryHandler struct {
	svc *service.CategoryService
}

// NewCategoryHandler 创建分类处理器.
func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List 列出全部分类及书籍数.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Get 查询单个分类.
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	category, err := h.svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, category)
}

// Create 创建分类.
func (h *CategoryHandler) Create(c *gin.Context) {
	var in types.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	category, err := h.svc.CreateCategory(c.Request.Context(), &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, category)
}

// Update 更新分类.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var in types.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	category, err := h.svc.UpdateCategory(c.Request.Context(), id, &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete 软删除分类.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		writeError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

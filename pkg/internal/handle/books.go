package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/internal/service"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// BookHandler 书籍接口.
type BookHandler struct {
	svc *service.BookService
}

// NewBookHandler 创建书籍处理器.
func NewBookHandler(svc *service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

// List 分页列出书籍.
func (h *BookHandler) List(c *gin.Context) {
	var q types.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	resp, err := h.svc.ListBooks(c.Request.Context(), &q)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get 查询单本书.
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	book, err := h.svc.GetBook(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, book)
}

// Create 创建书籍.
func (h *BookHandler) Create(c *gin.Context) {
	var in types.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	book, err := h.svc.CreateBook(c.Request.Context(), &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, book)
}

// Update 全量更新书籍.
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var in types.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	book, err := h.svc.UpdateBook(c.Request.Context(), id, &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, book)
}

// Delete 软删除书籍.
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteBook(c.Request.Context(), id); err != nil {
		writeError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

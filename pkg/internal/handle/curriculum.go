package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/internal/service"
	"github.com/yeisme/agrivault/pkg/internal/types"
)

// CurriculumHandler 课程资料接口.
type CurriculumHandler struct {
	svc *service.CurriculumService
}

// NewCurriculumHandler 创建课程资料处理器.
func NewCurriculumHandler(svc *service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{svc: svc}
}

// List 分页列出课程资料.
func (h *CurriculumHandler) List(c *gin.Context) {
	var q types.ListCurriculumQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	resp, err := h.svc.ListCurriculums(c.Request.Context(), &q)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get 查询单条课程资料.
func (h *CurriculumHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	cur, err := h.svc.GetCurriculum(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, cur)
}

// Create 创建课程资料.
func (h *CurriculumHandler) Create(c *gin.Context) {
	var in types.CurriculumInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	cur, err := h.svc.CreateCurriculum(c.Request.Context(), &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, cur)
}

// Update 全量更新课程资料.
func (h *CurriculumHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var in types.CurriculumInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})

		return
	}

	cur, err := h.svc.UpdateCurriculum(c.Request.Context(), id, &in)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, cur)
}

// Delete 软删除课程资料.
func (h *CurriculumHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteCurriculum(c.Request.Context(), id); err != nil {
		writeError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

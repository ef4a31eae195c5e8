// Package handle 提供HTTP请求处理器的实现.
package handle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeisme/agrivault/pkg/internal/fault"
	"github.com/yeisme/agrivault/pkg/internal/service"
	"github.com/yeisme/agrivault/pkg/internal/types"
	"github.com/yeisme/agrivault/pkg/log"
)

// writeError 把业务错误映射为HTTP响应.
// fault.Failure 按分类映射状态码并带出诊断信息；
// gorm.ErrRecordNotFound 映射 404；余额不足映射 402；其余 500.
func writeError(c *gin.Context, err error) {
	var f *fault.Failure
	if errors.As(err, &f) {
		log.Logger().Warn().
			Err(err).
			Str("kind", f.Kind.String()).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(f.Kind.HTTPStatus(), types.ErrorResponse{Error: f.Message, Details: f.Details})

		return
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "not found"})
	case errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, types.ErrorResponse{Error: err.Error()})
	default:
		log.Logger().Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: err.Error()})
	}
}

// idParam 解析路径中的数字 ID.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid " + name})

		return 0, false
	}

	return uint(id), true
}

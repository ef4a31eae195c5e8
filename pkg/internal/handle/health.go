package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/internal/storage"
)

const healthTimeout = 2 * time.Second

// HealthHandler 健康检查接口.
type HealthHandler struct {
	mgr *storage.Manager
}

// NewHealthHandler 创建健康检查处理器.
func NewHealthHandler(mgr *storage.Manager) *HealthHandler {
	return &HealthHandler{mgr: mgr}
}

// Health 总体健康检查：数据库和对象存储都可用才返回 200.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	components := gin.H{}
	healthy := true

	if err := h.checkDB(ctx); err != nil {
		components["db"] = gin.H{"status": "unhealthy", "error": err.Error()}
		healthy = false
	} else {
		components["db"] = gin.H{"status": "ok"}
	}

	if err := h.checkS3(ctx); err != nil {
		components["s3"] = gin.H{"status": "unhealthy", "error": err.Error()}
		healthy = false
	} else {
		components["s3"] = gin.H{"status": "ok"}
	}

	status := http.StatusOK
	overall := "ok"

	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{"status": overall, "components": components})
}

// HealthDB 数据库健康检查.
func (h *HealthHandler) HealthDB(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.checkDB(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "db", "status": "ok"})
}

// HealthS3 对象存储健康检查.
func (h *HealthHandler) HealthS3(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.checkS3(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "s3", "status": "unhealthy", "error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "s3", "status": "ok"})
}

func (h *HealthHandler) checkDB(ctx context.Context) error {
	if h.mgr == nil || h.mgr.DB == nil {
		return errNotInitialized("db")
	}

	sqlDB, err := h.mgr.DB.GetDB().DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func (h *HealthHandler) checkS3(ctx context.Context) error {
	if h.mgr == nil || h.mgr.S3 == nil {
		return errNotInitialized("s3")
	}

	return h.mgr.S3.HealthCheck(ctx)
}

type errNotInitialized string

func (e errNotInitialized) Error() string {
	return string(e) + " client not initialized"
}

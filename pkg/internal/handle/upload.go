package handle

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/agrivault/pkg/configs"
	"github.com/yeisme/agrivault/pkg/internal/fault"
	"github.com/yeisme/agrivault/pkg/internal/payload"
	"github.com/yeisme/agrivault/pkg/internal/service"
	"github.com/yeisme/agrivault/pkg/internal/types"
	"github.com/yeisme/agrivault/pkg/log"
	"github.com/yeisme/agrivault/pkg/metrics"
)

// UploadHandler 上传网关的HTTP入口.
type UploadHandler struct {
	svc *service.UploadService
}

// NewUploadHandler 创建上传处理器.
func NewUploadHandler(svc *service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// uploadParams 从 multipart 表单或 JSON 请求体解出的统一参数.
type uploadParams struct {
	bucket      string
	folder      string
	ownerID     string
	fileName    string
	contentType string
	raw         any
}

// Upload 接收任意形态的文件载荷并提交到对象存储.
//
// multipart 请求从表单取参数与文件；其余请求按 JSON 解析，
// file 字段的具体形态（data URI、字节数组、包装对象）交给归一化层判定.
func (h *UploadHandler) Upload(c *gin.Context) {
	params, err := h.extractParams(c)
	if err != nil {
		h.fail(c, err)

		return
	}

	if params.bucket == "" {
		h.fail(c, fault.New(fault.KindBadRequest, "bucket is required"))

		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), configs.GetConfig().Server.GetTimeoutDuration())
	defer cancel()

	file, err := payload.Normalize(ctx, params.raw, params.fileName, params.contentType)
	if err != nil {
		h.fail(c, err)

		return
	}

	result, err := h.svc.Commit(ctx, file, params.bucket, params.folder, params.ownerID)
	if err != nil {
		h.fail(c, err)

		return
	}

	metrics.UploadCounter.WithLabelValues("success").Inc()
	metrics.UploadBytes.Add(float64(len(file.Bytes)))

	log.Logger().Info().
		Str("path", result.Path).
		Str("bucket", params.bucket).
		Msg("upload completed")
	c.JSON(http.StatusOK, result)
}

// fail 记一次失败指标并写出错误响应.
func (h *UploadHandler) fail(c *gin.Context, err error) {
	metrics.UploadCounter.WithLabelValues(fault.KindOf(err).String()).Inc()
	writeError(c, err)
}

// UploadPreflight 处理跨域预检之外的裸 OPTIONS 请求，始终返回 200.
func (h *UploadHandler) UploadPreflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// extractParams 解出上传参数，multipart 优先，其次 JSON.
func (h *UploadHandler) extractParams(c *gin.Context) (*uploadParams, error) {
	ct := c.ContentType()
	if strings.HasPrefix(ct, "multipart/form-data") {
		return h.extractMultipart(c)
	}

	var req types.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fault.Wrap(fault.KindBadRequest, err, "invalid request body")
	}

	return &uploadParams{
		bucket:      req.Bucket,
		folder:      req.Folder,
		ownerID:     req.OwnerID,
		fileName:    req.FileName,
		contentType: req.ContentType,
		raw:         req.File,
	}, nil
}

// extractMultipart 从表单取参数.文件部分缺失时回退到 file 文本字段，
// 里面可能是 data URI.
func (h *UploadHandler) extractMultipart(c *gin.Context) (*uploadParams, error) {
	params := &uploadParams{
		bucket:      c.PostForm("bucket"),
		folder:      c.PostForm("folder"),
		ownerID:     c.PostForm("owner_id"),
		fileName:    c.PostForm("fileName"),
		contentType: c.PostForm("fileType"),
	}

	if fh, err := c.FormFile("file"); err == nil {
		params.raw = fh

		return params, nil
	}

	if v := c.PostForm("file"); v != "" {
		params.raw = v
	}

	return params, nil
}

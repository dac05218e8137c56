package http

import (
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/gym-trial-backend/internal/file"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/logging"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/request"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/response"
)

type Handler struct {
	fileService file.Service
}

func NewHandler(fileService file.Service) *Handler {
	return &Handler{
		fileService: fileService,
	}
}

func inline(filename string) string {
	return mime.FormatMediaType("inline", map[string]string{"filename": filename})
}

func stream(c *gin.Context, body io.Reader, contentType, disposition string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", disposition)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		// Headers are already sent.
		logging.FromGin(c).Warn("stream file failed", "error", err)
	}
}

// ServeFile serves the file content by ID.
func (h *Handler) ServeFile(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	body, info, err := h.fileService.Download(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer body.Close()

	stream(c, body, info.ContentType, inline(info.Filename))
}

// ServeThumbnail serves the JPEG thumbnail by file ID.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	body, info, err := h.fileService.DownloadThumbnail(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer body.Close()

	stream(c, body, "image/jpeg", inline(info.Filename+"_thumb.jpg"))
}

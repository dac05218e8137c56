package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/gym-trial-backend/internal/auth"
	"github.com/nekogravitycat/gym-trial-backend/internal/file"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/logging"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/response"
)

// FileUploadConfig defines the configuration for generic file uploads.
type FileUploadConfig struct {
	FormFieldName string                                         // default: "file"
	MaxSizeBytes  int64                                          // 0 = no limit
	AllowedTypes  []string                                       // empty = allow all
	ResizeImage   bool                                           // re-encode as a bounded JPEG
	AfterUpload   func(ctx context.Context, fileID string) error // optional; failure rolls the upload back
}

// HandleFileUpload stores the form file and runs the after-upload hook.
func (h *Handler) HandleFileUpload(c *gin.Context, config FileUploadConfig) {
	fieldName := config.FormFieldName
	if fieldName == "" {
		fieldName = "file"
	}

	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: fieldName + " is required"})
		return
	}

	ctx := c.Request.Context()
	f, err := h.fileService.Upload(ctx, file.UploadInput{
		FileHeader:   fileHeader,
		UserID:       auth.GetUserID(c),
		MaxSizeBytes: config.MaxSizeBytes,
		AllowedTypes: config.AllowedTypes,
		ResizeImage:  config.ResizeImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if config.AfterUpload != nil {
		if err := config.AfterUpload(ctx, f.ID); err != nil {
			if delErr := h.fileService.Delete(ctx, f.ID); delErr != nil {
				logging.FromGin(c).Warn("rollback upload failed", "file_id", f.ID, "error", delErr)
			}
			response.Error(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, NewFileUploadResponse(f))
}

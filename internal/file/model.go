package file

import (
	"time"

	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(apperror.KindNotFound, "file not found")
	ErrNoThumbnail     = apperror.New(apperror.KindNotFound, "thumbnail not available for this file")
	ErrEmptyFile       = apperror.New(apperror.KindBadRequest, "file is empty")
	ErrFileTooLarge    = apperror.New(apperror.KindBadRequest, "file is too large")
	ErrUnsupportedType = apperror.New(apperror.KindBadRequest, "file type is not allowed")
	ErrInvalidImage    = apperror.New(apperror.KindBadRequest, "file is not a valid image")
)

// ImageContentTypes are the formats the image processor can decode.
var ImageContentTypes = []string{"image/jpeg", "image/png", "image/gif"}

// File is the metadata row of an uploaded blob.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/files/" + id
}

// ThumbnailURL returns the public URL for accessing a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/files/" + id + "/thumbnail"
}

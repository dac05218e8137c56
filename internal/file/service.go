package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/logging"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/storage"
)

// UploadInput describes one upload and the limits it must respect.
type UploadInput struct {
	FileHeader   *multipart.FileHeader
	UserID       string
	MaxSizeBytes int64    // 0 = no limit
	AllowedTypes []string // empty = allow all
	ResizeImage  bool     // re-encode as JPEG fitting storage.CoverMaxSide
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*File, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*File, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
	now     func() time.Time
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
		now:     time.Now,
	}
}

// readLimited reads the upload, failing once it exceeds maxSize.
func readLimited(header *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if maxSize > 0 && header.Size > maxSize {
		return nil, ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	var r io.Reader = src
	if maxSize > 0 {
		r = io.LimitReader(src, maxSize+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file failed: %w", err)
	}
	if maxSize > 0 && int64(len(content)) > maxSize {
		return nil, ErrFileTooLarge
	}
	if len(content) == 0 {
		return nil, ErrEmptyFile
	}
	return content, nil
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	content, err := readLimited(in.FileHeader, in.MaxSizeBytes)
	if err != nil {
		return nil, err
	}

	// Sniff the bytes; the client supplied header is not trusted.
	contentType := http.DetectContentType(content)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if len(in.AllowedTypes) > 0 && !slices.Contains(in.AllowedTypes, contentType) {
		return nil, ErrUnsupportedType
	}

	ext := strings.ToLower(filepath.Ext(in.FileHeader.Filename))
	if in.ResizeImage {
		resized, err := s.imgProc.Fit(bytes.NewReader(content), storage.CoverMaxSide)
		if err != nil {
			return nil, ErrInvalidImage
		}
		content = resized.Bytes()
		contentType = "image/jpeg"
		ext = ".jpg"
	}

	fileID := uuid.NewString()

	// Sharding path: upload/ab/UUID.ext
	shard := fileID[:2]
	storagePath := fmt.Sprintf("upload/%s/%s%s", shard, fileID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("save file to storage failed: %w", err)
	}

	var thumbnailPath *string
	if slices.Contains(ImageContentTypes, contentType) {
		thumbnailPath = s.saveThumbnail(ctx, content, shard, fileID)
	}

	f := &File{
		ID:            fileID,
		UserID:        in.UserID,
		Filename:      filepath.Base(in.FileHeader.Filename),
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(content)),
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.removeBlobs(ctx, f)
		return nil, err
	}

	return f, nil
}

// saveThumbnail is best effort: a failed thumbnail never fails the upload.
func (s *service) saveThumbnail(ctx context.Context, content []byte, shard, fileID string) *string {
	logger := logging.FromContext(ctx)

	thumb, err := s.imgProc.Fit(bytes.NewReader(content), storage.ThumbnailMaxSide)
	if err != nil {
		logger.Warn("thumbnail generation failed", "file_id", fileID, "error", err)
		return nil
	}

	path := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, fileID)
	if err := s.storage.Save(ctx, path, thumb); err != nil {
		logger.Warn("thumbnail save failed", "file_id", fileID, "error", err)
		return nil
	}
	return &path
}

func (s *service) removeBlobs(ctx context.Context, f *File) {
	logger := logging.FromContext(ctx)
	if err := s.storage.Delete(ctx, f.StoragePath); err != nil {
		logger.Warn("delete blob failed", "path", f.StoragePath, "error", err)
	}
	if f.ThumbnailPath != nil {
		if err := s.storage.Delete(ctx, *f.ThumbnailPath); err != nil {
			logger.Warn("delete thumbnail failed", "path", *f.ThumbnailPath, "error", err)
		}
	}
}

// Delete drops the metadata row and then the blobs.
func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeBlobs(ctx, f)
	return nil
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) open(ctx context.Context, path string) (io.ReadCloser, error) {
	stream, err := s.storage.Get(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("retrieve file from storage failed: %w", err)
	}
	return stream, nil
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.open(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	return stream, f, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if f.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.open(ctx, *f.ThumbnailPath)
	if err != nil {
		return nil, nil, err
	}
	return stream, f, nil
}

package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/storage"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, f *File) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*File), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// formFile builds a real multipart.FileHeader holding content.
func formFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestService(t *testing.T, repo Repository) (*service, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewService(repo, store).(*service), store
}

func readBlob(t *testing.T, store storage.Storage, key string) []byte {
	t.Helper()
	rc, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return data
}

func TestUpload_ResizesCoverAndCreatesThumbnail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Create", ctx, mock.AnythingOfType("*file.File")).Return(nil)
	svc, store := newTestService(t, repo)

	f, err := svc.Upload(ctx, UploadInput{
		FileHeader:   formFile(t, "cover.png", pngBytes(t, 1600, 800)),
		UserID:       "user-1",
		MaxSizeBytes: 5 << 20,
		AllowedTypes: ImageContentTypes,
		ResizeImage:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", f.ContentType)
	assert.Equal(t, "cover.png", f.Filename)
	assert.Equal(t, "user-1", f.UserID)
	assert.Equal(t, "upload/"+f.ID[:2]+"/"+f.ID+".jpg", f.StoragePath)
	require.NotNil(t, f.ThumbnailPath)

	cover, err := jpeg.DecodeConfig(bytes.NewReader(readBlob(t, store, f.StoragePath)))
	require.NoError(t, err)
	assert.Equal(t, storage.CoverMaxSide, cover.Width)
	assert.Equal(t, 500, cover.Height)

	thumb, err := jpeg.DecodeConfig(bytes.NewReader(readBlob(t, store, *f.ThumbnailPath)))
	require.NoError(t, err)
	assert.Equal(t, storage.ThumbnailMaxSide, thumb.Width)
	assert.Equal(t, 100, thumb.Height)
}

func TestUpload_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input func(t *testing.T) UploadInput
		want  error
	}{
		{
			name: "too large",
			input: func(t *testing.T) UploadInput {
				return UploadInput{FileHeader: formFile(t, "big.png", pngBytes(t, 64, 64)), MaxSizeBytes: 10}
			},
			want: ErrFileTooLarge,
		},
		{
			name: "empty",
			input: func(t *testing.T) UploadInput {
				return UploadInput{FileHeader: formFile(t, "empty.png", nil)}
			},
			want: ErrEmptyFile,
		},
		{
			name: "not an allowed type",
			input: func(t *testing.T) UploadInput {
				return UploadInput{FileHeader: formFile(t, "notes.png", []byte("plain text, not a picture")), AllowedTypes: ImageContentTypes}
			},
			want: ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc, _ := newTestService(t, repo)

			_, err := svc.Upload(ctx, tt.input(t))
			assert.ErrorIs(t, err, tt.want)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpload_RemovesBlobsWhenMetadataFails(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	dbErr := assert.AnError

	var saved *File
	repo.On("Create", ctx, mock.AnythingOfType("*file.File")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*File) }).
		Return(dbErr)
	svc, store := newTestService(t, repo)

	_, err := svc.Upload(ctx, UploadInput{FileHeader: formFile(t, "a.png", pngBytes(t, 32, 32))})
	require.ErrorIs(t, err, dbErr)
	require.NotNil(t, saved)

	_, err = store.Get(ctx, saved.StoragePath)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	require.NotNil(t, saved.ThumbnailPath)
	_, err = store.Get(ctx, *saved.ThumbnailPath)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestDownloadThumbnail_Missing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("GetByID", ctx, "doc").Return(&File{ID: "doc", StoragePath: "upload/do/doc.pdf"}, nil)
	repo.On("GetByID", ctx, "gone").Return(nil, ErrNotFound)
	svc, _ := newTestService(t, repo)

	_, _, err := svc.DownloadThumbnail(ctx, "doc")
	assert.ErrorIs(t, err, ErrNoThumbnail)

	_, _, err = svc.Download(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)

	// Metadata without a blob behind it is reported as missing.
	_, _, err = svc.Download(ctx, "doc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_RemovesRowThenBlobs(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc, store := newTestService(t, repo)

	require.NoError(t, store.Save(ctx, "upload/ab/x.jpg", bytes.NewReader([]byte("x"))))
	thumb := "upload/ab/x_thumb.jpg"
	require.NoError(t, store.Save(ctx, thumb, bytes.NewReader([]byte("t"))))

	repo.On("GetByID", ctx, "x").Return(&File{ID: "x", StoragePath: "upload/ab/x.jpg", ThumbnailPath: &thumb}, nil)
	repo.On("Delete", ctx, "x").Return(nil)

	require.NoError(t, svc.Delete(ctx, "x"))
	_, err := store.Get(ctx, "upload/ab/x.jpg")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	_, err = store.Get(ctx, thumb)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

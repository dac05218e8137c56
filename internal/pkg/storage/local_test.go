package storage

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "upload/ab/one.txt", bytes.NewReader([]byte("hello"))))
	require.NoError(t, s.Save(ctx, "upload/ab/one.txt", bytes.NewReader([]byte("replaced"))))

	rc, err := s.Get(ctx, "upload/ab/one.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "replaced", string(data))

	require.NoError(t, s.Delete(ctx, "upload/ab/one.txt"))
	_, err = s.Get(ctx, "upload/ab/one.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// Deleting twice is fine.
	assert.NoError(t, s.Delete(ctx, "upload/ab/one.txt"))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../outside", "a/../../outside", "/etc/passwd", "", "."} {
		t.Run(key, func(t *testing.T) {
			assert.Error(t, s.Save(ctx, key, bytes.NewReader(nil)))
			_, err := s.Get(ctx, key)
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrObjectNotFound)
		})
	}
}

func TestImageProcessor_Fit(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, image.NewRGBA(image.Rect(0, 0, 300, 150))))
	p := NewImageProcessor()

	out, err := p.Fit(bytes.NewReader(src.Bytes()), ThumbnailMaxSide)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(out)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 100, cfg.Height)

	// Small images are re-encoded but not enlarged.
	out, err = p.Fit(bytes.NewReader(src.Bytes()), CoverMaxSide)
	require.NoError(t, err)
	cfg, err = jpeg.DecodeConfig(out)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)

	_, err = p.Fit(bytes.NewReader([]byte("nope")), CoverMaxSide)
	assert.Error(t, err)
}

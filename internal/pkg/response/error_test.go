package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func render(err error) (int, ErrorResponse) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Error(c, err)

	var body ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"bad request", apperror.New(apperror.KindBadRequest, "bad"), http.StatusBadRequest, "bad"},
		{"unauthorized", apperror.New(apperror.KindUnauthorized, "who"), http.StatusUnauthorized, "who"},
		{"forbidden", apperror.New(apperror.KindForbidden, "no"), http.StatusForbidden, "no"},
		{"not found", apperror.New(apperror.KindNotFound, "gone"), http.StatusNotFound, "gone"},
		{"conflict", apperror.New(apperror.KindConflict, "dup"), http.StatusConflict, "dup"},
		{"wrapped app error", fmt.Errorf("ctx: %w", apperror.New(apperror.KindConflict, "dup")), http.StatusConflict, "dup"},
		{"internal kind hides message", apperror.New(apperror.KindInternal, "db exploded"), http.StatusInternalServerError, "internal server error"},
		{"plain error", assert.AnError, http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := render(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

func TestBindError_PlainText(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	BindError(c, assert.AnError)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid request", body.Error)
	assert.Equal(t, assert.AnError.Error(), body.Details)
}

func TestNewPageResponse(t *testing.T) {
	page := NewPageResponse([]string{"a", "b"}, 10, 2, 12)
	assert.Equal(t, []string{"a", "b"}, page.Items)
	assert.Equal(t, 12, page.Total)

	empty := NewPageResponse[string](nil, 0, 20, 0)
	assert.NotNil(t, empty.Items)
}

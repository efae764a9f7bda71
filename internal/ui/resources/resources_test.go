package resources

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticPath(t *testing.T) {
	assert.Equal(t, "/static/app.css", StaticPath("app.css"))
}

func TestHandler_ServesStylesheet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, StaticPath("app.css"), nil)
	w := httptest.NewRecorder()

	Handler().ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), ".shell-sidebar")
	assert.NotEmpty(t, res.Header.Get("Cache-Control"))
}

func TestHandler_MissingAsset(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, StaticPath("nope.js"), nil)
	w := httptest.NewRecorder()

	Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

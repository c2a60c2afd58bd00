package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serve(allowed []string, method, origin string) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(method, "/api/rules", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	CORS(allowed)(next).ServeHTTP(rec, req)
	return rec
}

func TestCORSWildcard(t *testing.T) {
	rec := serve([]string{"*"}, http.MethodGet, "https://site.example")

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "https://site.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSExplicitOrigin(t *testing.T) {
	rec := serve([]string{"https://site.example"}, http.MethodGet, "https://site.example")
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = serve([]string{"https://site.example"}, http.MethodGet, "https://evil.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	rec := serve([]string{"*"}, http.MethodOptions, "https://site.example")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/duetodo/internal/pkg/response"
)

func newLoggedRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(zerolog.New(buf)))
	r.GET("/todos", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("handler ran")
		c.JSON(200, gin.H{"requestID": c.GetString(response.RequestIDKey)})
	})
	r.GET("/health", func(c *gin.Context) { c.Status(200) })
	r.GET("/missing", func(c *gin.Context) { response.NotFound(c, "nope", "NOT_FOUND") })
	return r
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/todos?all=true", nil))
	require.Equal(t, 200, w.Code)

	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	assert.JSONEq(t, `{"requestID":"`+id+`"}`, w.Body.String())

	lines := logLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "handler ran", lines[0]["message"])
	assert.Equal(t, id, lines[0]["request_id"])

	access := lines[1]
	assert.Equal(t, "info", access["level"])
	assert.Equal(t, "GET", access["method"])
	assert.Equal(t, "/todos", access["path"])
	assert.Equal(t, "all=true", access["query"])
	assert.Equal(t, float64(200), access["status"])
	assert.Contains(t, access["message"], "["+id+"] GET /todos 200")
}

func TestLogger_HonoursIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf)

	req := httptest.NewRequest("GET", "/missing", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 404, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "abc-123", body.RequestID)

	lines := logLines(t, &buf)
	require.NotEmpty(t, lines)
	access := lines[len(lines)-1]
	assert.Equal(t, "warn", access["level"])
	assert.Equal(t, "abc-123", access["request_id"])
}

func TestLogger_SkipsConfiguredPaths(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, 200, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Empty(t, buf.String())
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		allowed    string
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"matching origin", "http://localhost:3000", "http://localhost:3000", "GET", "http://localhost:3000", 200},
		{"foreign origin", "http://localhost:3000", "http://evil.test", "GET", "", 200},
		{"wildcard echoes origin", "*", "http://app.test", "GET", "http://app.test", 200},
		{"preflight", "*", "http://app.test", "OPTIONS", "http://app.test", 204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.allowed))
			r.GET("/todos", func(c *gin.Context) { c.Status(200) })

			req := httptest.NewRequest(tt.method, "/todos", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
			assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), RequestIDHeader)
		})
	}
}

package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAPIResponse(t *testing.T) {
	r := CreateAPIResponse(map[string]int{"n": 1}, nil, "")
	assert.Equal(t, []string{}, r.Errors)
	assert.Equal(t, Version, r.Metadata.Version)
	_, err := uuid.Parse(r.Metadata.RequestID)
	assert.NoError(t, err)

	r = CreateAPIResponse(nil, []string{"bad"}, "given")
	assert.Equal(t, "given", r.Metadata.RequestID)
	assert.Nil(t, r.Data)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { Success(c, http.StatusOK, RequestIDFrom(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Contains(t, w.Body.String(), generated)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

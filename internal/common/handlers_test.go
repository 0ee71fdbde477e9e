package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	v0common "SchedulingAPI/internal/v0/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func statusRouter(p Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(v0common.RequestID())
	RegisterRoutes(r.Group("/api"), p)
	return r
}

func TestStatus(t *testing.T) {
	cases := []struct {
		name  string
		ping  Pinger
		code  int
		store string
	}{
		{"healthy", pingFunc(func(context.Context) error { return nil }), http.StatusOK, "ok"},
		{"no store", nil, http.StatusOK, "ok"},
		{"store down", pingFunc(func(context.Context) error { return errors.New("database is locked") }), http.StatusServiceUnavailable, "database is locked"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			statusRouter(tc.ping).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
			assert.Equal(t, tc.code, w.Code)

			var body struct {
				Data     StatusResponse    `json:"data"`
				Metadata v0common.Metadata `json:"metadata"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.store, body.Data.Store)
			assert.NotEmpty(t, body.Data.Uptime)
			assert.Equal(t, w.Header().Get(v0common.RequestIDHeader), body.Metadata.RequestID)
		})
	}
}

func TestAccessLogAndRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	r := gin.New()
	r.Use(v0common.RequestID(), AccessLog(log), Recovery(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(v0common.RequestIDHeader, "req-1")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body v0common.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"internal server error"}, body.Errors)
	assert.Equal(t, "req-1", body.Metadata.RequestID)

	requests := logs.FilterMessage("request").All()
	require.Len(t, requests, 2)
	assert.Equal(t, zap.InfoLevel, requests[0].Level)
	assert.Equal(t, zap.ErrorLevel, requests[1].Level)
	assert.Equal(t, "req-1", requests[1].ContextMap()["requestId"])
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

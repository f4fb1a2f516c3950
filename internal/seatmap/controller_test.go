package seatmap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubSeatmapService struct {
	seatmap *Seatmap
	calls   int
}

func (s *stubSeatmapService) GetSeatmap(ctx context.Context, showID string) (*Seatmap, error) {
	s.calls++
	return s.seatmap, nil
}

func (s *stubSeatmapService) Invalidate(ctx context.Context, showID string) error { return nil }

func newSeatmapRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupSeatmapRoutes(router.Group("/api/v1"), NewController(svc))
	return router
}

func TestGetSeatmapController(t *testing.T) {
	t.Run("rejects a malformed show id before hitting the service", func(t *testing.T) {
		svc := &stubSeatmapService{}
		router := newSeatmapRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/shows/not-a-uuid/seatmap", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid show ID format")
		assert.Zero(t, svc.calls)
	})

	t.Run("serves the seatmap for a well-formed show id", func(t *testing.T) {
		svc := &stubSeatmapService{seatmap: &Seatmap{
			ShowID:      "11111111-1111-4111-8111-111111111111",
			GeneratedAt: time.Now().UTC(),
		}}
		router := newSeatmapRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/shows/11111111-1111-4111-8111-111111111111/seatmap", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, svc.calls)
	})
}

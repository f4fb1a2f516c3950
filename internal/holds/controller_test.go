package holds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinebook/internal/seatlock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubHoldService struct {
	releasedBy string
	releasedID string
}

func (s *stubHoldService) CreateHold(ctx context.Context, userID string, req CreateHoldRequest) (*HoldResponse, error) {
	return nil, nil
}

func (s *stubHoldService) GetHold(ctx context.Context, userID, holdID string) (*HoldResponse, error) {
	return &HoldResponse{HoldID: holdID, UserID: userID, Status: seatlock.HoldStatusHeld}, nil
}

func (s *stubHoldService) ReleaseHold(ctx context.Context, userID, holdID string) (*ReleaseHoldResponse, error) {
	s.releasedBy = userID
	s.releasedID = holdID
	return &ReleaseHoldResponse{HoldID: holdID, Status: seatlock.HoldStatusReleased}, nil
}

func newHoldRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupHoldRoutes(router.Group("/api/v1"), NewController(svc))
	return router
}

func TestHoldRoutes(t *testing.T) {
	const holdID = "22222222-2222-4222-8222-222222222222"

	t.Run("release is a POST on the hold resource", func(t *testing.T) {
		svc := &stubHoldService{}
		router := newHoldRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/holds/"+holdID+"/release", nil)
		req.Header.Set("x-user-id", "user-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", svc.releasedBy)
		assert.Equal(t, holdID, svc.releasedID)
	})

	t.Run("rejects a malformed hold id", func(t *testing.T) {
		router := newHoldRouter(&stubHoldService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/holds/not-a-uuid", nil)
		req.Header.Set("x-user-id", "user-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid hold ID format")
	})

	t.Run("rejects requests without a caller identity", func(t *testing.T) {
		router := newHoldRouter(&stubHoldService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/holds/"+holdID, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

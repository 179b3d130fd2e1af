package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/pkg/apperrors"
)

type mockInvitationService struct {
	createFn func(ctx context.Context, req dto.CreateInvitationRequest, invitedBy int64) (*dto.InvitationResponse, error)
	resendFn func(ctx context.Context, id int64) (*dto.InvitationResponse, error)
	cancelFn func(ctx context.Context, id int64) error
	acceptFn func(ctx context.Context, req dto.AcceptInvitationRequest) (*models.User, error)
	listFn   func(ctx context.Context, status *models.InvitationStatus, page, limit int) ([]dto.InvitationResponse, dto.PaginationInfo, error)
}

func (m *mockInvitationService) Create(ctx context.Context, req dto.CreateInvitationRequest, invitedBy int64) (*dto.InvitationResponse, error) {
	return m.createFn(ctx, req, invitedBy)
}

func (m *mockInvitationService) Resend(ctx context.Context, id int64) (*dto.InvitationResponse, error) {
	return m.resendFn(ctx, id)
}

func (m *mockInvitationService) Cancel(ctx context.Context, id int64) error {
	return m.cancelFn(ctx, id)
}

func (m *mockInvitationService) Accept(ctx context.Context, req dto.AcceptInvitationRequest) (*models.User, error) {
	return m.acceptFn(ctx, req)
}

func (m *mockInvitationService) List(ctx context.Context, status *models.InvitationStatus, page, limit int) ([]dto.InvitationResponse, dto.PaginationInfo, error) {
	return m.listFn(ctx, status, page, limit)
}

func invitationTestRouter(svc *mockInvitationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewInvitationController(svc)

	router.POST("/invitations", controller.Create)
	router.GET("/invitations", controller.List)
	router.POST("/invitations/:id/resend", controller.Resend)
	router.DELETE("/invitations/:id", controller.Cancel)
	router.POST("/invitations/accept", controller.Accept)
	return router
}

func decodeError(t *testing.T, body *bytes.Buffer) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestInvitationControllerCreate(t *testing.T) {
	svc := &mockInvitationService{
		createFn: func(ctx context.Context, req dto.CreateInvitationRequest, invitedBy int64) (*dto.InvitationResponse, error) {
			return &dto.InvitationResponse{
				ID:       1,
				Email:    req.Email,
				UserType: models.UserType(req.UserType),
				Status:   models.InvitationStatusPending,
			}, nil
		},
	}
	router := invitationTestRouter(svc)

	body := `{"email":"scholar@example.com","userType":"scholar"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invitations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data dto.InvitationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "scholar@example.com", resp.Data.Email)
	assert.Equal(t, models.InvitationStatusPending, resp.Data.Status)
}

func TestInvitationControllerCreate_InvalidBody(t *testing.T) {
	router := invitationTestRouter(&mockInvitationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invitations", bytes.NewBufferString(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w.Body)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
}

func TestInvitationControllerCreate_PendingConflict(t *testing.T) {
	svc := &mockInvitationService{
		createFn: func(ctx context.Context, req dto.CreateInvitationRequest, invitedBy int64) (*dto.InvitationResponse, error) {
			return nil, apperrors.ErrInvitationPending
		},
	}
	router := invitationTestRouter(svc)

	body := `{"email":"scholar@example.com","userType":"scholar"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invitations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeError(t, w.Body)
	assert.Equal(t, dto.ErrorCodeResourceConflict, resp.Error.Code)
}

func TestInvitationControllerList(t *testing.T) {
	var gotStatus *models.InvitationStatus
	svc := &mockInvitationService{
		listFn: func(ctx context.Context, status *models.InvitationStatus, page, limit int) ([]dto.InvitationResponse, dto.PaginationInfo, error) {
			gotStatus = status
			return []dto.InvitationResponse{
					{ID: 1, Email: "a@example.com", Status: models.InvitationStatusPending},
				}, dto.PaginationInfo{
					Page: page, Limit: limit, TotalItems: 1, TotalPages: 1,
				}, nil
		},
	}
	router := invitationTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invitations?status=pending&page=1&limit=20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotStatus)
	assert.Equal(t, models.InvitationStatusPending, *gotStatus)

	var resp dto.ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Pagination.TotalItems)
}

func TestInvitationControllerList_InvalidPagination(t *testing.T) {
	router := invitationTestRouter(&mockInvitationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invitations?limit=500", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w.Body)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
}

func TestInvitationControllerResend_LimitReached(t *testing.T) {
	svc := &mockInvitationService{
		resendFn: func(ctx context.Context, id int64) (*dto.InvitationResponse, error) {
			return nil, apperrors.ErrResendLimitReached
		},
	}
	router := invitationTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invitations/5/resend", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w.Body)
	assert.Equal(t, dto.ErrorCodeInvalidState, resp.Error.Code)
}

func TestInvitationControllerCancel_NotFound(t *testing.T) {
	svc := &mockInvitationService{
		cancelFn: func(ctx context.Context, id int64) error {
			return apperrors.ErrInvitationNotFound
		},
	}
	router := invitationTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/invitations/5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w.Body)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, resp.Error.Code)
}

func TestInvitationControllerCancel_BadID(t *testing.T) {
	router := invitationTestRouter(&mockInvitationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/invitations/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvitationControllerAccept_InvalidToken(t *testing.T) {
	svc := &mockInvitationService{
		acceptFn: func(ctx context.Context, req dto.AcceptInvitationRequest) (*models.User, error) {
			return nil, apperrors.ErrInvalidInviteToken
		},
	}
	router := invitationTestRouter(svc)

	body := `{"token":"abcdefghijklmnopqrstuvwxyzABCDEF","name":"New Scholar","password":"password123"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invitations/accept", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w.Body)
	assert.Equal(t, dto.ErrorCodeInvalidState, resp.Error.Code)
}

func TestInvitationControllerAccept(t *testing.T) {
	svc := &mockInvitationService{
		acceptFn: func(ctx context.Context, req dto.AcceptInvitationRequest) (*models.User, error) {
			return &models.User{
				ID:        42,
				Email:     "scholar@example.com",
				Name:      req.Name,
				UserType:  models.UserTypeScholar,
				CreatedAt: time.Now(),
			}, nil
		},
	}
	router := invitationTestRouter(svc)

	body := `{"token":"abcdefghijklmnopqrstuvwxyzABCDEF","name":"New Scholar","password":"password123"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invitations/accept", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.Data.ID)
	assert.Equal(t, models.UserTypeScholar, resp.Data.UserType)
}

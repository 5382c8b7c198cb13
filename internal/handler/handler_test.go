package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"points-board-api/internal/dto"
	"points-board-api/internal/middleware"
	"points-board-api/internal/response"
	"points-board-api/internal/service"
)

const testUserID uint = 7

// withUser stands in for the auth middleware
func withUser(c *gin.Context) {
	claims := &service.Claims{UserID: testUserID}
	claims.ID = "test-jti"
	c.Set(middleware.ContextUserIDKey, testUserID)
	c.Set(middleware.ContextClaimsKey, claims)
	c.Next()
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", response.NewAppError(response.ErrCodeValidation, "bad", ""), http.StatusBadRequest, `{"message":"bad","code":"VALIDATION_ERROR"}`},
		{"unauthorized", response.NewAppError(response.ErrCodeUnauthorized, "no", ""), http.StatusUnauthorized, `{"message":"no","code":"UNAUTHORIZED"}`},
		{"forbidden", response.NewAppError(response.ErrCodeForbidden, "mine", ""), http.StatusForbidden, `{"message":"mine","code":"FORBIDDEN"}`},
		{"not found", response.NewAppError(response.ErrCodeNotFound, "gone", ""), http.StatusNotFound, `{"message":"gone","code":"NOT_FOUND"}`},
		{"conflict", response.NewAppError(response.ErrCodeAlreadyExists, "dup", ""), http.StatusConflict, `{"message":"dup","code":"ALREADY_EXISTS"}`},
		{"internal hides details", response.NewAppError(response.ErrCodeInternal, "Failed to x", "pq: secret detail"), http.StatusInternalServerError, `{"message":"Internal server error","code":"INTERNAL_ERROR"}`},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, `{"message":"Internal server error","code":"INTERNAL_ERROR"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter()
			router.GET("/x", func(c *gin.Context) { handleServiceError(c, zap.NewNop(), tt.err) })

			w := doRequest(router, http.MethodGet, "/x", "")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mock       *MockAuthService
		wantStatus int
		wantBody   string
	}{
		{
			name:       "created",
			body:       `{"email":"a@b.c","password":"pw"}`,
			mock:       &MockAuthService{RegisterFunc: func(ctx context.Context, req *dto.CredentialsRequest) (uint, error) { return 3, nil }},
			wantStatus: http.StatusCreated,
			wantBody:   `{"message":"User registered successfully","id":3}`,
		},
		{
			name:       "empty body",
			body:       "",
			mock:       &MockAuthService{},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"No data provided in the request body","code":"VALIDATION_ERROR"}`,
		},
		{
			name:       "missing password",
			body:       `{"email":"a@b.c"}`,
			mock:       &MockAuthService{},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Missing required fields: password","code":"VALIDATION_ERROR"}`,
		},
		{
			name: "duplicate",
			body: `{"email":"a@b.c","password":"pw"}`,
			mock: &MockAuthService{RegisterFunc: func(ctx context.Context, req *dto.CredentialsRequest) (uint, error) {
				return 0, response.NewAppError(response.ErrCodeAlreadyExists, "User already exists", "")
			}},
			wantStatus: http.StatusConflict,
			wantBody:   `{"message":"User already exists","code":"ALREADY_EXISTS"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter()
			router.POST("/register", NewAuthHandler(tt.mock, zap.NewNop()).Register)

			w := doRequest(router, http.MethodPost, "/register", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestAuthHandler_LoginAndLogout(t *testing.T) {
	var loggedOut string
	mock := &MockAuthService{
		LoginFunc: func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
			return &dto.LoginResponse{AccessToken: "tok"}, nil
		},
		LogoutFunc: func(ctx context.Context, claims *service.Claims) error {
			loggedOut = claims.ID
			return nil
		},
	}
	h := NewAuthHandler(mock, zap.NewNop())
	router := newTestRouter()
	router.POST("/login", h.Login)
	router.POST("/logout", withUser, h.Logout)
	router.GET("/me", withUser, h.Me)

	w := doRequest(router, http.MethodPost, "/login", `{"email":"a@b.c","password":"pw"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"access_token":"tok"}`, w.Body.String())

	w = doRequest(router, http.MethodPost, "/logout", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Successfully logged out"}`, w.Body.String())
	assert.Equal(t, "test-jti", loggedOut)

	w = doRequest(router, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"email":""}`, w.Body.String())
}

func TestBoardHandler_CreateBoard(t *testing.T) {
	end := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	var gotUser uint
	mock := &MockBoardService{
		CreateBoardFunc: func(ctx context.Context, userID uint, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
			gotUser = userID
			return &dto.BoardResponse{ID: 1, Name: req.Name, EndTime: *req.EndTime, UserID: userID, Participants: []dto.ParticipantResponse{}}, nil
		},
	}
	router := newTestRouter()
	router.POST("/board/create", withUser, NewBoardHandler(mock, zap.NewNop()).CreateBoard)

	w := doRequest(router, http.MethodPost, "/board/create", `{"name":"Finals","endTime":"`+end.Format(time.RFC3339)+`"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Finals","endTime":"2030-01-02T03:04:05Z","userId":7,"participants":[]}`, w.Body.String())
	assert.Equal(t, testUserID, gotUser)

	w = doRequest(router, http.MethodPost, "/board/create", `{"name":"Finals"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Missing required fields: endTime","code":"VALIDATION_ERROR"}`, w.Body.String())
}

func TestBoardHandler_GetBoard(t *testing.T) {
	mock := &MockBoardService{
		GetBoardFunc: func(ctx context.Context, boardID uint) (*dto.BoardResponse, error) {
			if boardID == 404 {
				return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
			}
			return &dto.BoardResponse{ID: boardID, Participants: []dto.ParticipantResponse{}}, nil
		},
	}
	router := newTestRouter()
	router.GET("/boards/:id", withUser, NewBoardHandler(mock, zap.NewNop()).GetBoard)

	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/boards/5", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/boards/404", "").Code)

	w := doRequest(router, http.MethodGet, "/boards/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid id","code":"VALIDATION_ERROR"}`, w.Body.String())
}

func TestBoardHandler_DeleteBoard(t *testing.T) {
	mock := &MockBoardService{
		DeleteBoardFunc: func(ctx context.Context, userID, boardID uint) error {
			if boardID == 2 {
				return response.NewAppError(response.ErrCodeForbidden, "You do not have permission to modify this board", "")
			}
			return nil
		},
	}
	router := newTestRouter()
	router.DELETE("/boards/delete/:boardId", withUser, NewBoardHandler(mock, zap.NewNop()).DeleteBoard)

	w := doRequest(router, http.MethodDelete, "/boards/delete/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Board deleted successfully","id":1}`, w.Body.String())

	w = doRequest(router, http.MethodDelete, "/boards/delete/2", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestParticipantHandler_UpdateParticipants(t *testing.T) {
	var got []dto.ParticipantUpdate
	mock := &MockParticipantService{
		UpdateParticipantsFunc: func(ctx context.Context, userID, boardID uint, updates []dto.ParticipantUpdate) error {
			got = updates
			return nil
		},
	}
	router := newTestRouter()
	router.PUT("/board/update-participants/:boardId", withUser, NewParticipantHandler(mock, zap.NewNop()).UpdateParticipants)

	w := doRequest(router, http.MethodPut, "/board/update-participants/3", `[{"id":1,"name":"a","points":2}]`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Participants updated successfully"}`, w.Body.String())
	require.Len(t, got, 1)
	assert.Equal(t, 2, *got[0].Points)

	w = doRequest(router, http.MethodPut, "/board/update-participants/3", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"No data provided in the request body","code":"VALIDATION_ERROR"}`, w.Body.String())

	w = doRequest(router, http.MethodPut, "/board/update-participants/3", `{"id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParticipantHandler_AddParticipant(t *testing.T) {
	mock := &MockParticipantService{
		AddParticipantFunc: func(ctx context.Context, userID, boardID uint, req *dto.AddParticipantRequest) (uint, error) {
			return 12, nil
		},
	}
	router := newTestRouter()
	router.POST("/board/add-participant/:boardId", withUser, NewParticipantHandler(mock, zap.NewNop()).AddParticipant)

	w := doRequest(router, http.MethodPost, "/board/add-participant/3", `{"name":"Ann","points":0,"avatar":{"seed":"s"}}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Participant added successfully","id":12}`, w.Body.String())

	w = doRequest(router, http.MethodPost, "/board/add-participant/3", `{"name":"Ann"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Missing required fields: points","code":"VALIDATION_ERROR"}`, w.Body.String())
}

func TestParticipantHandler_DeleteParticipantVariants(t *testing.T) {
	var byID, fromBoard []uint
	mock := &MockParticipantService{
		DeleteParticipantFunc: func(ctx context.Context, userID, participantID uint) error {
			byID = append(byID, participantID)
			return nil
		},
		DeleteParticipantFromBoardFunc: func(ctx context.Context, userID, boardID, participantID uint) error {
			fromBoard = append(fromBoard, boardID, participantID)
			return nil
		},
	}
	router := newTestRouter()
	router.DELETE("/board/delete-participant/:id", withUser, NewParticipantHandler(mock, zap.NewNop()).DeleteParticipant)

	w := doRequest(router, http.MethodDelete, "/board/delete-participant/8", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Participant deleted successfully","id":8}`, w.Body.String())
	assert.Equal(t, []uint{8}, byID)

	w = doRequest(router, http.MethodDelete, "/board/delete-participant/3", `{"id":9}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Participant deleted successfully","id":9}`, w.Body.String())
	assert.Equal(t, []uint{3, 9}, fromBoard)

	w = doRequest(router, http.MethodDelete, "/board/delete-participant/3", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Missing required fields: id","code":"VALIDATION_ERROR"}`, w.Body.String())
}

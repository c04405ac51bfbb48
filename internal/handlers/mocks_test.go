package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/Biriato/ProyectoWeb/internal/middleware"
	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/Biriato/ProyectoWeb/internal/service"
	"github.com/Biriato/ProyectoWeb/internal/validation"
	"github.com/gin-gonic/gin"
)

var errNotImplemented = errors.New("not implemented")

// =============================================================================
// Mock Implementations
// =============================================================================

type mockAuthService struct {
	registerFunc       func(ctx context.Context, req service.RegisterRequest) (*models.User, error)
	loginFunc          func(ctx context.Context, req service.LoginRequest) (*service.LoginResponse, error)
	changePasswordFunc func(ctx context.Context, caller *service.Claims, req service.ChangePasswordRequest) error
	meFunc             func(ctx context.Context, userID int64) (*models.User, error)
	updateProfileFunc  func(ctx context.Context, userID int64, req service.UpdateProfileRequest) (*models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAuthService) Login(ctx context.Context, req service.LoginRequest) (*service.LoginResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAuthService) ChangePassword(ctx context.Context, caller *service.Claims, req service.ChangePasswordRequest) error {
	if m.changePasswordFunc != nil {
		return m.changePasswordFunc(ctx, caller, req)
	}
	return errNotImplemented
}

func (m *mockAuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	if m.meFunc != nil {
		return m.meFunc(ctx, userID)
	}
	return nil, errNotImplemented
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID int64, req service.UpdateProfileRequest) (*models.User, error) {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, userID, req)
	}
	return nil, errNotImplemented
}

type mockListService struct {
	addFunc    func(ctx context.Context, userID int64, req service.AddListEntryRequest) (*models.ListSeries, error)
	updateFunc func(ctx context.Context, userID, seriesID int64, req service.UpdateListEntryRequest) (*models.ListSeries, error)
	removeFunc func(ctx context.Context, userID, seriesID int64) error
	pageFunc   func(ctx context.Context, userID int64, status models.ListStatus, page, limit int) (*service.ListPage, error)
	allFunc    func(ctx context.Context, userID int64) ([]models.ListEntryView, error)
}

func (m *mockListService) Add(ctx context.Context, userID int64, req service.AddListEntryRequest) (*models.ListSeries, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, userID, req)
	}
	return nil, errNotImplemented
}

func (m *mockListService) Update(ctx context.Context, userID, seriesID int64, req service.UpdateListEntryRequest) (*models.ListSeries, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, seriesID, req)
	}
	return nil, errNotImplemented
}

func (m *mockListService) Remove(ctx context.Context, userID, seriesID int64) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, userID, seriesID)
	}
	return errNotImplemented
}

func (m *mockListService) Page(ctx context.Context, userID int64, status models.ListStatus, page, limit int) (*service.ListPage, error) {
	if m.pageFunc != nil {
		return m.pageFunc(ctx, userID, status, page, limit)
	}
	return nil, errNotImplemented
}

func (m *mockListService) All(ctx context.Context, userID int64) ([]models.ListEntryView, error) {
	if m.allFunc != nil {
		return m.allFunc(ctx, userID)
	}
	return nil, errNotImplemented
}

type mockSeriesService struct {
	allFunc    func(ctx context.Context) ([]models.Series, error)
	topFunc    func(ctx context.Context, page int) (*service.TopSeriesPage, error)
	getFunc    func(ctx context.Context, id int64) (*models.Series, error)
	pageFunc   func(ctx context.Context, filter models.SeriesFilter, page, limit int) (*service.SeriesPage, error)
	genresFunc func(ctx context.Context) ([]string, error)
	createFunc func(ctx context.Context, req service.CreateSeriesRequest) (*models.Series, error)
	updateFunc func(ctx context.Context, id int64, req service.UpdateSeriesRequest) (*models.Series, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockSeriesService) All(ctx context.Context) ([]models.Series, error) {
	if m.allFunc != nil {
		return m.allFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockSeriesService) Top(ctx context.Context, page int) (*service.TopSeriesPage, error) {
	if m.topFunc != nil {
		return m.topFunc(ctx, page)
	}
	return nil, errNotImplemented
}

func (m *mockSeriesService) Get(ctx context.Context, id int64) (*models.Series, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockSeriesService) Page(ctx context.Context, filter models.SeriesFilter, page, limit int) (*service.SeriesPage, error) {
	if m.pageFunc != nil {
		return m.pageFunc(ctx, filter, page, limit)
	}
	return nil, errNotImplemented
}

func (m *mockSeriesService) Genres(ctx context.Context) ([]string, error) {
	if m.genresFunc != nil {
		return m.genresFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockSeriesService) Create(ctx context.Context, req service.CreateSeriesRequest) (*models.Series, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockSeriesService) Update(ctx context.Context, id int64, req service.UpdateSeriesRequest) (*models.Series, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, errNotImplemented
}

func (m *mockSeriesService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errNotImplemented
}

type mockUserService struct {
	createFunc func(ctx context.Context, req service.CreateUserRequest) (*models.User, error)
	pageFunc   func(ctx context.Context, filter models.UserFilter, page, limit int) (*service.UserPage, error)
	getFunc    func(ctx context.Context, id int64) (*models.User, error)
	updateFunc func(ctx context.Context, id int64, req service.UpdateUserRequest) (*models.User, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockUserService) Create(ctx context.Context, req service.CreateUserRequest) (*models.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockUserService) Page(ctx context.Context, filter models.UserFilter, page, limit int) (*service.UserPage, error) {
	if m.pageFunc != nil {
		return m.pageFunc(ctx, filter, page, limit)
	}
	return nil, errNotImplemented
}

func (m *mockUserService) Get(ctx context.Context, id int64) (*models.User, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockUserService) Update(ctx context.Context, id int64, req service.UpdateUserRequest) (*models.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, errNotImplemented
}

func (m *mockUserService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errNotImplemented
}

type recordingLogins struct {
	outcomes []string
}

func (r *recordingLogins) LoginAttempt(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

// =============================================================================
// Test Helpers
// =============================================================================

var testUser = &service.Claims{UserID: 7, Email: "user@example.com", Role: models.RoleUser}

func createTestContext(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.RegisterWithGin()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyBytes []byte
	switch b := body.(type) {
	case nil:
	case string:
		bodyBytes = []byte(b)
	default:
		var err error
		if bodyBytes, err = json.Marshal(body); err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	c.Request = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

// authenticate stores claims the way the Authenticate middleware would.
func authenticate(c *gin.Context, claims *service.Claims) {
	middleware.SetClaims(c, claims)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
}

type errorBody struct {
	Error  string                  `json:"error"`
	Errors []validation.FieldError `json:"errors"`
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

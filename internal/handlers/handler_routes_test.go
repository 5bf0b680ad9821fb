package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ecocomercial/farmops_backend/internal/apperrors"
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	portssvc "github.com/ecocomercial/farmops_backend/internal/core/ports/services"
	"github.com/ecocomercial/farmops_backend/internal/dto"
	"github.com/ecocomercial/farmops_backend/internal/handlers"
	"github.com/ecocomercial/farmops_backend/internal/platform/config"
	"github.com/ecocomercial/farmops_backend/internal/utils"
)

// --- Mock UserSvcFacade ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) RegisterWorker(ctx context.Context, req dto.RegisterWorkerRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.EnrichedUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EnrichedUser), args.Error(1)
}
func (m *MockUserService) ListWorkers(ctx context.Context) ([]domain.EnrichedUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EnrichedUser), args.Error(1)
}
func (m *MockUserService) UpdateWorker(ctx context.Context, userID int64, req dto.UpdateWorkerRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}
func (m *MockUserService) DeleteWorker(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserService) IdentificationExists(ctx context.Context, identification string) (bool, error) {
	args := m.Called(ctx, identification)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserService) UpdateUsername(ctx context.Context, userID int64, username string) (bool, error) {
	args := m.Called(ctx, userID, username)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserService) UpdatePassword(ctx context.Context, userID int64, password string) (bool, error) {
	args := m.Called(ctx, userID, password)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock LocationSvcFacade ---
type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Location), args.Error(1)
}
func (m *MockLocationService) AddLocation(ctx context.Context, req dto.CreateLocationRequest) (*domain.Location, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}
func (m *MockLocationService) DeleteLocation(ctx context.Context, locationID int64) error {
	args := m.Called(ctx, locationID)
	return args.Error(0)
}
func (m *MockLocationService) ListMachines(ctx context.Context) ([]domain.Machine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Machine), args.Error(1)
}

var _ portssvc.LocationSvcFacade = (*MockLocationService)(nil)

// --- Mock ActivitySvcFacade ---
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) StartActivity(ctx context.Context, workerID int64, req dto.StartActivityRequest) (int64, error) {
	args := m.Called(ctx, workerID, req)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockActivityService) FinalizeActivity(ctx context.Context, recordID int64, req dto.FinalizeActivityRequest) error {
	args := m.Called(ctx, recordID, req)
	return args.Error(0)
}
func (m *MockActivityService) CancelActivity(ctx context.Context, recordID int64) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}
func (m *MockActivityService) ListActivities(ctx context.Context, workerID int64, role domain.Role, state domain.ActivityState) ([]domain.ActivityDetail, error) {
	args := m.Called(ctx, workerID, role, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityDetail), args.Error(1)
}
func (m *MockActivityService) ActivityHistory(ctx context.Context, workerID int64, role domain.Role) ([]domain.ActivityDetail, error) {
	args := m.Called(ctx, workerID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityDetail), args.Error(1)
}
func (m *MockActivityService) LastActivity(ctx context.Context, activityTypeID, workerID int64, state *domain.ActivityState) (*domain.ActivityDetail, error) {
	args := m.Called(ctx, activityTypeID, workerID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityDetail), args.Error(1)
}
func (m *MockActivityService) ActivityDetails(ctx context.Context, recordID int64) (*domain.ActivityDetail, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityDetail), args.Error(1)
}
func (m *MockActivityService) UserLocation(ctx context.Context, workerID int64) (*domain.Location, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

var _ portssvc.ActivitySvcFacade = (*MockActivityService)(nil)

// --- Mock HaySvcFacade ---
type MockHayService struct {
	mock.Mock
}

func (m *MockHayService) SaveHayRecord(ctx context.Context, workerID int64, req dto.CreateHayRecordRequest) error {
	args := m.Called(ctx, workerID, req)
	return args.Error(0)
}
func (m *MockHayService) HayRecords(ctx context.Context, workerID *int64) ([]domain.HayRecord, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HayRecord), args.Error(1)
}
func (m *MockHayService) WorkerHayRecords(ctx context.Context, workerID int64) ([]domain.HayRecord, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HayRecord), args.Error(1)
}

var _ portssvc.HaySvcFacade = (*MockHayService)(nil)

// --- Mock ReportingSvcFacade ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) DailyCombinedReport(ctx context.Context) ([]domain.CombinedDailyRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CombinedDailyRecord), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---
type RoutesTestSuite struct {
	suite.Suite
	router        *gin.Engine
	jwtSecret     string
	mockUser      *MockUserService
	mockLocation  *MockLocationService
	mockActivity  *MockActivityService
	mockHay       *MockHayService
	mockReporting *MockReportingService
}

func (suite *RoutesTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockUser = new(MockUserService)
	suite.mockLocation = new(MockLocationService)
	suite.mockActivity = new(MockActivityService)
	suite.mockHay = new(MockHayService)
	suite.mockReporting = new(MockReportingService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTIssuer:         "farmops-test",
		JWTExpiryDuration: time.Hour,
		IsProduction:      true, // keep swagger off the router
	}

	services := &portssvc.ServiceContainer{
		User:      suite.mockUser,
		Location:  suite.mockLocation,
		Activity:  suite.mockActivity,
		Hay:       suite.mockHay,
		Reporting: suite.mockReporting,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// generateTestToken creates a session JWT for testing.
func (suite *RoutesTestSuite) generateTestToken(userID int64, role domain.Role) string {
	token, err := utils.GenerateSessionJWT(
		strconv.FormatInt(userID, 10), "testuser", string(role),
		suite.jwtSecret, "farmops-test", time.Hour,
	)
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *RoutesTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *RoutesTestSuite) TestHealth() {
	w := suite.doJSON(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *RoutesTestSuite) TestLogin_Success() {
	user := &domain.User{UserID: 7, Username: "maria", Role: domain.RoleWorker}
	suite.mockUser.On("AuthenticateUser", mock.Anything, "maria", "secret123").Return(user, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "maria", Password: "secret123"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp.Token)
	suite.Equal(int64(7), resp.UserID)
	suite.Equal("worker", resp.Role)
	suite.mockUser.AssertExpectations(suite.T())
}

func (suite *RoutesTestSuite) TestLogin_BadCredentials() {
	suite.mockUser.On("AuthenticateUser", mock.Anything, "maria", "nope").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "maria", Password: "nope"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockUser.AssertExpectations(suite.T())
}

func (suite *RoutesTestSuite) TestProtectedRoute_MissingToken() {
	w := suite.doJSON(http.MethodGet, "/api/v1/locations", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *RoutesTestSuite) TestListUsers_WorkerForbidden() {
	token := suite.generateTestToken(7, domain.RoleWorker)

	w := suite.doJSON(http.MethodGet, "/api/v1/users", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	var resp handlers.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(apperrors.ErrForbidden.Error(), resp.Error)
	suite.mockUser.AssertNotCalled(suite.T(), "ListUsers", mock.Anything)
}

func (suite *RoutesTestSuite) TestListUsers_AdminAllowed() {
	token := suite.generateTestToken(1, domain.RoleAdministrator)
	suite.mockUser.On("ListUsers", mock.Anything).Return([]domain.EnrichedUser{}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/users", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockUser.AssertExpectations(suite.T())
}

func (suite *RoutesTestSuite) TestStartActivity_UsesSessionWorkerID() {
	token := suite.generateTestToken(7, domain.RoleWorker)
	req := dto.StartActivityRequest{
		ActivityTypeID: domain.ActivityTypeCutting,
		LocationID:     1,
		Date:           "2025-06-10",
		Time:           "08:15:00",
	}
	suite.mockActivity.On("StartActivity", mock.Anything, int64(7), req).Return(int64(11), nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/activities", token, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.StartActivityResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(11), resp.RecordID)
	suite.mockActivity.AssertExpectations(suite.T())
}

func (suite *RoutesTestSuite) TestStartActivity_AlreadyInProgress() {
	token := suite.generateTestToken(7, domain.RoleWorker)
	req := dto.StartActivityRequest{
		ActivityTypeID: domain.ActivityTypeBaling,
		LocationID:     1,
		Date:           "2025-06-10",
		Time:           "08:15:00",
	}
	suite.mockActivity.On("StartActivity", mock.Anything, int64(7), req).Return(int64(0), apperrors.ErrDuplicate).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/activities", token, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockActivity.AssertExpectations(suite.T())
}

func (suite *RoutesTestSuite) TestCancelActivity_NotInProgress() {
	token := suite.generateTestToken(7, domain.RoleWorker)
	suite.mockActivity.On("CancelActivity", mock.Anything, int64(14)).Return(apperrors.ErrInvalidState).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/activities/14/cancel", token, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockActivity.AssertExpectations(suite.T())
}

func (suite *RoutesTestSuite) TestDeleteLocation_InUse() {
	token := suite.generateTestToken(1, domain.RoleAdministrator)
	suite.mockLocation.On("DeleteLocation", mock.Anything, int64(4)).Return(apperrors.ErrConflict).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/locations/4", token, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLocation.AssertExpectations(suite.T())
}

func (suite *RoutesTestSuite) TestSaveHayRecord_Created() {
	token := suite.generateTestToken(7, domain.RoleWorker)
	req := dto.CreateHayRecordRequest{QuantityKg: "15.5"}
	suite.mockHay.On("SaveHayRecord", mock.Anything, int64(7), req).Return(nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/hay", token, req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockHay.AssertExpectations(suite.T())
}

func (suite *RoutesTestSuite) TestDailyCombinedReport_WorkerForbidden() {
	token := suite.generateTestToken(7, domain.RoleWorker)

	w := suite.doJSON(http.MethodGet, "/api/v1/reports/daily-combined", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockReporting.AssertNotCalled(suite.T(), "DailyCombinedReport", mock.Anything)
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}

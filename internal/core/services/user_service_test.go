package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ecocomercial/farmops_backend/internal/apperrors"
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	portssvc "github.com/ecocomercial/farmops_backend/internal/core/ports/services"
	"github.com/ecocomercial/farmops_backend/internal/core/services"
	"github.com/ecocomercial/farmops_backend/internal/dto"
	"github.com/ecocomercial/farmops_backend/internal/utils"
	"github.com/ecocomercial/farmops_backend/pkg/retry"
)

// fastRetryPolicy keeps the retry semantics but collapses the waits so the
// suite stays quick.
func fastRetryPolicy() retry.Policy {
	return retry.Policy{
		Attempts: 3,
		Backoff:  time.Millisecond,
		Retryable: func(err error) bool {
			return errors.Is(err, apperrors.ErrTimeout) || errors.Is(err, apperrors.ErrConnection)
		},
	}
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindEnrichedUsers(ctx context.Context) ([]domain.EnrichedUser, error) {
	args := m.Called(ctx)
	var users []domain.EnrichedUser
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.EnrichedUser)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) FindEnrichedWorkers(ctx context.Context) ([]domain.EnrichedUser, error) {
	args := m.Called(ctx)
	var users []domain.EnrichedUser
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.EnrichedUser)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) UpdateWorker(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteWorkerCascade(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountByIdentification(ctx context.Context, identification string) (int64, error) {
	args := m.Called(ctx, identification)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateUsername(ctx context.Context, userID int64, username string) (bool, error) {
	args := m.Called(ctx, userID, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) (bool, error) {
	args := m.Called(ctx, userID, passwordHash)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, fastRetryPolicy())
}

// --- AuthenticateUser Tests ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "correct-horse"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	stored := &domain.User{UserID: 7, Username: "maria", PasswordHash: hash, Role: domain.RoleWorker}
	suite.mockUserRepo.On("FindUserByUsername", ctx, "maria").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "maria", password)

	suite.Require().NoError(err)
	suite.Equal(int64(7), user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("right-password")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: 7, Username: "maria", PasswordHash: hash}
	suite.mockUserRepo.On("FindUserByUsername", ctx, "maria").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "maria", "wrong-password")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUsername() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateUser(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- RegisterWorker Tests ---

func (suite *UserServiceTestSuite) TestRegisterWorker_Success() {
	ctx := context.Background()
	req := dto.RegisterWorkerRequest{
		FirstName:      "Juan",
		LastName:       "Perez",
		BirthDate:      "1990-04-12",
		Identification: "12345678",
		Username:       "jperez",
		Password:       "secret123",
	}

	suite.mockUserRepo.On("CountByUsername", ctx, "jperez").Return(int64(0), nil).Once()
	suite.mockUserRepo.On("CountByIdentification", ctx, "12345678").Return(int64(0), nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "jperez" &&
			user.Role == domain.RoleWorker &&
			user.PasswordHash != "" &&
			user.PasswordHash != "secret123"
	})).Return(int64(42), nil).Once()

	user, err := suite.service.RegisterWorker(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(42), user.UserID)
	suite.Equal(domain.RoleWorker, user.Role)
	suite.True(utils.CheckPasswordHash("secret123", user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterWorker_DuplicateUsername() {
	ctx := context.Background()
	req := dto.RegisterWorkerRequest{
		FirstName:      "Juan",
		LastName:       "Perez",
		BirthDate:      "1990-04-12",
		Identification: "12345678",
		Username:       "jperez",
		Password:       "secret123",
	}

	suite.mockUserRepo.On("CountByUsername", ctx, "jperez").Return(int64(1), nil).Once()

	user, err := suite.service.RegisterWorker(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterWorker_InvalidRole() {
	ctx := context.Background()
	req := dto.RegisterWorkerRequest{
		FirstName:      "Juan",
		LastName:       "Perez",
		BirthDate:      "1990-04-12",
		Identification: "12345678",
		Username:       "jperez",
		Password:       "secret123",
		Role:           "supervisor",
	}

	user, err := suite.service.RegisterWorker(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Retry behavior ---

func (suite *UserServiceTestSuite) TestUsernameExists_RetriesTransientFailure() {
	ctx := context.Background()

	suite.mockUserRepo.On("CountByUsername", ctx, "flaky").Return(int64(0), apperrors.ErrTimeout).Twice()
	suite.mockUserRepo.On("CountByUsername", ctx, "flaky").Return(int64(1), nil).Once()

	exists, err := suite.service.UsernameExists(ctx, "flaky")

	suite.Require().NoError(err)
	suite.True(exists)
	suite.mockUserRepo.AssertNumberOfCalls(suite.T(), "CountByUsername", 3)
}

func (suite *UserServiceTestSuite) TestUsernameExists_ExhaustsRetries() {
	ctx := context.Background()

	suite.mockUserRepo.On("CountByUsername", ctx, "down").Return(int64(0), apperrors.ErrTimeout).Times(3)

	exists, err := suite.service.UsernameExists(ctx, "down")

	suite.Require().Error(err)
	suite.False(exists)
	suite.ErrorIs(err, apperrors.ErrTimeout)
	suite.mockUserRepo.AssertNumberOfCalls(suite.T(), "CountByUsername", 3)
}

// --- UpdateWorker Tests ---

func (suite *UserServiceTestSuite) TestUpdateWorker_PartialEdit() {
	ctx := context.Background()
	stored := &domain.User{
		UserID:         9,
		Username:       "jperez",
		FirstName:      "Juan",
		LastName:       "Perez",
		BirthDate:      "1990-04-12",
		Identification: "12345678",
		Role:           domain.RoleWorker,
	}
	newName := "Juan Carlos"

	suite.mockUserRepo.On("FindUserByID", ctx, int64(9)).Return(stored, nil).Once()
	suite.mockUserRepo.On("UpdateWorker", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.FirstName == newName && user.LastName == "Perez"
	})).Return(nil).Once()

	err := suite.service.UpdateWorker(ctx, 9, dto.UpdateWorkerRequest{FirstName: &newName})

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- DeleteWorker Tests ---

func (suite *UserServiceTestSuite) TestDeleteWorker_NotFound() {
	ctx := context.Background()
	suite.mockUserRepo.On("DeleteWorkerCascade", ctx, int64(99)).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteWorker(ctx, 99)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdatePassword Tests ---

func (suite *UserServiceTestSuite) TestUpdatePassword_HashesBeforeStoring() {
	ctx := context.Background()

	suite.mockUserRepo.On("UpdatePassword", ctx, int64(5), mock.MatchedBy(func(hash string) bool {
		return hash != "new-secret" && utils.CheckPasswordHash("new-secret", hash)
	})).Return(true, nil).Once()

	changed, err := suite.service.UpdatePassword(ctx, 5, "new-secret")

	suite.Require().NoError(err)
	suite.True(changed)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

package services_test

import (
	"testing"
	"time"

	"microcourses/config"
	"microcourses/models"
	"microcourses/repositories"
	"microcourses/services"
	"microcourses/testutil"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db     *gorm.DB
	tokens *services.TokenManager
	svc    services.AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = testutil.PrepareDB(s.T())
	s.tokens = services.NewTokenManager(testutil.Config().JWT)
	s.svc = services.NewAuthService(repositories.NewUserRepository(s.db), s.tokens, services.AuthOptions{
		BcryptCost: bcrypt.MinCost,
	})
}

func (s *AuthServiceTestSuite) register(name, email string, role models.UserRole) *models.AuthResponse {
	resp, err := s.svc.Register(models.RegisterRequest{Name: name, Email: email, Password: "secret1", Role: role})
	s.Require().NoError(err)
	return resp
}

func (s *AuthServiceTestSuite) TestRegisterDefaultsToLearner() {
	resp := s.register("Alice", "a@x.com", "")

	s.NotEmpty(resp.Token)
	s.Equal(models.RoleLearner, resp.User.Role)
	s.Equal(models.ApplicationNone, resp.User.CreatorApplicationStatus)

	claims, err := s.tokens.Parse(resp.Token)
	s.Require().NoError(err)
	s.Equal(resp.User.ID, claims.UserID)
	s.Equal(models.RoleLearner, claims.Role)
}

func (s *AuthServiceTestSuite) TestRegisterStoresHashedPassword() {
	resp := s.register("Alice", "a@x.com", "")

	var stored models.User
	s.Require().NoError(s.db.First(&stored, resp.User.ID).Error)
	s.NotEqual("secret1", stored.Password)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	s.register("Alice", "a@x.com", "")

	_, err := s.svc.Register(models.RegisterRequest{Name: "Other", Email: "A@X.com", Password: "secret2"})
	s.IsType(models.ErrorConflict{}, err)
	s.Equal("User already exists", err.Error())
}

func (s *AuthServiceTestSuite) TestRegisterAdminRefused() {
	_, err := s.svc.Register(models.RegisterRequest{Name: "Root", Email: "root@x.com", Password: "secret1", Role: models.RoleAdmin})
	s.IsType(models.ErrorBadRequest{}, err)

	allowing := services.NewAuthService(repositories.NewUserRepository(s.db), s.tokens, services.AuthOptions{
		BcryptCost:       bcrypt.MinCost,
		AllowAdminSignup: true,
	})
	resp, err := allowing.Register(models.RegisterRequest{Name: "Root", Email: "root@x.com", Password: "secret1", Role: models.RoleAdmin})
	s.Require().NoError(err)
	s.Equal(models.RoleAdmin, resp.User.Role)
}

func (s *AuthServiceTestSuite) TestRegisterInvalidRole() {
	_, err := s.svc.Register(models.RegisterRequest{Name: "Bob", Email: "b@x.com", Password: "secret1", Role: "Owner"})
	s.IsType(models.ErrorBadRequest{}, err)
}

func (s *AuthServiceTestSuite) TestRegisterMissingFields() {
	_, err := s.svc.Register(models.RegisterRequest{Name: "  ", Email: "b@x.com", Password: "secret1"})
	s.IsType(models.ErrorBadRequest{}, err)
}

func (s *AuthServiceTestSuite) TestLoginReturnsSameUser() {
	registered := s.register("Alice", "a@x.com", models.RoleCreator)

	resp, err := s.svc.Login(models.LoginRequest{Email: "a@x.com", Password: "secret1"})
	s.Require().NoError(err)
	s.Equal(registered.User.ID, resp.User.ID)

	claims, err := s.tokens.Parse(resp.Token)
	s.Require().NoError(err)
	s.Equal(registered.User.ID, claims.UserID)
	s.Equal(models.RoleCreator, claims.Role)
}

func (s *AuthServiceTestSuite) TestLoginInvalidCredentials() {
	s.register("Alice", "a@x.com", "")

	_, err := s.svc.Login(models.LoginRequest{Email: "a@x.com", Password: "wrong"})
	s.IsType(models.ErrorUnauthorized{}, err)

	_, err = s.svc.Login(models.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
	s.IsType(models.ErrorUnauthorized{}, err)
}

func (s *AuthServiceTestSuite) TestGetUserByID() {
	registered := s.register("Alice", "a@x.com", "")

	user, err := s.svc.GetUserByID(registered.User.ID)
	s.Require().NoError(err)
	s.Equal("a@x.com", user.Email)

	_, err = s.svc.GetUserByID(9999)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *AuthServiceTestSuite) TestTokenRejections() {
	resp := s.register("Alice", "a@x.com", "")

	expired := services.NewTokenManager(config.JWTConfig{Secret: []byte("test-secret"), Expiration: -time.Minute})
	old, err := expired.Generate(&resp.User)
	s.Require().NoError(err)
	_, err = s.tokens.Parse(old)
	s.Error(err)

	foreign := services.NewTokenManager(config.JWTConfig{Secret: []byte("other-secret"), Expiration: time.Hour})
	forged, err := foreign.Generate(&resp.User)
	s.Require().NoError(err)
	_, err = s.tokens.Parse(forged)
	s.Error(err)

	_, err = s.tokens.Parse("not-a-token")
	s.Error(err)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

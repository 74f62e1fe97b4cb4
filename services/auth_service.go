package services

import (
	"strings"

	"microcourses/models"
	"microcourses/repositories"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(id uint) (*models.User, error)
}

type AuthOptions struct {
	BcryptCost       int
	AllowAdminSignup bool
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   *TokenManager
	opts     AuthOptions
}

func NewAuthService(userRepo repositories.UserRepository, tokens *TokenManager, opts AuthOptions) AuthService {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &authService{userRepo: userRepo, tokens: tokens, opts: opts}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if name == "" || email == "" || req.Password == "" {
		return nil, models.BadRequest("Please enter all fields")
	}

	role := req.Role
	if role == "" {
		role = models.RoleLearner
	}
	if !role.Valid() {
		return nil, models.BadRequest("Invalid role")
	}
	if role == models.RoleAdmin && !s.opts.AllowAdminSignup {
		return nil, models.BadRequest("Admin accounts cannot be self-registered")
	}

	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, models.Conflict("User already exists")
	}
	if !repositories.IsNotFound(err) {
		return nil, errors.Wrap(err, "looking up email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.opts.BcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "hashing password")
	}

	user := &models.User{
		Name:                     name,
		Email:                    email,
		Password:                 string(hashed),
		Role:                     role,
		CreatorApplicationStatus: models.ApplicationNone,
	}
	if err := s.userRepo.Create(user); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, models.Conflict("User already exists")
		}
		return nil, errors.Wrap(err, "creating user")
	}

	return s.respond(user)
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(req.Email))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.Unauthorized("invalid credentials")
		}
		return nil, errors.Wrap(err, "looking up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.Unauthorized("invalid credentials")
	}

	return s.respond(user)
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NotFound("User not found")
		}
		return nil, errors.Wrap(err, "loading user")
	}
	return user, nil
}

func (s *authService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}

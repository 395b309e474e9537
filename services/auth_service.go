package services

import (
	"crypto/subtle"

	"swiftaid/config"
	"swiftaid/models"
	"swiftaid/utils"

	"github.com/sirupsen/logrus"
)

const (
	adminDisplayName = "Admin User"
	adminRole        = "Administrator"
)

// AuthService checks the single configured admin credential and issues
// session tokens.
type AuthService struct {
	username        string
	passwordHash    string
	jwtService      *utils.JWTService
	passwordService *utils.PasswordService
	validator       *utils.ValidationService
}

// NewAuthService hashes the configured password unless a bcrypt hash is
// configured.
func NewAuthService(cfg *config.Config, jwtService *utils.JWTService) (*AuthService, error) {
	passwordService := utils.NewPasswordService()

	hash := cfg.AdminPasswordHash
	if hash == "" {
		var err error
		hash, err = passwordService.HashPassword(cfg.AdminPassword)
		if err != nil {
			return nil, err
		}
	}

	return &AuthService{
		username:        cfg.AdminUsername,
		passwordHash:    hash,
		jwtService:      jwtService,
		passwordService: passwordService,
		validator:       utils.NewValidationService(),
	}, nil
}

func (as *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if err := as.validator.Validate(req); err != nil {
		return nil, utils.NewInvalidCredentialsError()
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(as.username)) == 1
	passwordOK := as.passwordService.CheckPassword(as.passwordHash, req.Password)
	if !usernameOK || !passwordOK {
		logrus.WithField("username", req.Username).Warn("Failed admin login")
		return nil, utils.NewInvalidCredentialsError()
	}

	token, err := as.jwtService.GenerateToken(req.Username)
	if err != nil {
		return nil, utils.NewInternalError("Failed to generate token", err)
	}

	return &models.LoginResponse{
		Success: true,
		Token:   token,
		User: models.AdminProfile{
			Username: req.Username,
			Name:     adminDisplayName,
			Role:     adminRole,
		},
	}, nil
}

// Authenticate returns the admin username carried by a valid token.
func (as *AuthService) Authenticate(token string) (string, error) {
	claims, err := as.jwtService.ValidateToken(token)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

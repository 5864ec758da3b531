package service

import (
	"context"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"ai-schemadesign-be/internal/constant"
	"ai-schemadesign-be/internal/dto"
)

const accessTokenExpiry = 7 * 24 * time.Hour

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// authService guards the single-operator deployment. There is no user table,
// just one bcrypt hash configured through the environment.
type authService struct {
	passwordHash string
}

func NewAuthService(passwordHash string) IAuthService {
	return &authService{
		passwordHash: passwordHash,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.passwordHash == "" {
		return nil, constant.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return nil, constant.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id": "operator",
		"exp":     time.Now().Add(accessTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{Token: signedToken}, nil
}

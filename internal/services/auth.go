package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sanjay-M1512/RAG-ADMIN/internal/domain"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/platform/logger"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/repos"
)

// AuthService manages admin accounts and issues the HS256 access tokens the
// profile endpoints require. Tokens carry the admin object id as subject.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, adminID primitive.ObjectID) (*domain.Admin, error)
	UpdateProfile(ctx context.Context, adminID primitive.ObjectID, fields map[string]any) error
	ParseToken(tokenString string) (primitive.ObjectID, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log          *logger.Logger
	admins       repos.AdminRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(log *logger.Logger, admins repos.AdminRepo, jwtSecretKey string, accessTTL time.Duration) (AuthService, error) {
	if log == nil || admins == nil {
		return nil, fmt.Errorf("auth service: missing deps")
	}
	if strings.TrimSpace(jwtSecretKey) == "" {
		return nil, fmt.Errorf("auth service: missing JWT secret key")
	}
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	return &authService{
		log:          log.With("service", "AuthService"),
		admins:       admins,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}, nil
}

func (s *authService) Register(ctx context.Context, username, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("username, email and password are required")
	}

	existing, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("admin already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.admins.Create(ctx, &domain.Admin{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		Role:      "admin",
		Status:    "active",
		CreatedAt: time.Now().UTC(),
	})
	return err
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", fmt.Errorf("invalid admin credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid admin credentials")
	}

	claims := jwt.RegisteredClaims{
		Subject:   admin.ID.Hex(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) Profile(ctx context.Context, adminID primitive.ObjectID) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, fmt.Errorf("admin not found")
	}
	return admin, nil
}

func (s *authService) UpdateProfile(ctx context.Context, adminID primitive.ObjectID, fields map[string]any) error {
	// Never let a profile update rewrite identity or stored credentials
	// through the raw field map.
	delete(fields, "_id")
	delete(fields, "password")
	return s.admins.UpdateByID(ctx, adminID, fields)
}

func (s *authService) ParseToken(tokenString string) (primitive.ObjectID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return primitive.NilObjectID, fmt.Errorf("invalid or expired token")
	}
	adminID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid admin id in token: %w", err)
	}
	return adminID, nil
}

func (s *authService) GetAccessTTL() time.Duration {
	return s.accessTTL
}

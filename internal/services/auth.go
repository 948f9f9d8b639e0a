package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/okulpusula/pusula-backend/internal/data/repos"
	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/dbctx"
	"github.com/okulpusula/pusula-backend/internal/pkg/envutil"
	pkgerr "github.com/okulpusula/pusula-backend/internal/pkg/errors"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
	"github.com/okulpusula/pusula-backend/internal/requestdata"
)

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.Counselor, error)
	Login(ctx context.Context, email, password string) (string, *types.Counselor, error)
	ParseToken(tokenString string) (*requestdata.RequestData, error)
}

type authService struct {
	log        *logger.Logger
	counselors repos.CounselorRepo
	secret     []byte
	tokenTTL   time.Duration
}

func NewAuthService(log *logger.Logger, counselors repos.CounselorRepo) (AuthService, error) {
	secret := strings.TrimSpace(envutil.String("JWT_SECRET", ""))
	if secret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET")
	}
	ttl := time.Duration(envutil.Int("JWT_TTL_HOURS", 24)) * time.Hour
	return &authService{
		log:        log.With("service", "AuthService"),
		counselors: counselors,
		secret:     []byte(secret),
		tokenTTL:   ttl,
	}, nil
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*types.Counselor, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return nil, fmt.Errorf("email, password and name required: %w", pkgerr.ErrInvalidArgument)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", pkgerr.ErrInvalidArgument)
	}

	dbc := dbctx.Context{Ctx: ctx}
	existing, err := s.counselors.GetByEmail(dbc, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", pkgerr.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	row := &types.Counselor{
		Email:     in.Email,
		Password:  string(hash),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Role:      "counselor",
	}
	if err := s.counselors.Create(dbc, row); err != nil {
		return nil, err
	}

	s.log.Info("Counselor registered", "counselor_id", row.ID.String())
	return row, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *types.Counselor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("email and password required: %w", pkgerr.ErrInvalidArgument)
	}

	row, err := s.counselors.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return "", nil, err
	}
	if row == nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", pkgerr.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(row.Password), []byte(password)) != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", pkgerr.ErrUnauthorized)
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  row.ID.String(),
		"name": row.FirstName + " " + row.LastName,
		"role": row.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, row, nil
}

func (s *authService) ParseToken(tokenString string) (*requestdata.RequestData, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid token: %w", pkgerr.ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims: %w", pkgerr.ErrUnauthorized)
	}

	sub, _ := claims["sub"].(string)
	counselorID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("token missing subject: %w", pkgerr.ErrUnauthorized)
	}

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		CounselorID: counselorID,
	}
	rd.CounselorName, _ = claims["name"].(string)
	rd.Role, _ = claims["role"].(string)
	return rd, nil
}

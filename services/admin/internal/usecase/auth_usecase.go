package usecase

import (
	"context"
	"fmt"
	"time"

	"farmlot/pkg/jwt"
	"farmlot/pkg/logger"
	"farmlot/pkg/middleware"
	"farmlot/services/admin/internal/entity"
	"farmlot/services/admin/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Login(email, password string) (*entity.User, string, error)
	// Logout revokes the token for the remainder of its lifetime.
	Logout(ctx context.Context, token string) error
	GetUser(userID string) (*entity.User, error)
}

type authUseCase struct {
	userRepo    persistent.UserRepository
	jwtService  *jwt.Service
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	redisClient *redis.Client,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:    userRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if !user.IsActive {
		return nil, "", fmt.Errorf("account is deactivated")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Logout(ctx context.Context, token string) error {
	claims, err := uc.jwtService.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("invalid token")
	}

	// Park the token in the denylist only until it would expire anyway.
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := uc.redisClient.Set(ctx, middleware.RevokedTokenKey(token), "1", ttl).Err(); err != nil {
		uc.logger.Error("Failed to revoke token: %v", err)
		return fmt.Errorf("failed to sign out")
	}
	return nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

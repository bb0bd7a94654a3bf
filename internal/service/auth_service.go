package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, *token.Payload, *model.User, error)
	VerifyToken(accessToken string) (*token.Payload, error)
}

type AuthService struct {
	userRepo      db.IUserRepository
	tokenMaker    token.Maker
	tokenDuration time.Duration
}

func NewAuthService(userRepo db.IUserRepository, tokenMaker token.Maker, tokenDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		tokenMaker:    tokenMaker,
		tokenDuration: tokenDuration,
	}
}

// Register 註冊新用戶
// username 或 email 任一已存在即拒絕
// 錯誤:
//   - db.ErrDuplicateUser: username 或 email 已被使用
func (a *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	exists, err := a.userRepo.UserExists(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, db.ErrDuplicateUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserName:       username,
		Email:          email,
		HashedPassword: string(hashed),
		Role:           model.RoleUser,
	}
	return a.userRepo.CreateUser(ctx, user)
}

// Login 驗證密碼並發行 access token
// 帳號不存在與密碼錯誤回傳同一個錯誤，避免洩漏帳號是否存在
func (a *AuthService) Login(ctx context.Context, email, password string) (string, *token.Payload, *model.User, error) {
	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return "", nil, nil, ErrInvalidCredentials
		}
		return "", nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", nil, nil, ErrInvalidCredentials
	}

	accessToken, payload, err := a.tokenMaker.CreateToken(user.UserID, user.Role, a.tokenDuration)
	if err != nil {
		return "", nil, nil, err
	}
	return accessToken, payload, user, nil
}

func (a *AuthService) VerifyToken(accessToken string) (*token.Payload, error) {
	return a.tokenMaker.VerifyToken(accessToken)
}

var _ IAuthService = (*AuthService)(nil)

package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quillnotes/quill-notes-service/internal/domain"
	"github.com/quillnotes/quill-notes-service/internal/dto"
	"github.com/quillnotes/quill-notes-service/pkg/app"
	"github.com/quillnotes/quill-notes-service/pkg/code"
	"github.com/quillnotes/quill-notes-service/pkg/convert"
	"github.com/quillnotes/quill-notes-service/pkg/logger"
	"github.com/quillnotes/quill-notes-service/pkg/timex"
	"github.com/quillnotes/quill-notes-service/pkg/util"
)

// UserService 用户服务接口
type UserService interface {
	// Register 注册新用户并签发令牌
	Register(ctx context.Context, params *dto.UserRegisterRequest) (*dto.User, error)
	// Login 校验邮箱密码并签发令牌
	Login(ctx context.Context, params *dto.UserLoginRequest) (*dto.User, error)
	// Info 获取用户信息
	Info(ctx context.Context, uid int64) (*dto.User, error)
}

type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
}

var _ UserService = (*userService)(nil)

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tm app.TokenManager, lg *zap.Logger, cfg *ServiceConfig) UserService {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	return &userService{
		userRepo:     userRepo,
		tokenManager: tm,
		logger:       lg,
		config:       cfg,
	}
}

func (s *userService) domainToDTO(u *domain.User, token string) *dto.User {
	user := &dto.User{}
	convert.StructAssign(u, user)
	user.Token = token
	user.CreatedAt = timex.Time(u.CreatedAt)
	return user
}

// Register 注册新用户
func (s *userService) Register(ctx context.Context, params *dto.UserRegisterRequest) (*dto.User, error) {
	if !s.config.RegisterEnabled {
		return nil, code.ErrorUserRegisterDisabled
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if existing != nil {
		return nil, code.ErrorUserEmailExists
	}

	hash, err := util.EncodePassword(params.Password)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	nickname := params.Nickname
	if nickname == "" {
		nickname = strings.SplitN(email, "@", 2)[0]
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:    email,
		Nickname: nickname,
		Password: hash,
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	token, err := s.tokenManager.Generate(user.UID, user.Email)
	if err != nil {
		return nil, code.ErrorUserTokenGenerate.WithDetails(err.Error())
	}

	s.logger.Info("user registered", zap.Int64(logger.FieldUID, user.UID))
	return s.domainToDTO(user, token), nil
}

// Login 登录
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest) (*dto.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	// 用户不存在与密码错误返回同一错误，避免探测已注册邮箱
	if user == nil || !util.VerifyPassword(params.Password, user.Password) {
		return nil, code.ErrorUserLoginFailed
	}

	token, err := s.tokenManager.Generate(user.UID, user.Email)
	if err != nil {
		return nil, code.ErrorUserTokenGenerate.WithDetails(err.Error())
	}

	return s.domainToDTO(user, token), nil
}

// Info 获取用户信息
func (s *userService) Info(ctx context.Context, uid int64) (*dto.User, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(user, ""), nil
}

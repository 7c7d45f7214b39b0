// Package user 实现用户业务逻辑
// 注册、双通道登录（密码/短信）、令牌刷新、资料维护
package user

import (
	"context"
	"encoding/json"
	"time"
	"unicode"

	"go.uber.org/zap"

	"travel_together_server/internal/dao/mysql/repository"
	myredis "travel_together_server/internal/dao/redis"
	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/dto/respond"
	"travel_together_server/internal/infrastructure/sms"
	"travel_together_server/internal/model"
	"travel_together_server/pkg/constants"
	"travel_together_server/pkg/enum/group/group_status_enum"
	"travel_together_server/pkg/enum/user/user_status_enum"
	"travel_together_server/pkg/errorx"
	"travel_together_server/pkg/util/jwt"
	"travel_together_server/pkg/util/random"
)

// userService 用户业务逻辑实现
type userService struct {
	repos      *repository.Repositories
	cache      myredis.AsyncCacheService
	smsService sms.SmsService
}

// NewUserService 构造函数，注入所有依赖
func NewUserService(repos *repository.Repositories, cacheService myredis.AsyncCacheService, smsService sms.SmsService) *userService {
	return &userService{
		repos:      repos,
		cache:      cacheService,
		smsService: smsService,
	}
}

// checkPasswordStrength 密码强度校验
// 至少 6 位，必须同时包含字母、数字和特殊字符
func checkPasswordStrength(password string) bool {
	if len(password) < 6 {
		return false
	}
	var hasLetter, hasDigit, hasSpecial bool
	for _, ch := range password {
		switch {
		case unicode.IsLetter(ch):
			hasLetter = true
		case unicode.IsDigit(ch):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

// Register 用户注册
// 密码明文放入 RawPassword，由模型 BeforeSave 钩子统一 bcrypt 加密落库
func (u *userService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	if !checkPasswordStrength(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidParam, "密码至少6位，且需同时包含字母、数字和特殊字符")
	}

	_, err := u.repos.User.FindByUsername(req.Username)
	if err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "该用户名已被注册")
	}
	if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	if req.Telephone != "" {
		_, err := u.repos.User.FindByTelephone(req.Telephone)
		if err == nil {
			return nil, errorx.New(errorx.CodeUserExist, "该手机号已被注册")
		}
		if errorx.GetCode(err) != errorx.CodeNotFound {
			zap.L().Error(err.Error())
			return nil, errorx.ErrServerBusy
		}
	}

	newUser := model.User{
		Uuid:        "U" + random.GetNowAndLenRandomString(11),
		Username:    req.Username,
		Email:       req.Email,
		Telephone:   req.Telephone,
		RawPassword: req.Password,
		Gender:      req.Gender,
		Bio:         req.Bio,
	}
	if err := u.repos.User.CreateUser(&newUser); err != nil {
		zap.L().Error(err.Error())
		// 邮箱唯一索引冲突也会走到这里
		return nil, errorx.New(errorx.CodeUserExist, "注册失败，用户名或邮箱已被占用")
	}

	zap.L().Info("用户注册成功", zap.String("uuid", newUser.Uuid), zap.String("username", newUser.Username))
	return &respond.RegisterRespond{
		Uuid:      newUser.Uuid,
		Username:  newUser.Username,
		Email:     newUser.Email,
		Telephone: newUser.Telephone,
		Gender:    newUser.Gender,
		Bio:       newUser.Bio,
		Avatar:    newUser.Avatar,
		CreatedAt: newUser.CreatedAt.Format("2006-01-02 15:04:05"),
		Status:    newUser.Status,
	}, nil
}

// issueTokens 签发令牌对并在 Redis 记录 tokenID，实现单点互踢
func (u *userService) issueTokens(userUuid string) (accessToken, refreshToken string, err error) {
	accessToken, err = jwt.GenerateAccessToken(userUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return "", "", errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(userUuid)
	if err != nil {
		zap.L().Error(err.Error())
		return "", "", errorx.ErrServerBusy
	}
	// 新登录覆盖旧 tokenID，旧设备的 Refresh Token 随即失效
	if err := u.cache.Set(context.Background(), "user_token_"+userUuid, tokenID,
		time.Hour*constants.REFRESH_TOKEN_EXPIRY_HOURS); err != nil {
		zap.L().Error(err.Error())
		return "", "", errorx.ErrServerBusy
	}
	return accessToken, refreshToken, nil
}

// buildLoginRespond 组装登录响应
func buildLoginRespond(user *model.User, accessToken, refreshToken string) *respond.LoginRespond {
	currentGroupId := ""
	if user.CurrentGroupId.Valid {
		currentGroupId = user.CurrentGroupId.String
	}
	return &respond.LoginRespond{
		Uuid:           user.Uuid,
		Username:       user.Username,
		Email:          user.Email,
		Telephone:      user.Telephone,
		Gender:         user.Gender,
		Bio:            user.Bio,
		Avatar:         user.Avatar,
		CurrentGroupId: currentGroupId,
		IsGroupOwner:   user.IsGroupOwner,
		CreatedAt:      user.CreatedAt.Format("2006-01-02 15:04:05"),
		Status:         user.Status,
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
	}
}

// Login 密码登录
func (u *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := u.repos.User.FindByUsername(req.Username)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if user.Status != user_status_enum.NORMAL {
		return nil, errorx.New(errorx.CodeForbidden, "账号已被禁用")
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码错误")
	}

	accessToken, refreshToken, err := u.issueTokens(user.Uuid)
	if err != nil {
		return nil, err
	}
	zap.L().Info("用户登录成功", zap.String("uuid", user.Uuid))
	return buildLoginRespond(user, accessToken, refreshToken), nil
}

// SmsLogin 短信验证码登录
// 验证码比对通过后即销毁，防止重放
func (u *userService) SmsLogin(req request.SmsLoginRequest) (*respond.LoginRespond, error) {
	key := "auth_code_" + req.Telephone
	storedCode, err := u.cache.GetOrError(context.Background(), key)
	if err != nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "验证码已过期，请重新获取")
	}
	if storedCode != req.SmsCode {
		return nil, errorx.New(errorx.CodeInvalidParam, "验证码错误")
	}

	user, err := u.repos.User.FindByTelephone(req.Telephone)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "该手机号未注册")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if user.Status != user_status_enum.NORMAL {
		return nil, errorx.New(errorx.CodeForbidden, "账号已被禁用")
	}

	if err := u.cache.Delete(context.Background(), key); err != nil {
		zap.L().Error(err.Error())
	}

	accessToken, refreshToken, err := u.issueTokens(user.Uuid)
	if err != nil {
		return nil, err
	}
	zap.L().Info("用户短信登录成功", zap.String("uuid", user.Uuid))
	return buildLoginRespond(user, accessToken, refreshToken), nil
}

// SendSmsCode 发送短信验证码
func (u *userService) SendSmsCode(telephone string) error {
	if len(telephone) != 11 {
		return errorx.New(errorx.CodeInvalidParam, "手机号格式不正确")
	}
	return u.smsService.SendVerificationCode(telephone)
}

// RefreshToken 用 Refresh Token 换取新的令牌对
// 校验 Subject 和 Redis 中的 tokenID，旧令牌对随之作废
func (u *userService) RefreshToken(refreshToken string) (*respond.RefreshTokenRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "无效的刷新令牌")
	}
	if claims.Subject != "refresh_token" {
		return nil, errorx.New(errorx.CodeUnauthorized, "令牌类型错误")
	}

	storedTokenID, err := u.cache.GetOrError(context.Background(), "user_token_"+claims.UserID)
	if err != nil || storedTokenID != claims.TokenID {
		return nil, errorx.New(errorx.CodeUnauthorized, "刷新令牌已失效，请重新登录")
	}

	accessToken, newRefreshToken, err := u.issueTokens(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &respond.RefreshTokenRespond{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// UpdateUserInfo 更新用户信息
// 只接受白名单内的字段，用户名、密码、当前群指针等不在此接口修改
func (u *userService) UpdateUserInfo(req request.UpdateUserInfoRequest) error {
	_, err := u.repos.User.FindByUuid(req.Uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	fields := make(map[string]interface{})
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Gender != "" {
		fields["gender"] = req.Gender
	}
	if req.Bio != "" {
		fields["bio"] = req.Bio
	}
	if req.Avatar != "" {
		fields["avatar"] = req.Avatar
	}
	if len(fields) == 0 {
		return errorx.New(errorx.CodeInvalidParam, "没有需要更新的字段")
	}

	if err := u.repos.User.UpdateFields(req.Uuid, fields); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	u.cache.SubmitTask(func() {
		if err := u.cache.Delete(context.Background(), "user_info_"+req.Uuid); err != nil {
			zap.L().Error(err.Error())
		}
	})
	return nil
}

// GetUserInfo 获取用户信息（缓存 24 小时，更新时失效）
func (u *userService) GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error) {
	cacheKey := "user_info_" + uuid

	rspString, err := u.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var rsp respond.GetUserInfoRespond
		if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
			return &rsp, nil
		}
		zap.L().Warn("Unmarshal user info cache failed", zap.String("uuid", uuid), zap.Error(err))
	} else if err != nil {
		zap.L().Error("Get user info cache error", zap.String("uuid", uuid), zap.Error(err))
	}

	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	currentGroupId := ""
	if user.CurrentGroupId.Valid {
		currentGroupId = user.CurrentGroupId.String
	}
	rsp := &respond.GetUserInfoRespond{
		Uuid:           user.Uuid,
		Username:       user.Username,
		Email:          user.Email,
		Telephone:      user.Telephone,
		Gender:         user.Gender,
		Bio:            user.Bio,
		Avatar:         user.Avatar,
		CurrentGroupId: currentGroupId,
		IsGroupOwner:   user.IsGroupOwner,
		CreatedAt:      user.CreatedAt.Format("2006-01-02 15:04:05"),
		Status:         user.Status,
	}

	u.cache.SubmitTask(func() {
		data, err := json.Marshal(rsp)
		if err != nil {
			zap.L().Error("Marshal user info error", zap.Error(err))
			return
		}
		if err := u.cache.Set(context.Background(), cacheKey, string(data), time.Hour*24); err != nil {
			zap.L().Error("Set user info cache error", zap.Error(err))
		}
	})

	return rsp, nil
}

// DeleteUser 注销用户（软删除）
// 群主必须先解散群组；普通成员自动退出当前群
func (u *userService) DeleteUser(uuid string) error {
	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	// 以群表为准核对群主身份，is_group_owner 标记只作展示用途
	ownedGroups, err := u.repos.Group.FindByOwnerId(uuid)
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	for _, group := range ownedGroups {
		if group.Status != group_status_enum.DISMISSED {
			return errorx.New(errorx.CodeStateConflict, "请先解散您的群组再注销账号")
		}
	}

	err = u.repos.Transaction(func(txRepos *repository.Repositories) error {
		if user.CurrentGroupId.Valid {
			groupId := user.CurrentGroupId.String
			if err := txRepos.GroupMember.Delete(groupId, uuid); err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			if err := txRepos.Group.DecrementMemberCnt(groupId); err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
			if err := txRepos.User.ClearCurrentGroup(uuid); err != nil {
				zap.L().Error(err.Error())
				return errorx.ErrServerBusy
			}
		}
		if err := txRepos.User.SoftDeleteByUuid(uuid); err != nil {
			zap.L().Error(err.Error())
			return errorx.ErrServerBusy
		}
		return nil
	})
	if err != nil {
		return err
	}

	patterns := []string{"user_info_" + uuid, "user_token_" + uuid}
	if user.CurrentGroupId.Valid {
		groupId := user.CurrentGroupId.String
		patterns = append(patterns, "group_info_"+groupId, "group_memberlist_"+groupId, "group_browse_list_*")
	}
	u.cache.SubmitTask(func() {
		if err := u.cache.DeleteByPatterns(context.Background(), patterns); err != nil {
			zap.L().Error(err.Error())
		}
	})
	zap.L().Info("用户注销成功", zap.String("uuid", uuid))
	return nil
}

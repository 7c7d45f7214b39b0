// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计便于测试和解耦
package service

import (
	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理用户注册、登录、信息管理等功能
type UserService interface {
	// Register 用户注册
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// SmsLogin 短信验证码登录
	SmsLogin(req request.SmsLoginRequest) (*respond.LoginRespond, error)
	// SendSmsCode 发送短信验证码
	SendSmsCode(telephone string) error
	// RefreshToken 用 Refresh Token 换取新的令牌对
	RefreshToken(refreshToken string) (*respond.RefreshTokenRespond, error)
	// UpdateUserInfo 更新用户信息（白名单字段）
	UpdateUserInfo(req request.UpdateUserInfoRequest) error
	// GetUserInfo 获取单个用户信息
	GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error)
	// DeleteUser 注销用户（软删除，级联处理群关系）
	DeleteUser(uuid string) error
}

// GroupService 旅行群组业务接口
// 处理群组生命周期与成员状态流转
type GroupService interface {
	// CreateGroup 创建群组，返回新群 UUID
	CreateGroup(req request.CreateGroupRequest) (string, error)
	// JoinGroup 申请/直接加入群组，返回本次操作后的成员状态
	JoinGroup(req request.JoinGroupRequest) (int8, error)
	// UpdateMemberStatus 群主审批成员状态（通过/拒绝/拉黑）
	UpdateMemberStatus(req request.UpdateMemberStatusRequest) error
	// LeaveGroup 成员退出群组
	LeaveGroup(userId, groupId string) error
	// DismissGroup 群主解散群组
	DismissGroup(ownerId, groupId string) error
	// GetGroupList 获取浏览列表（所有正常状态的群）
	GetGroupList(userId string) ([]respond.GetGroupListRespond, error)
	// GetGroupInfo 获取群组详情
	GetGroupInfo(groupId string) (*respond.GetGroupInfoRespond, error)
	// GetGroupMemberList 获取群成员列表
	GetGroupMemberList(groupId string) ([]respond.GetGroupMemberListRespond, error)
}

// MessageService 群消息业务接口
type MessageService interface {
	// SendGroupMessage 发送群消息（HTTP 通道），校验后交给 Broker 分发
	SendGroupMessage(req request.SendGroupMessageRequest) error
	// GetGroupMessageList 获取群聊消息记录（时间升序）
	GetGroupMessageList(req request.GetGroupMessageListRequest) ([]respond.GetGroupMessageListRespond, error)
}

// DestinationService 目的地业务接口
type DestinationService interface {
	// GetDestinationList 获取全部目的地
	GetDestinationList() ([]respond.DestinationRespond, error)
	// GetPopularDestinations 按关联群数量获取热门目的地
	GetPopularDestinations(limit int) ([]respond.PopularDestinationRespond, error)
}

// ChatbotService 旅行助手业务接口
type ChatbotService interface {
	// Reply 根据提问内容生成回复
	Reply(req request.ChatbotRequest) (*respond.ChatbotRespond, error)
}

// NotificationService 站内通知业务接口
type NotificationService interface {
	// GetNotificationList 获取用户的通知列表
	GetNotificationList(userId string) ([]respond.NotificationRespond, error)
	// MarkRead 标记通知已读
	MarkRead(userId, uuid string) error
}

// Package repository 定义数据访问层接口与实现
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"travel_together_server/internal/model"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.User, error)
	// FindByUsername 根据用户名查找用户
	FindByUsername(username string) (*model.User, error)
	// FindByTelephone 根据手机号查找用户
	FindByTelephone(telephone string) (*model.User, error)
	// CreateUser 创建新用户
	CreateUser(user *model.User) error
	// UpdateFields 按列更新用户信息（调用方负责白名单过滤）
	UpdateFields(uuid string, fields map[string]interface{}) error
	// SetCurrentGroup 条件设置当前群指针（仅当 current_group_id 为空时生效）
	// 返回是否更新成功，失败表示用户已有生效群
	SetCurrentGroup(userUuid, groupUuid string) (bool, error)
	// ClearCurrentGroup 清空指定用户的当前群指针和群主标记
	ClearCurrentGroup(userUuid string) error
	// ClearCurrentGroupByGroup 清空所有指向该群的当前群指针和群主标记
	ClearCurrentGroupByGroup(groupUuid string) error
	// SetGroupOwnerFlag 设置群主标记
	SetGroupOwnerFlag(userUuid string, isOwner int8) error
	// SoftDeleteByUuid 软删除用户
	SoftDeleteByUuid(uuid string) error
}

// GroupRepository 群组数据访问接口
type GroupRepository interface {
	// FindByUuid 根据 UUID 查找群组
	FindByUuid(uuid string) (*model.TravelGroup, error)
	// FindByOwnerId 根据群主 ID 查找群组
	FindByOwnerId(ownerId string) ([]model.TravelGroup, error)
	// ListWithMeta 浏览页查询：所有正常状态的群 + 群主名 + 目的地名 + 请求者是否在群标记
	ListWithMeta(userUuid string) ([]GroupWithMeta, error)
	// CreateGroup 创建新群组
	CreateGroup(group *model.TravelGroup) error
	// UpdateFields 按列更新群组信息（调用方负责白名单过滤）
	UpdateFields(uuid string, fields map[string]interface{}) error
	// IncrementMemberCntGuarded 容量守护的条件自增
	// 仅当 member_cnt < max_members 且群状态正常时自增，返回是否成功
	IncrementMemberCntGuarded(uuid string) (bool, error)
	// DecrementMemberCnt 成员数减一
	DecrementMemberCnt(uuid string) error
	// DeleteByUuid 删除群组（软删除）
	DeleteByUuid(uuid string) error
}

// GroupMemberRepository 群成员数据访问接口
type GroupMemberRepository interface {
	// FindByGroupAndUser 查找某用户在某群的成员关系
	FindByGroupAndUser(groupUuid, userUuid string) (*model.GroupMember, error)
	// FindMembersWithUser 查询群成员详细信息（联查用户表），按角色降序、入群时间升序
	FindMembersWithUser(groupUuid string) ([]model.GroupMemberWithUser, error)
	// ApprovedMemberIds 获取该群所有生效成员的用户 UUID
	ApprovedMemberIds(groupUuid string) ([]string, error)
	// CountApprovedByGroup 统计该群生效成员数（用于不变式核对）
	CountApprovedByGroup(groupUuid string) (int64, error)
	// Create 添加成员行
	Create(member *model.GroupMember) error
	// UpdateStatus 更新成员的入群状态
	UpdateStatus(groupUuid, userUuid string, status int8) error
	// Delete 删除单个成员行
	Delete(groupUuid, userUuid string) error
	// DeleteByGroupUuid 删除群组的所有成员行（解散群时清理）
	DeleteByGroupUuid(groupUuid string) error
}

// GroupMessageRepository 群消息数据访问接口
type GroupMessageRepository interface {
	// Create 追加一条消息
	Create(message *model.GroupMessage) error
	// FindRecentByGroup 取最近 limit 条消息（时间升序返回）
	FindRecentByGroup(groupUuid string, limit int) ([]model.GroupMessage, error)
	// DeleteByGroupUuid 删除群组的所有消息（解散群时清理）
	DeleteByGroupUuid(groupUuid string) error
}

// DestinationRepository 目的地数据访问接口
type DestinationRepository interface {
	// FindByUuid 根据 UUID 查找目的地
	FindByUuid(uuid string) (*model.Destination, error)
	// FindByName 按名称查找目的地
	FindByName(name string) (*model.Destination, error)
	// FindAll 获取全部目的地
	FindAll() ([]model.Destination, error)
	// Create 创建目的地
	Create(destination *model.Destination) error
	// FindPopular 按关联群数量取前 limit 个热门目的地
	FindPopular(limit int) ([]model.PopularDestination, error)
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	// Create 创建通知
	Create(notification *model.Notification) error
	// FindByUserId 获取用户的通知列表（时间倒序）
	FindByUserId(userId string) ([]model.Notification, error)
	// MarkRead 将某条通知标记为已读
	MarkRead(uuid, userId string) error
}

// GroupWithMeta 群浏览页的联查结果
type GroupWithMeta struct {
	Uuid            string `json:"uuid"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Visibility      int8   `json:"visibility"`
	OwnerId         string `json:"owner_id"`
	OwnerName       string `json:"owner_name"`
	DestinationName string `json:"destination_name"`
	MemberCnt       int    `json:"member_cnt"`
	MaxMembers      int    `json:"max_members"`
	IsMember        bool   `json:"is_member"`
}

// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupMemberRepository 接口，处理群成员相关的数据库操作
package repository

import (
	"time"

	"travel_together_server/internal/model"
	"travel_together_server/pkg/enum/group_member/join_status_enum"

	"gorm.io/gorm"
)

// groupMemberRepository GroupMemberRepository 接口的实现
type groupMemberRepository struct {
	db *gorm.DB
}

// NewGroupMemberRepository 创建 GroupMemberRepository 实例
func NewGroupMemberRepository(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

// FindByGroupAndUser 查找某用户在某群的成员关系
// 用于检查用户是否已在群中或已有申请
func (r *groupMemberRepository) FindByGroupAndUser(groupUuid, userUuid string) (*model.GroupMember, error) {
	var member model.GroupMember
	if err := r.db.Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群成员 group=%s user=%s", groupUuid, userUuid)
	}
	return &member, nil
}

// FindMembersWithUser 查询群成员详细信息（联查用户表）
// 只返回生效成员，按角色降序、入群时间升序
func (r *groupMemberRepository) FindMembersWithUser(groupUuid string) ([]model.GroupMemberWithUser, error) {
	var members []model.GroupMemberWithUser
	if err := r.db.Table("group_member").
		Select(`user.uuid AS user_id, user.username, user.avatar,
			group_member.role, group_member.joined_at`).
		Joins("LEFT JOIN user ON group_member.user_uuid = user.uuid").
		Where("group_member.group_uuid = ? AND group_member.join_status = ? AND group_member.deleted_at IS NULL",
			groupUuid, join_status_enum.APPROVED).
		Order("group_member.role DESC, group_member.joined_at ASC").
		Scan(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群成员详情 group=%s", groupUuid)
	}
	return members, nil
}

// ApprovedMemberIds 获取该群所有生效成员的用户 UUID
// 供消息广播时筛选在线接收者
func (r *groupMemberRepository) ApprovedMemberIds(groupUuid string) ([]string, error) {
	var ids []string
	if err := r.db.Model(&model.GroupMember{}).
		Where("group_uuid = ? AND join_status = ?", groupUuid, join_status_enum.APPROVED).
		Pluck("user_uuid", &ids).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群成员ID group=%s", groupUuid)
	}
	return ids, nil
}

// CountApprovedByGroup 统计该群生效成员数
func (r *groupMemberRepository) CountApprovedByGroup(groupUuid string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.GroupMember{}).
		Where("group_uuid = ? AND join_status = ?", groupUuid, join_status_enum.APPROVED).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计群成员数 group=%s", groupUuid)
	}
	return count, nil
}

// Create 添加成员行
func (r *groupMemberRepository) Create(member *model.GroupMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBError(err, "创建群成员")
	}
	return nil
}

// UpdateStatus 更新成员的入群状态
// 进入 APPROVED 时同时记录 joined_at
func (r *groupMemberRepository) UpdateStatus(groupUuid, userUuid string, status int8) error {
	fields := map[string]interface{}{"join_status": status}
	if status == join_status_enum.APPROVED {
		fields["joined_at"] = time.Now()
	}
	if err := r.db.Model(&model.GroupMember{}).
		Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).
		Updates(fields).Error; err != nil {
		return wrapDBErrorf(err, "更新成员状态 group=%s user=%s", groupUuid, userUuid)
	}
	return nil
}

// Delete 删除单个成员行
// 硬删除：(group_uuid, user_uuid) 上有唯一索引，软删墓碑会挡住退群后的再次加入
func (r *groupMemberRepository) Delete(groupUuid, userUuid string) error {
	if err := r.db.Unscoped().Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).
		Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBErrorf(err, "删除群成员 group=%s user=%s", groupUuid, userUuid)
	}
	return nil
}

// DeleteByGroupUuid 删除群组的所有成员行
// 用于解散群组时清理成员数据，同样硬删除释放唯一索引
func (r *groupMemberRepository) DeleteByGroupUuid(groupUuid string) error {
	if err := r.db.Unscoped().Where("group_uuid = ?", groupUuid).Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBErrorf(err, "删除群所有成员 group=%s", groupUuid)
	}
	return nil
}

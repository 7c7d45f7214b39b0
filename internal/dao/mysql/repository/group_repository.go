// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupRepository 接口，处理旅行群组相关的数据库操作
package repository

import (
	"travel_together_server/internal/model"
	"travel_together_server/pkg/enum/group/group_status_enum"
	"travel_together_server/pkg/enum/group_member/join_status_enum"

	"gorm.io/gorm"
)

// groupRepository GroupRepository 接口的实现
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建 GroupRepository 实例
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// FindByUuid 根据 UUID 查找群组
func (r *groupRepository) FindByUuid(uuid string) (*model.TravelGroup, error) {
	var group model.TravelGroup
	if err := r.db.First(&group, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群组 uuid=%s", uuid)
	}
	return &group, nil
}

// FindByOwnerId 根据群主ID查找其创建的群组
func (r *groupRepository) FindByOwnerId(ownerId string) ([]model.TravelGroup, error) {
	var groups []model.TravelGroup
	if err := r.db.Where("owner_id = ?", ownerId).Find(&groups).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群组 owner_id=%s", ownerId)
	}
	return groups, nil
}

// ListWithMeta 浏览页查询
// 联查群主用户名、目的地名称，并以子查询标记请求者是否已是生效成员
func (r *groupRepository) ListWithMeta(userUuid string) ([]GroupWithMeta, error) {
	var groups []GroupWithMeta
	if err := r.db.Table("travel_group").
		Select(`travel_group.uuid, travel_group.name, travel_group.description,
			travel_group.visibility, travel_group.owner_id, travel_group.member_cnt,
			travel_group.max_members, user.username AS owner_name,
			destination.name AS destination_name,
			EXISTS(SELECT 1 FROM group_member
				WHERE group_member.group_uuid = travel_group.uuid
				AND group_member.user_uuid = ?
				AND group_member.join_status = ?
				AND group_member.deleted_at IS NULL) AS is_member`,
			userUuid, join_status_enum.APPROVED).
		Joins("LEFT JOIN user ON travel_group.owner_id = user.uuid").
		Joins("LEFT JOIN destination ON travel_group.destination_id = destination.uuid").
		Where("travel_group.status = ? AND travel_group.deleted_at IS NULL", group_status_enum.NORMAL).
		Order("travel_group.created_at DESC").
		Scan(&groups).Error; err != nil {
		return nil, wrapDBError(err, "查询群组浏览列表")
	}
	return groups, nil
}

// CreateGroup 创建群组
func (r *groupRepository) CreateGroup(group *model.TravelGroup) error {
	if err := r.db.Create(group).Error; err != nil {
		return wrapDBError(err, "创建群组")
	}
	return nil
}

// UpdateFields 按列更新群组信息
func (r *groupRepository) UpdateFields(uuid string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.Model(&model.TravelGroup{}).Where("uuid = ?", uuid).Updates(fields).Error; err != nil {
		return wrapDBErrorf(err, "更新群组 uuid=%s", uuid)
	}
	return nil
}

// IncrementMemberCntGuarded 容量守护的条件自增
// 把"检查容量"与"自增"合并为一条带 WHERE 的 UPDATE，关闭 check-then-act 竞态：
// 并发加群时数据库层面保证 member_cnt 不会越过 max_members
func (r *groupRepository) IncrementMemberCntGuarded(uuid string) (bool, error) {
	res := r.db.Model(&model.TravelGroup{}).
		Where("uuid = ? AND member_cnt < max_members AND status = ?", uuid, group_status_enum.NORMAL).
		UpdateColumn("member_cnt", gorm.Expr("member_cnt + ?", 1))
	if res.Error != nil {
		return false, wrapDBErrorf(res.Error, "自增群成员数 uuid=%s", uuid)
	}
	return res.RowsAffected > 0, nil
}

// DecrementMemberCnt 成员数减一
func (r *groupRepository) DecrementMemberCnt(uuid string) error {
	if err := r.db.Model(&model.TravelGroup{}).
		Where("uuid = ? AND member_cnt > 0", uuid).
		UpdateColumn("member_cnt", gorm.Expr("member_cnt - ?", 1)).Error; err != nil {
		return wrapDBErrorf(err, "自减群成员数 uuid=%s", uuid)
	}
	return nil
}

// DeleteByUuid 软删除群组
func (r *groupRepository) DeleteByUuid(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.TravelGroup{}).Error; err != nil {
		return wrapDBErrorf(err, "删除群组 uuid=%s", uuid)
	}
	return nil
}

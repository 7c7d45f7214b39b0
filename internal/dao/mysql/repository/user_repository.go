// Package repository 提供数据访问层的具体实现
// 本文件实现 UserRepository 接口，处理用户相关的数据库操作
package repository

import (
	"travel_together_server/internal/model"

	"gorm.io/gorm"
)

// userRepository UserRepository 接口的实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUuid 根据 UUID 查找用户
func (r *userRepository) FindByUuid(uuid string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 uuid=%s", uuid)
	}
	return &user, nil
}

// FindByUsername 根据用户名查找用户
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 username=%s", username)
	}
	return &user, nil
}

// FindByTelephone 根据手机号查找用户
func (r *userRepository) FindByTelephone(telephone string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "telephone = ?", telephone).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 telephone=%s", telephone)
	}
	return &user, nil
}

// CreateUser 创建新用户
func (r *userRepository) CreateUser(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户")
	}
	return nil
}

// UpdateFields 按列更新用户信息
// 白名单过滤在 Service 层完成，这里只做参数绑定更新
func (r *userRepository) UpdateFields(uuid string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.Model(&model.User{}).Where("uuid = ?", uuid).Updates(fields).Error; err != nil {
		return wrapDBErrorf(err, "更新用户 uuid=%s", uuid)
	}
	return nil
}

// SetCurrentGroup 条件设置当前群指针
// WHERE current_group_id IS NULL 保证单群策略在并发下也不被突破
func (r *userRepository) SetCurrentGroup(userUuid, groupUuid string) (bool, error) {
	res := r.db.Model(&model.User{}).
		Where("uuid = ? AND current_group_id IS NULL", userUuid).
		Update("current_group_id", groupUuid)
	if res.Error != nil {
		return false, wrapDBErrorf(res.Error, "设置当前群 user=%s group=%s", userUuid, groupUuid)
	}
	return res.RowsAffected > 0, nil
}

// ClearCurrentGroup 清空指定用户的当前群指针和群主标记
func (r *userRepository) ClearCurrentGroup(userUuid string) error {
	if err := r.db.Model(&model.User{}).Where("uuid = ?", userUuid).
		Updates(map[string]interface{}{"current_group_id": nil, "is_group_owner": 0}).Error; err != nil {
		return wrapDBErrorf(err, "清空当前群 user=%s", userUuid)
	}
	return nil
}

// ClearCurrentGroupByGroup 清空所有指向该群的当前群指针和群主标记
// 解散群时批量回收受影响用户的状态
func (r *userRepository) ClearCurrentGroupByGroup(groupUuid string) error {
	if err := r.db.Model(&model.User{}).Where("current_group_id = ?", groupUuid).
		Updates(map[string]interface{}{"current_group_id": nil, "is_group_owner": 0}).Error; err != nil {
		return wrapDBErrorf(err, "按群清空当前群 group=%s", groupUuid)
	}
	return nil
}

// SetGroupOwnerFlag 设置群主标记
func (r *userRepository) SetGroupOwnerFlag(userUuid string, isOwner int8) error {
	if err := r.db.Model(&model.User{}).Where("uuid = ?", userUuid).
		Update("is_group_owner", isOwner).Error; err != nil {
		return wrapDBErrorf(err, "设置群主标记 user=%s", userUuid)
	}
	return nil
}

// SoftDeleteByUuid 软删除用户
// username/email 上有唯一索引，软删前先改写为 uuid 派生值，释放给后续注册者
func (r *userRepository) SoftDeleteByUuid(uuid string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Where("uuid = ?", uuid).
			Updates(map[string]interface{}{
				"username": uuid,
				"email":    uuid + "@deleted",
			}).Error; err != nil {
			return wrapDBErrorf(err, "回收用户唯一字段 uuid=%s", uuid)
		}
		if err := tx.Where("uuid = ?", uuid).Delete(&model.User{}).Error; err != nil {
			return wrapDBErrorf(err, "删除用户 uuid=%s", uuid)
		}
		return nil
	})
}

// Package repository 提供数据访问层的具体实现
// 本文件实现 NotificationRepository 接口，处理站内通知相关的数据库操作
package repository

import (
	"travel_together_server/internal/model"
	"travel_together_server/pkg/errorx"

	"gorm.io/gorm"
)

// notificationRepository NotificationRepository 接口的实现
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建 NotificationRepository 实例
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create 创建通知
func (r *notificationRepository) Create(notification *model.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return wrapDBError(err, "创建通知")
	}
	return nil
}

// FindByUserId 获取用户的通知列表（时间倒序）
func (r *notificationRepository) FindByUserId(userId string) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := r.db.Where("user_id = ?", userId).
		Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通知 user=%s", userId)
	}
	return notifications, nil
}

// MarkRead 将某条通知标记为已读
// 带 user_id 条件，防止替别人已读；未命中任何行时报 NotFound
func (r *notificationRepository) MarkRead(uuid, userId string) error {
	result := r.db.Model(&model.Notification{}).
		Where("uuid = ? AND user_id = ?", uuid, userId).
		Update("is_read", 1)
	if result.Error != nil {
		return wrapDBErrorf(result.Error, "标记通知已读 uuid=%s", uuid)
	}
	if result.RowsAffected == 0 {
		return errorx.Newf(errorx.CodeNotFound, "通知不存在 uuid=%s", uuid)
	}
	return nil
}

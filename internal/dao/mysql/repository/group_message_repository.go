// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupMessageRepository 接口，处理群消息相关的数据库操作
package repository

import (
	"travel_together_server/internal/model"

	"gorm.io/gorm"
)

// groupMessageRepository GroupMessageRepository 接口的实现
type groupMessageRepository struct {
	db *gorm.DB
}

// NewGroupMessageRepository 创建 GroupMessageRepository 实例
func NewGroupMessageRepository(db *gorm.DB) GroupMessageRepository {
	return &groupMessageRepository{db: db}
}

// Create 追加一条消息
func (r *groupMessageRepository) Create(message *model.GroupMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建群消息")
	}
	return nil
}

// FindRecentByGroup 取最近 limit 条消息，时间升序返回
// 先按时间倒序取 limit 条，再原地反转，保证拿到的是"最近的 N 条"而非"最早的 N 条"
func (r *groupMessageRepository) FindRecentByGroup(groupUuid string, limit int) ([]model.GroupMessage, error) {
	var messages []model.GroupMessage
	query := r.db.Where("group_uuid = ?", groupUuid).Order("created_at DESC, uuid DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群消息 group=%s", groupUuid)
	}
	// 反转为时间升序
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// DeleteByGroupUuid 删除群组的所有消息
// 用于解散群组时清理聊天记录
func (r *groupMessageRepository) DeleteByGroupUuid(groupUuid string) error {
	if err := r.db.Where("group_uuid = ?", groupUuid).Delete(&model.GroupMessage{}).Error; err != nil {
		return wrapDBErrorf(err, "删除群所有消息 group=%s", groupUuid)
	}
	return nil
}

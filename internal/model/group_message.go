// Package model 定义数据库实体模型
// 本文件定义群消息模型，只追加，除随群解散级联清理外不修改不删除
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// GroupMessage 群消息
type GroupMessage struct {
	gorm.Model

	// Uuid 消息唯一标识，雪花算法生成的 int64
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// GroupUuid 所属群组
	GroupUuid string `gorm:"column:group_uuid;index;type:char(20);not null;comment:群组uuid"`

	// SendId 发送者 UUID
	SendId string `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`

	// SendName 发送者用户名，冗余存储，避免查消息时关联用户表
	SendName string `gorm:"column:send_name;type:varchar(20);not null;comment:发送者用户名"`

	// Content 消息文本内容
	Content string `gorm:"column:content;type:TEXT;not null;comment:消息内容"`

	// SendAt 服务端落库时间
	SendAt sql.NullTime `gorm:"column:send_at;comment:发送时间"`
}

// TableName 指定表名
func (GroupMessage) TableName() string {
	return "group_message"
}

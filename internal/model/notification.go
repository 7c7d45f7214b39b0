package model

import (
	"gorm.io/gorm"
)

// Notification 站内通知
// 私有群收到入群申请时通知群主，审批结果通知申请人
type Notification struct {
	gorm.Model
	Uuid      string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:通知唯一id"`
	UserId    string `gorm:"column:user_id;index;type:char(20);not null;comment:接收者uuid"`
	Kind      int8   `gorm:"column:kind;not null;comment:类型，0.入群申请，1.申请结果，2.系统"`
	Content   string `gorm:"column:content;type:varchar(200);not null;comment:通知内容"`
	GroupUuid string `gorm:"column:group_uuid;type:char(20);comment:关联群组uuid"`
	IsRead    int8   `gorm:"column:is_read;not null;default:0;comment:是否已读，0.未读，1.已读"`
}

func (Notification) TableName() string {
	return "notification"
}

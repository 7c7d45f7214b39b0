package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// GroupMember 群成员关联表
// (group_uuid, user_uuid) 对唯一
type GroupMember struct {
	gorm.Model
	GroupUuid  string       `gorm:"type:char(20);uniqueIndex:idx_group_user;not null;comment:群组uuid"`
	UserUuid   string       `gorm:"type:char(20);uniqueIndex:idx_group_user;index;not null;comment:用户uuid"`
	Role       int8         `gorm:"default:1;comment:1普通成员 2管理员 3群主"`
	JoinStatus int8         `gorm:"column:join_status;index;not null;default:0;comment:0待审核 1已通过 2已拒绝 3已拉黑"`
	JoinedAt   sql.NullTime `gorm:"column:joined_at;comment:通过审核时间"`
}

func (GroupMember) TableName() string {
	return "group_member"
}

// GroupMemberWithUser 群成员 + 用户资料的联查结果
type GroupMemberWithUser struct {
	UserId   string       `json:"user_id"`
	Username string       `json:"username"`
	Avatar   string       `json:"avatar"`
	Role     int8         `json:"role"`
	JoinedAt sql.NullTime `json:"joined_at"`
}

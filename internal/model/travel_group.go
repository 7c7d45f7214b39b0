package model

import (
	"gorm.io/gorm"
)

// TravelGroup 旅行群组
// 不变式：MemberCnt 恒等于该群 join_status=APPROVED 的成员行数；
// 群主永远是一名 role=OWNER 的成员
type TravelGroup struct {
	gorm.Model
	Uuid          string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:群组唯一id"`
	Name          string `gorm:"column:name;type:varchar(30);not null;comment:群名称"`
	Description   string `gorm:"column:description;type:varchar(500);comment:群描述"`
	Visibility    int8   `gorm:"column:visibility;not null;default:0;comment:可见性，0.公开，1.私有"`
	OwnerId       string `gorm:"column:owner_id;type:char(20);not null;comment:群主uuid"`
	DestinationId string `gorm:"column:destination_id;index;type:char(20);comment:目的地uuid"`
	MemberCnt     int    `gorm:"column:member_cnt;default:1;comment:生效成员数"`
	MaxMembers    int    `gorm:"column:max_members;not null;comment:成员数上限"`
	Status        int8   `gorm:"column:status;default:0;comment:状态，0.正常，1.禁用，2.解散"`
}

func (TravelGroup) TableName() string {
	return "travel_group"
}

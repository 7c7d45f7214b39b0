package model

import (
	"gorm.io/gorm"
)

// Destination 旅行目的地，建群时按名称查找或自动创建
type Destination struct {
	gorm.Model
	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:目的地唯一id"`
	Name        string `gorm:"column:name;uniqueIndex;type:varchar(50);not null;comment:目的地名称"`
	Country     string `gorm:"column:country;type:varchar(50);comment:国家"`
	Description string `gorm:"column:description;type:varchar(500);comment:描述"`
}

func (Destination) TableName() string {
	return "destination"
}

// PopularDestination 热门目的地统计结果（按群数量排序）
type PopularDestination struct {
	Name     string `json:"name"`
	GroupCnt int64  `json:"group_cnt"`
}

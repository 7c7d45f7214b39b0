// Package repository 提供数据访问层的具体实现
// 本文件实现 DestinationRepository 接口，处理旅行目的地相关的数据库操作
package repository

import (
	"travel_together_server/internal/model"
	"travel_together_server/pkg/enum/group/group_status_enum"

	"gorm.io/gorm"
)

// destinationRepository DestinationRepository 接口的实现
type destinationRepository struct {
	db *gorm.DB
}

// NewDestinationRepository 创建 DestinationRepository 实例
func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

// FindByUuid 根据 UUID 查找目的地
func (r *destinationRepository) FindByUuid(uuid string) (*model.Destination, error) {
	var destination model.Destination
	if err := r.db.First(&destination, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询目的地 uuid=%s", uuid)
	}
	return &destination, nil
}

// FindByName 按名称查找目的地
func (r *destinationRepository) FindByName(name string) (*model.Destination, error) {
	var destination model.Destination
	if err := r.db.First(&destination, "name = ?", name).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询目的地 name=%s", name)
	}
	return &destination, nil
}

// FindAll 获取全部目的地
func (r *destinationRepository) FindAll() ([]model.Destination, error) {
	var destinations []model.Destination
	if err := r.db.Order("name ASC").Find(&destinations).Error; err != nil {
		return nil, wrapDBError(err, "查询目的地列表")
	}
	return destinations, nil
}

// Create 创建目的地
func (r *destinationRepository) Create(destination *model.Destination) error {
	if err := r.db.Create(destination).Error; err != nil {
		return wrapDBError(err, "创建目的地")
	}
	return nil
}

// FindPopular 按关联群数量取前 limit 个热门目的地
// 只统计正常状态的群
func (r *destinationRepository) FindPopular(limit int) ([]model.PopularDestination, error) {
	var popular []model.PopularDestination
	if err := r.db.Table("destination").
		Select("destination.name, COUNT(travel_group.id) AS group_cnt").
		Joins("JOIN travel_group ON travel_group.destination_id = destination.uuid").
		Where("travel_group.status = ? AND travel_group.deleted_at IS NULL", group_status_enum.NORMAL).
		Group("destination.name").
		Order("group_cnt DESC").
		Limit(limit).
		Scan(&popular).Error; err != nil {
		return nil, wrapDBError(err, "查询热门目的地")
	}
	return popular, nil
}

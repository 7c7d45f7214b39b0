// Package destination 实现目的地业务逻辑
package destination

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"travel_together_server/internal/dao/mysql/repository"
	myredis "travel_together_server/internal/dao/redis"
	"travel_together_server/internal/dto/respond"
	"travel_together_server/pkg/errorx"
)

// destinationService 目的地业务逻辑实现
type destinationService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewDestinationService 构造函数，注入所有依赖
func NewDestinationService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *destinationService {
	return &destinationService{
		repos: repos,
		cache: cacheService,
	}
}

// GetDestinationList 获取全部目的地（按名称排序，缓存 1 小时）
func (d *destinationService) GetDestinationList() ([]respond.DestinationRespond, error) {
	cacheKey := "destination_list"

	rspString, err := d.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var rsp []respond.DestinationRespond
		if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
			return rsp, nil
		}
		zap.L().Warn("Unmarshal destination list cache failed", zap.Error(err))
	} else if err != nil {
		zap.L().Error("Get destination list cache error", zap.Error(err))
	}

	destinations, err := d.repos.Destination.FindAll()
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rspList := make([]respond.DestinationRespond, 0, len(destinations))
	for _, dest := range destinations {
		rspList = append(rspList, respond.DestinationRespond{
			Uuid:        dest.Uuid,
			Name:        dest.Name,
			Country:     dest.Country,
			Description: dest.Description,
		})
	}

	d.cache.SubmitTask(func() {
		data, err := json.Marshal(rspList)
		if err != nil {
			zap.L().Error("Marshal destination list error", zap.Error(err))
			return
		}
		if err := d.cache.Set(context.Background(), cacheKey, string(data), time.Hour); err != nil {
			zap.L().Error("Set destination list cache error", zap.Error(err))
		}
	})

	return rspList, nil
}

// GetPopularDestinations 按关联群数量获取热门目的地
// 排行榜时效性要求不高，缓存 10 分钟
func (d *destinationService) GetPopularDestinations(limit int) ([]respond.PopularDestinationRespond, error) {
	if limit <= 0 {
		limit = 10
	}
	cacheKey := "destination_popular"

	if limit == 10 {
		rspString, err := d.cache.Get(context.Background(), cacheKey)
		if err == nil && rspString != "" {
			var rsp []respond.PopularDestinationRespond
			if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
				return rsp, nil
			}
			zap.L().Warn("Unmarshal popular destination cache failed", zap.Error(err))
		} else if err != nil {
			zap.L().Error("Get popular destination cache error", zap.Error(err))
		}
	}

	popular, err := d.repos.Destination.FindPopular(limit)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rspList := make([]respond.PopularDestinationRespond, 0, len(popular))
	for _, p := range popular {
		rspList = append(rspList, respond.PopularDestinationRespond{
			Name:     p.Name,
			GroupCnt: p.GroupCnt,
		})
	}

	if limit == 10 {
		d.cache.SubmitTask(func() {
			data, err := json.Marshal(rspList)
			if err != nil {
				zap.L().Error("Marshal popular destination error", zap.Error(err))
				return
			}
			if err := d.cache.Set(context.Background(), cacheKey, string(data), time.Minute*10); err != nil {
				zap.L().Error("Set popular destination cache error", zap.Error(err))
			}
		})
	}

	return rspList, nil
}

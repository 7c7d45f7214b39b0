// Package notification 实现站内通知业务逻辑
package notification

import (
	"go.uber.org/zap"

	"travel_together_server/internal/dao/mysql/repository"
	"travel_together_server/internal/dto/respond"
	"travel_together_server/pkg/errorx"
)

// notificationService 站内通知业务逻辑实现
type notificationService struct {
	repos *repository.Repositories
}

// NewNotificationService 构造函数
func NewNotificationService(repos *repository.Repositories) *notificationService {
	return &notificationService{repos: repos}
}

// GetNotificationList 获取用户的通知列表（时间倒序）
func (n *notificationService) GetNotificationList(userId string) ([]respond.NotificationRespond, error) {
	notifications, err := n.repos.Notification.FindByUserId(userId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rspList := make([]respond.NotificationRespond, 0, len(notifications))
	for _, ntf := range notifications {
		rspList = append(rspList, respond.NotificationRespond{
			Uuid:      ntf.Uuid,
			Kind:      ntf.Kind,
			Content:   ntf.Content,
			GroupId:   ntf.GroupUuid,
			IsRead:    ntf.IsRead,
			CreatedAt: ntf.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rspList, nil
}

// MarkRead 标记通知已读
// WHERE 条件带上 user_id，防止标记他人的通知
func (n *notificationService) MarkRead(userId, uuid string) error {
	if err := n.repos.Notification.MarkRead(uuid, userId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "通知不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

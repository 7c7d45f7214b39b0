// Package message 实现群消息业务逻辑
// HTTP 通道的发送与历史记录查询，发送统一经 Broker 分发落库
package message

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"travel_together_server/internal/dao/mysql/repository"
	myredis "travel_together_server/internal/dao/redis"
	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/dto/respond"
	"travel_together_server/pkg/constants"
	"travel_together_server/pkg/enum/group/group_status_enum"
	"travel_together_server/pkg/enum/group_member/join_status_enum"
	"travel_together_server/pkg/errorx"
)

// MessagePublisher 消息发布接口
// 由 chat.MessageBroker 实现，这里只依赖 Publish 能力，便于测试
type MessagePublisher interface {
	Publish(ctx context.Context, msg []byte) error
}

// groupMessageService 群消息业务逻辑实现
type groupMessageService struct {
	repos     *repository.Repositories
	cache     myredis.AsyncCacheService
	publisher MessagePublisher
}

// NewMessageService 构造函数，注入所有依赖
func NewMessageService(repos *repository.Repositories, cacheService myredis.AsyncCacheService, publisher MessagePublisher) *groupMessageService {
	return &groupMessageService{
		repos:     repos,
		cache:     cacheService,
		publisher: publisher,
	}
}

// SendGroupMessage 发送群消息（HTTP 通道）
// 校验群状态和成员身份后交给 Broker，落库和分发由 Broker 统一完成
// 与 WebSocket 通道走同一条持久化路径
func (m *groupMessageService) SendGroupMessage(req request.SendGroupMessageRequest) error {
	group, err := m.repos.Group.FindByUuid(req.GroupId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if group.Status != group_status_enum.NORMAL {
		return errorx.New(errorx.CodeStateConflict, "该群已解散或被禁用")
	}

	member, err := m.repos.GroupMember.FindByGroupAndUser(req.GroupId, req.SendId)
	if err != nil || member.JoinStatus != join_status_enum.APPROVED {
		return errorx.New(errorx.CodeForbidden, "您不是该群的生效成员，无法发言")
	}

	sender, err := m.repos.User.FindByUuid(req.SendId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	chatMessage := request.ChatMessageRequest{
		GroupId:  req.GroupId,
		SendId:   req.SendId,
		SendName: sender.Username,
		Content:  req.Content,
	}
	data, err := json.Marshal(chatMessage)
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if err := m.publisher.Publish(context.Background(), data); err != nil {
		zap.L().Warn("消息投递失败", zap.String("groupId", req.GroupId), zap.Error(err))
		return err
	}
	return nil
}

// GetGroupMessageList 获取群聊消息记录（时间升序）
// 仅生效成员可查看；默认条数走缓存，自定义条数直查数据库
func (m *groupMessageService) GetGroupMessageList(req request.GetGroupMessageListRequest) ([]respond.GetGroupMessageListRespond, error) {
	member, err := m.repos.GroupMember.FindByGroupAndUser(req.GroupId, req.UserId)
	if err != nil || member.JoinStatus != join_status_enum.APPROVED {
		return nil, errorx.New(errorx.CodeForbidden, "您不是该群的生效成员，无法查看聊天记录")
	}

	limit := req.Limit
	useCache := limit <= 0 || limit == constants.DEFAULT_MESSAGE_LIMIT
	if limit <= 0 {
		limit = constants.DEFAULT_MESSAGE_LIMIT
	}
	cacheKey := "group_messagelist_" + req.GroupId

	if useCache {
		rspString, err := m.cache.Get(context.Background(), cacheKey)
		if err == nil && rspString != "" {
			var rsp []respond.GetGroupMessageListRespond
			if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
				return rsp, nil
			}
			zap.L().Warn("Unmarshal message list cache failed", zap.String("groupId", req.GroupId), zap.Error(err))
		} else if err != nil {
			zap.L().Error("Get message list cache error", zap.String("groupId", req.GroupId), zap.Error(err))
		}
	}

	messages, err := m.repos.GroupMessage.FindRecentByGroup(req.GroupId, limit)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rspList := make([]respond.GetGroupMessageListRespond, 0, len(messages))
	for _, msg := range messages {
		sendAt := ""
		if msg.SendAt.Valid {
			sendAt = msg.SendAt.Time.Format("2006-01-02 15:04:05")
		}
		rspList = append(rspList, respond.GetGroupMessageListRespond{
			Uuid:     msg.Uuid,
			GroupId:  msg.GroupUuid,
			SendId:   msg.SendId,
			SendName: msg.SendName,
			Content:  msg.Content,
			SendAt:   sendAt,
		})
	}

	if useCache {
		m.cache.SubmitTask(func() {
			data, err := json.Marshal(rspList)
			if err != nil {
				zap.L().Error("Marshal message list error", zap.Error(err))
				return
			}
			if err := m.cache.Set(context.Background(), cacheKey, string(data), time.Minute*30); err != nil {
				zap.L().Error("Set message list cache error", zap.Error(err))
			}
		})
	}

	return rspList, nil
}

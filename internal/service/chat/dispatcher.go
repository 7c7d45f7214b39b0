// dispatcher.go
// 核心职责：入站聊天消息的公共处理逻辑
// Channel 模式和 Kafka 模式的消费侧共用：成员校验 -> 落库 -> 群内广播 -> 缓存追加
package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"travel_together_server/internal/dao/mysql/repository"
	myredis "travel_together_server/internal/dao/redis"
	"travel_together_server/internal/dto/request"
	"travel_together_server/internal/dto/respond"
	"travel_together_server/internal/model"
	"travel_together_server/pkg/enum/group_member/join_status_enum"
	"travel_together_server/pkg/util/snowflake"
)

// groupDispatcher 群消息分发器
// 持有在线连接表和持久化依赖，被两种 Broker 嵌入复用
type groupDispatcher struct {
	// Clients 在线客户端映射表，Key 为 UserUUID，Value 为 *UserConn
	// sync.Map 并发安全，无需手动加锁
	Clients sync.Map

	messageRepo  repository.GroupMessageRepository
	memberRepo   repository.GroupMemberRepository
	cacheService myredis.AsyncCacheService
}

// handleChatMessage 处理一条入站消息
// 1. 反序列化
// 2. 校验发送者是该群生效成员
// 3. 雪花 ID + 落库
// 4. 广播给群内在线成员（含发送者回显）
func (d *groupDispatcher) handleChatMessage(data []byte) {
	var req request.ChatMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		zap.L().Error("聊天消息反序列化失败", zap.Error(err))
		return
	}
	if req.GroupId == "" || req.SendId == "" || req.Content == "" {
		return
	}

	// 非生效成员的消息直接丢弃，并提示发送者
	member, err := d.memberRepo.FindByGroupAndUser(req.GroupId, req.SendId)
	if err != nil || member.JoinStatus != join_status_enum.APPROVED {
		zap.L().Warn("非群成员发送消息被拒绝",
			zap.String("groupId", req.GroupId), zap.String("sendId", req.SendId))
		if conn := d.getClient(req.SendId); conn != nil {
			conn.trySend([]byte("您不是该群成员，消息未发送"))
		}
		return
	}

	message := model.GroupMessage{
		Uuid:      snowflake.GenerateID(),
		GroupUuid: req.GroupId,
		SendId:    req.SendId,
		SendName:  req.SendName,
		Content:   req.Content,
		SendAt:    sql.NullTime{Time: time.Now(), Valid: true},
	}
	if d.messageRepo != nil {
		if err := d.messageRepo.Create(&message); err != nil {
			zap.L().Error("群消息落库失败", zap.Error(err))
			return
		}
	}

	d.broadcast(message)
}

// broadcast 将已落库的消息广播给群内在线成员
func (d *groupDispatcher) broadcast(message model.GroupMessage) {
	messageRsp := respond.GetGroupMessageListRespond{
		Uuid:     message.Uuid,
		GroupId:  message.GroupUuid,
		SendId:   message.SendId,
		SendName: message.SendName,
		Content:  message.Content,
		SendAt:   message.SendAt.Time.Format("2006-01-02 15:04:05"),
	}
	jsonMessage, err := json.Marshal(messageRsp)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}

	memberIds, err := d.memberRepo.ApprovedMemberIds(message.GroupUuid)
	if err != nil {
		zap.L().Error("查询群成员失败", zap.Error(err))
		return
	}

	// 在线成员推送，发送者自己也收到回显
	for _, memberId := range memberIds {
		if value, ok := d.Clients.Load(memberId); ok {
			client := value.(*UserConn)
			if !client.trySend(jsonMessage) {
				zap.L().Warn("客户端回写通道不可用，消息丢弃", zap.String("userId", memberId))
			}
		}
	}

	// 缓存中已有该群的消息列表时，异步追加保持一致
	if d.cacheService != nil {
		d.cacheService.SubmitTask(func() {
			key := "group_messagelist_" + message.GroupUuid
			rspString, err := d.cacheService.GetOrError(context.Background(), key)
			if err != nil {
				return
			}
			var list []respond.GetGroupMessageListRespond
			if err := json.Unmarshal([]byte(rspString), &list); err != nil {
				return
			}
			list = append(list, messageRsp)
			if rspByte, err := json.Marshal(list); err == nil {
				_ = d.cacheService.Set(context.Background(), key, string(rspByte), time.Minute*30)
			}
		})
	}
}

// getClient 获取在线客户端连接
func (d *groupDispatcher) getClient(userId string) *UserConn {
	value, ok := d.Clients.Load(userId)
	if !ok {
		return nil
	}
	return value.(*UserConn)
}

// storeClient 记录上线连接，并异步维护 Redis 在线用户集合
// 集合供成员列表接口标注在线状态，更新失败只记日志
func (d *groupDispatcher) storeClient(client *UserConn) {
	d.Clients.Store(client.Uuid, client)
	if d.cacheService != nil {
		uuid := client.Uuid
		d.cacheService.SubmitTask(func() {
			if err := d.cacheService.AddToSet(context.Background(), "online_users", uuid); err != nil {
				zap.L().Error("在线用户集合更新失败", zap.Error(err))
			}
		})
	}
}

// removeClient 移除下线连接并关闭其回写通道
// SendBack 只在这里关闭；同一用户重连后收到的旧连接注销事件不影响新连接
func (d *groupDispatcher) removeClient(client *UserConn) {
	if value, ok := d.Clients.Load(client.Uuid); ok && value.(*UserConn) == client {
		d.Clients.Delete(client.Uuid)
		if d.cacheService != nil {
			uuid := client.Uuid
			d.cacheService.SubmitTask(func() {
				if err := d.cacheService.RemoveFromSet(context.Background(), "online_users", uuid); err != nil {
					zap.L().Error("在线用户集合更新失败", zap.Error(err))
				}
			})
		}
	}
	client.closeSend()
}

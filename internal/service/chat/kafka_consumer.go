// kafka_consumer.go
// 核心职责：分布式模式下的聊天服务器实现
// 1. 作为 Kafka 消费者，从消息队列读取全量消息
// 2. 维护本机在线用户连接 (Kafka 模式)
// 3. 消息处理复用 groupDispatcher：成员校验、落库、本机在线成员推送
package chat

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	myconfig "travel_together_server/internal/config"
	"travel_together_server/internal/dao/mysql/repository"
	myredis "travel_together_server/internal/dao/redis"
	"travel_together_server/pkg/constants"
)

// MsgConsumer 基于 Kafka 的消息代理
type MsgConsumer struct {
	groupDispatcher

	// Login 客户端登录通道
	Login chan *UserConn
	// Logout 客户端登出通道
	Logout chan *UserConn

	kafkaClient *KafkaClient
	done        chan struct{}
}

// NewMsgConsumer 创建 Kafka 模式的消息代理（依赖注入）
func NewMsgConsumer(
	kafkaClient *KafkaClient,
	messageRepo repository.GroupMessageRepository,
	memberRepo repository.GroupMemberRepository,
	cacheService myredis.AsyncCacheService,
) *MsgConsumer {
	m := &MsgConsumer{
		Login:       make(chan *UserConn, constants.CHANNEL_SIZE),
		Logout:      make(chan *UserConn, constants.CHANNEL_SIZE),
		kafkaClient: kafkaClient,
		done:        make(chan struct{}),
	}
	m.messageRepo = messageRepo
	m.memberRepo = memberRepo
	m.cacheService = cacheService
	return m
}

// Start 启动消费循环
// 1. 独立协程从 Kafka 读取消息并分发
// 2. 主循环处理客户端登录/登出事件
func (m *MsgConsumer) Start() {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error(fmt.Sprintf("kafka consumer panic: %v", r))
			}
		}()
		for {
			select {
			case <-m.done:
				return
			default:
			}
			kafkaMessage, err := m.kafkaClient.Consumer.ReadMessage(context.Background())
			if err != nil {
				zap.L().Error(err.Error())
				continue
			}
			zap.L().Debug(fmt.Sprintf("topic=%s, partition=%d, offset=%d",
				kafkaMessage.Topic, kafkaMessage.Partition, kafkaMessage.Offset))
			m.handleChatMessage(kafkaMessage.Value)
		}
	}()

	for {
		select {
		case client, ok := <-m.Login:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			m.storeClient(client)
			zap.L().Debug(fmt.Sprintf("用户%s进入聊天通道", client.Uuid))
			if err := client.Conn.WriteMessage(websocket.TextMessage, []byte("已连接到旅行群聊天服务器")); err != nil {
				zap.L().Error(err.Error())
			}

		case client, ok := <-m.Logout:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			m.removeClient(client)
			zap.L().Info(fmt.Sprintf("用户%s断开聊天通道", client.Uuid))

		case <-m.done:
			return
		}
	}
}

// Publish 实现 MessageBroker 接口：写入 Kafka，由消费协程统一处理
func (m *MsgConsumer) Publish(ctx context.Context, msg []byte) error {
	key := []byte(strconv.Itoa(myconfig.GetConfig().KafkaConfig.Partition))
	return m.kafkaClient.SendMessage(ctx, key, msg)
}

// RegisterClient 实现 MessageBroker 接口：注册客户端
func (m *MsgConsumer) RegisterClient(client *UserConn) {
	m.Login <- client
}

// UnregisterClient 实现 MessageBroker 接口：注销客户端
func (m *MsgConsumer) UnregisterClient(client *UserConn) {
	m.Logout <- client
}

// GetClient 获取在线客户端
func (m *MsgConsumer) GetClient(userId string) *UserConn {
	return m.getClient(userId)
}

// Close 关闭服务
func (m *MsgConsumer) Close() {
	close(m.done)
	close(m.Login)
	close(m.Logout)
}

// 确保 MsgConsumer 实现了 MessageBroker 接口
var _ MessageBroker = (*MsgConsumer)(nil)

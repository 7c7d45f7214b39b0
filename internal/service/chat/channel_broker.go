// channel_broker.go
// 核心职责：单机模式下的聊天服务器实现
// 1. 维护在线用户连接 (Channel 模式)
// 2. 消息经 Transmit 通道串行消费：校验、落库、群内广播
// 3. 管理用户登录/登出事件
// 4. 不依赖外部消息队列，适合小规模或开发环境
package chat

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"travel_together_server/internal/dao/mysql/repository"
	myredis "travel_together_server/internal/dao/redis"
	"travel_together_server/pkg/constants"
	"travel_together_server/pkg/errorx"
)

// StandaloneServer 单机模式的消息代理
type StandaloneServer struct {
	groupDispatcher

	// Transmit 消息转发通道，接收入站聊天消息
	Transmit chan []byte
	// Login 客户端登录通道，当有新连接建立时写入此通道
	Login chan *UserConn
	// Logout 客户端登出通道，当连接断开时写入此通道
	Logout chan *UserConn
}

// NewStandaloneServer 创建 Channel 模式的消息代理（依赖注入）
func NewStandaloneServer(
	messageRepo repository.GroupMessageRepository,
	memberRepo repository.GroupMemberRepository,
	cacheService myredis.AsyncCacheService,
) *StandaloneServer {
	s := &StandaloneServer{
		Transmit: make(chan []byte, constants.CHANNEL_SIZE),
		Login:    make(chan *UserConn, constants.CHANNEL_SIZE),
		Logout:   make(chan *UserConn, constants.CHANNEL_SIZE),
	}
	s.messageRepo = messageRepo
	s.memberRepo = memberRepo
	s.cacheService = cacheService
	return s
}

// Start 启动主循环
// 单协程消费三个通道：登录、登出、消息转发
func (s *StandaloneServer) Start() {
	for {
		select {
		case client, ok := <-s.Login:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			s.storeClient(client)
			zap.L().Debug(fmt.Sprintf("用户%s进入聊天通道", client.Uuid))
			if err := client.Conn.WriteMessage(websocket.TextMessage, []byte("已连接到旅行群聊天服务器")); err != nil {
				zap.L().Error(err.Error())
			}

		case client, ok := <-s.Logout:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			s.removeClient(client)
			zap.L().Info(fmt.Sprintf("用户%s断开聊天通道", client.Uuid))

		case data, ok := <-s.Transmit:
			if !ok {
				return
			}
			s.handleChatMessage(data)
		}
	}
}

// Publish 实现 MessageBroker 接口：非阻塞投递到 Transmit 通道
// 通道满时返回错误，调用方自行提示重试
func (s *StandaloneServer) Publish(ctx context.Context, msg []byte) error {
	select {
	case s.Transmit <- msg:
		return nil
	default:
		return errorx.New(errorx.CodeServerBusy, "消息通道已满，请稍后重试")
	}
}

// RegisterClient 实现 MessageBroker 接口：注册客户端
func (s *StandaloneServer) RegisterClient(client *UserConn) {
	s.Login <- client
}

// UnregisterClient 实现 MessageBroker 接口：注销客户端
func (s *StandaloneServer) UnregisterClient(client *UserConn) {
	s.Logout <- client
}

// GetClient 获取在线客户端
func (s *StandaloneServer) GetClient(userId string) *UserConn {
	return s.getClient(userId)
}

// Close 关闭服务通道
func (s *StandaloneServer) Close() {
	close(s.Login)
	close(s.Logout)
	close(s.Transmit)
}

// 确保 StandaloneServer 实现了 MessageBroker 接口
var _ MessageBroker = (*StandaloneServer)(nil)

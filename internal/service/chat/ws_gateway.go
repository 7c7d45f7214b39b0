// ws_gateway.go
// 核心职责：WebSocket 连接生命周期管理
// 1. 建立 WebSocket 连接 (Upgrade)
// 2. 封装 UserConn 对象，管理读写协程 (Read/Write Loop)
// 3. 前端入站消息投递给 Broker，Broker 分发的消息推送回前端
package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"travel_together_server/internal/dto/request"
	"travel_together_server/pkg/constants"
)

// UserConn 单个用户的 WebSocket 连接
type UserConn struct {
	Conn *websocket.Conn
	Uuid string
	// SendBack 推送给前端的消息通道，只由分发器经 closeSend 关闭
	SendBack chan []byte

	broker MessageBroker

	mu     sync.Mutex
	closed bool
}

// trySend 非阻塞投递一条出站消息
// 通道已关闭或已满时返回 false，不会向已关闭通道发送
func (c *UserConn) trySend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.SendBack <- message:
		return true
	default:
		return false
	}
}

// closeSend 关闭回写通道，幂等
// 关闭后 Write 协程的 range 退出，连接资源随之回收
func (c *UserConn) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.SendBack)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Read 读协程：接收前端消息并投递给 Broker
// 连接出错即退出并注销客户端
func (c *UserConn) Read() {
	defer func() {
		c.broker.UnregisterClient(c)
		_ = c.Conn.Close()
	}()
	for {
		_, jsonMessage, err := c.Conn.ReadMessage()
		if err != nil {
			zap.L().Info("ws read closed", zap.String("userId", c.Uuid), zap.Error(err))
			return
		}
		if err := c.broker.Publish(context.Background(), c.stampSender(jsonMessage)); err != nil {
			zap.L().Warn("消息投递失败", zap.String("userId", c.Uuid), zap.Error(err))
			if err := c.Conn.WriteMessage(websocket.TextMessage, []byte("当前发送消息的用户过多，请稍后重试")); err != nil {
				zap.L().Error(err.Error())
				return
			}
		}
	}
}

// stampSender 将入站消息的发送者改写为连接本人，报文内的 send_id 不可信
// 格式不对的报文原样放行，由消费侧丢弃
func (c *UserConn) stampSender(raw []byte) []byte {
	var req request.ChatMessageRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return raw
	}
	req.SendId = c.Uuid
	stamped, err := json.Marshal(req)
	if err != nil {
		return raw
	}
	return stamped
}

// Write 写协程：将 Broker 分发的消息推送给前端
func (c *UserConn) Write() {
	for message := range c.SendBack {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			zap.L().Error(err.Error())
			return
		}
	}
}

// NewClientInit 建立 WebSocket 连接并启动读写协程
// 由 ws handler 在鉴权通过后调用
func NewClientInit(c *gin.Context, clientId string, broker MessageBroker) error {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return err
	}
	client := &UserConn{
		Conn:     conn,
		Uuid:     clientId,
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
		broker:   broker,
	}
	broker.RegisterClient(client)
	go client.Read()
	go client.Write()
	zap.L().Info("ws连接成功", zap.String("userId", clientId))
	return nil
}

// ClientLogout 主动断开某用户的连接
// SendBack 的关闭统一由分发器在消费注销事件时完成，这里只触发注销和断连
func ClientLogout(clientId string, broker MessageBroker) error {
	client := broker.GetClient(clientId)
	if client == nil {
		return nil
	}
	broker.UnregisterClient(client)
	if err := client.Conn.Close(); err != nil {
		zap.L().Error(err.Error())
		return err
	}
	return nil
}

// Package chat 实现群聊实时通道
// broker.go
// 核心职责：定义消息代理接口
// 抽象消息发布和客户端管理，支持 Kafka 和 Channel 两种实现
package chat

import "context"

// MessageBroker 定义消息代理接口
// 支持多种实现：MsgConsumer (Kafka 分布式), StandaloneServer (单机 Channel)
type MessageBroker interface {
	// Publish 发布一条入站聊天消息（ChatMessageRequest 的 JSON）
	// 校验、落库、广播都在消费侧完成
	Publish(ctx context.Context, msg []byte) error
	// RegisterClient 注册客户端连接
	RegisterClient(client *UserConn)
	// UnregisterClient 注销客户端连接
	UnregisterClient(client *UserConn)
	// GetClient 获取指定用户的连接
	GetClient(userId string) *UserConn
	// Start 启动消息消费循环
	Start()
	// Close 关闭代理资源
	Close()
}

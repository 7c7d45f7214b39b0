// server.go
// 核心职责：聊天服务器聚合结构和依赖注入
// 封装 MessageBroker、KafkaClient 等组件，提供统一的生命周期管理
package chat

import (
	"travel_together_server/internal/dao/mysql/repository"
	myredis "travel_together_server/internal/dao/redis"
)

// ChatServer 聊天服务器聚合结构
type ChatServer struct {
	// Broker 消息代理，根据配置是 StandaloneServer 或 MsgConsumer
	Broker MessageBroker

	// KafkaClient Kafka 客户端（仅 Kafka 模式使用）
	KafkaClient *KafkaClient

	mode string
}

// ChatServerConfig 聊天服务器配置
type ChatServerConfig struct {
	Mode         string // "channel" 或 "kafka"
	MessageRepo  repository.GroupMessageRepository
	MemberRepo   repository.GroupMemberRepository
	CacheService myredis.AsyncCacheService
}

// NewChatServer 创建聊天服务器实例
// 根据配置选择 StandaloneServer 或 MsgConsumer
func NewChatServer(cfg ChatServerConfig) *ChatServer {
	cs := &ChatServer{mode: cfg.Mode}

	if cfg.Mode == "kafka" {
		cs.KafkaClient = NewKafkaClient()
		cs.Broker = NewMsgConsumer(cs.KafkaClient, cfg.MessageRepo, cfg.MemberRepo, cfg.CacheService)
	} else {
		// Channel 模式（默认）
		cs.Broker = NewStandaloneServer(cfg.MessageRepo, cfg.MemberRepo, cfg.CacheService)
	}

	return cs
}

// InitKafka 初始化 Kafka 连接（仅 Kafka 模式需要调用）
func (cs *ChatServer) InitKafka() {
	if cs.KafkaClient != nil {
		cs.KafkaClient.KafkaInit()
	}
}

// Start 启动聊天服务器
func (cs *ChatServer) Start() {
	cs.Broker.Start()
}

// Close 关闭聊天服务器
func (cs *ChatServer) Close() {
	cs.Broker.Close()
	if cs.KafkaClient != nil {
		cs.KafkaClient.KafkaClose()
	}
}

// GetBroker 获取消息代理
func (cs *ChatServer) GetBroker() MessageBroker {
	return cs.Broker
}

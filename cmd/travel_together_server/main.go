package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"travel_together_server/internal/config"
	dao "travel_together_server/internal/dao/mysql"
	myredis "travel_together_server/internal/dao/redis"
	"travel_together_server/internal/handler"
	"travel_together_server/internal/https_server"
	"travel_together_server/internal/infrastructure/logger"
	"travel_together_server/internal/infrastructure/sms"
	"travel_together_server/internal/service"
	"travel_together_server/internal/service/chat"
	"travel_together_server/pkg/util/jwt"
	"travel_together_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化 validator 翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("validator 翻译器初始化失败", zap.Error(err))
	}

	// 4. 初始化数据库，获得 Repository 聚合
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 5. 初始化 Redis 缓存
	myredis.Init()
	cacheService := myredis.GetCacheService()
	zap.L().Info("Redis 初始化成功")

	// 6. 初始化 JWT 和雪花 ID
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()
	zap.L().Info("JWT、雪花ID 初始化成功")

	// 7. 初始化 SMS Service
	smsService, err := sms.Init(cacheService)
	if err != nil {
		zap.L().Fatal("SMS Service 初始化失败", zap.Error(err))
	}
	zap.L().Info("SMS Service 初始化成功")

	// 8. 初始化聊天服务器
	// messageMode 决定消息走单机通道还是 Kafka 中转
	chatServer := chat.NewChatServer(chat.ChatServerConfig{
		Mode:         conf.KafkaConfig.MessageMode,
		MessageRepo:  repos.GroupMessage,
		MemberRepo:   repos.GroupMember,
		CacheService: cacheService,
	})
	if conf.KafkaConfig.MessageMode == "kafka" {
		chatServer.InitKafka()
	}
	go chatServer.Start()
	zap.L().Info("聊天服务器初始化成功")

	// 9. 初始化 Service 层（依赖注入）
	service.InitServices(repos, cacheService, smsService, chatServer.GetBroker())
	zap.L().Info("Service 层初始化成功")

	// 10. 初始化 Handler 和 HTTP 服务器
	handlers := handler.NewHandlers(service.Svc, chatServer.GetBroker())
	engine := https_server.Init(handlers)
	zap.L().Info("HTTP 服务器初始化成功")

	// 11. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("服务启动", zap.String("host", host), zap.Int("port", port))

	// 12. 等待退出信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	chatServer.Close()
	zap.L().Info("服务器已关闭")
}

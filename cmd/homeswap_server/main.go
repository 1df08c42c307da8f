package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"homeswap_server/internal/config"
	dao "homeswap_server/internal/dao/mysql"
	"homeswap_server/internal/dao/mysql/repository"
	myredis "homeswap_server/internal/dao/redis"
	"homeswap_server/internal/handler"
	"homeswap_server/internal/https_server"
	"homeswap_server/internal/infrastructure/logger"
	mq "homeswap_server/internal/infrastructure/mq"
	"homeswap_server/internal/infrastructure/scheduler"
	"homeswap_server/internal/service"
	"homeswap_server/internal/service/notify"
	"homeswap_server/pkg/util/jwt"
	"homeswap_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化雪花 ID 生成器
	snowflake.SetMachineID(conf.SnowflakeConfig.MachineID)
	snowflake.Init()
	zap.L().Info("雪花 ID 生成器初始化成功")

	// 4. 初始化数据库
	db, err := dao.InitDB(conf)
	if err != nil {
		zap.L().Fatal("数据库初始化失败", zap.Error(err))
	}
	repos := repository.NewRepositories(db)
	zap.L().Info("数据库初始化成功")

	// 5. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 6. 初始化 JWT
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	zap.L().Info("JWT 初始化成功")

	// 7. 初始化 Kafka（仅 messageMode 为 kafka 时）
	var producer notify.Producer
	var kafkaClient *mq.KafkaClient
	if conf.KafkaConfig.MessageMode == "kafka" {
		kafkaClient = mq.NewKafkaClient()
		kafkaClient.KafkaInit()
		producer = kafkaClient
		zap.L().Info("Kafka 初始化成功")
	}

	// 8. 初始化 Service 层 (依赖注入) 并启动通知分发
	service.InitServices(repos, conf, producer)
	service.Svc.Notify.Start()
	zap.L().Info("Service 层初始化成功")

	// 9. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}

	// 10. 启动生命周期清扫器
	sweeper := scheduler.NewSweepScheduler(service.Svc.Sweeper,
		scheduler.NewDefaultLocker(), conf.SweepIntervalMinutes)
	sweeper.Start()

	// 11. 初始化 HTTP 服务器
	handlers := handler.NewHandlers(service.Svc)
	engine := https_server.Init(handlers, repos)
	zap.L().Info("HTTP 服务器初始化成功")

	// 12. 启动服务
	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit
	zap.L().Info("关闭服务器...")

	sweeper.Stop()
	service.Svc.Notify.Stop()
	if kafkaClient != nil {
		kafkaClient.KafkaClose()
	}
	myredis.Close()

	zap.L().Info("服务器已关闭")
}

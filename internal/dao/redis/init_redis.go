// Package redis 提供 Redis 缓存操作的封装
// 本文件仅包含 Redis 连接初始化逻辑
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package redis

import (
	"strconv"

	"homeswap_server/internal/config"

	"github.com/redis/go-redis/v9"
)

// redisClient 全局 Redis 客户端实例（包内可见）
var redisClient *redis.Client

// Init 初始化 Redis 连接
// 从配置文件读取连接参数并创建客户端实例
func Init() {
	conf := config.GetConfig()
	host := conf.RedisConfig.Host
	port := conf.RedisConfig.Port
	password := conf.RedisConfig.Password
	db := conf.Db

	addr := host + ":" + strconv.Itoa(port)

	redisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		// 连接池配置
		PoolSize:     50,
		MinIdleConns: 10,
	})
}

// Close 关闭 Redis 连接
func Close() {
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

// Store 无状态句柄，把包级操作以方法形式暴露
// Service 层按自定义小接口接收，便于单元测试替换
type Store struct{}

// NewStore 创建 Store 实例
func NewStore() *Store {
	return &Store{}
}

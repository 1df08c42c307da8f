// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName string `toml:"appName"` // 应用名称，用于日志标识等
	Host    string `toml:"host"`    // 服务器监听地址，如 "0.0.0.0"
	Port    int    `toml:"port"`    // 服务器监听端口，如 8000
	Mode    string `toml:"mode"`    // 运行模式：dev / release
}

// MysqlConfig MySQL 数据库连接配置
type MysqlConfig struct {
	Host         string `toml:"host"`         // MySQL 服务器地址
	Port         int    `toml:"port"`         // MySQL 端口，默认 3306
	User         string `toml:"user"`         // 数据库用户名
	Password     string `toml:"password"`     // 数据库密码
	DatabaseName string `toml:"databaseName"` // 数据库名称
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Host     string `toml:"host"`     // Redis 服务器地址
	Port     int    `toml:"port"`     // Redis 端口，默认 6379
	Password string `toml:"password"` // Redis 密码，无密码留空
	Db       int    `toml:"db"`       // Redis 数据库编号，默认 0
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // 日志级别：debug, info, warn, error
}

// KafkaConfig Kafka 消息队列配置
// messageMode 为 "kafka" 时通知事件写入 Kafka；为 "channel" 时仅走进程内分发
type KafkaConfig struct {
	MessageMode string        `toml:"messageMode"` // 消息模式："channel" 或 "kafka"
	HostPort    string        `toml:"hostPort"`    // Kafka 服务器地址，如 "localhost:9092"
	NotifyTopic string        `toml:"notifyTopic"` // 通知事件主题
	Timeout     time.Duration `toml:"timeout"`     // 超时时间（秒）
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret             string `toml:"secret"`             // JWT 签名密钥，建议 32 字符以上
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // Access Token 有效期（分钟）
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // Refresh Token 有效期（小时）
}

// SecurityConfig 敏感数据加密配置
type SecurityConfig struct {
	PhoneKey string `toml:"phoneKey"` // 电话号码落库加密密钥
}

// SnowflakeConfig 雪花算法配置
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 雪花算法节点 ID，范围 0-1023
}

// MatchingConfig 匹配引擎与生命周期清扫配置
type MatchingConfig struct {
	ChainAcceptTtlHours      int `toml:"chainAcceptTtlHours"`      // 链确认截止时长（小时），默认 24
	ChainExpireSweepLimit    int `toml:"chainExpireSweepLimit"`    // 单次清扫处理的过期链上限，默认 50
	InterestRequestTtlHours  int `toml:"interestRequestTtlHours"`  // 意向请求有效时长（小时），默认 48
	InterestExpireSweepLimit int `toml:"interestExpireSweepLimit"` // 单次清扫处理的过期意向上限，默认 100
	ListingTtlDays           int `toml:"listingTtlDays"`           // 房源挂牌有效天数，默认 30
	ListingExpireSweepLimit  int `toml:"listingExpireSweepLimit"`  // 单次清扫处理的过期房源上限，默认 100
	SweepIntervalMinutes     int `toml:"sweepIntervalMinutes"`     // 定时清扫间隔（分钟），默认 10
	RecommendationLimit      int `toml:"recommendationLimit"`      // 返回推荐条数上限，默认 8
	RankPenaltyWeight        int `toml:"rankPenaltyWeight"`        // 信誉扣分对排名分的权重，0 为关闭
}

// Normalize 补齐未配置项的默认值
func (m *MatchingConfig) Normalize() {
	if m.ChainAcceptTtlHours <= 0 {
		m.ChainAcceptTtlHours = 24
	}
	if m.ChainExpireSweepLimit <= 0 {
		m.ChainExpireSweepLimit = 50
	}
	if m.InterestRequestTtlHours <= 0 {
		m.InterestRequestTtlHours = 48
	}
	if m.InterestExpireSweepLimit <= 0 {
		m.InterestExpireSweepLimit = 100
	}
	if m.ListingTtlDays <= 0 {
		m.ListingTtlDays = 30
	}
	if m.ListingExpireSweepLimit <= 0 {
		m.ListingExpireSweepLimit = 100
	}
	if m.SweepIntervalMinutes <= 0 {
		m.SweepIntervalMinutes = 10
	}
	if m.RecommendationLimit <= 0 {
		m.RecommendationLimit = 8
	}
	if m.RankPenaltyWeight < 0 {
		m.RankPenaltyWeight = 0
	}
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig      `toml:"mainConfig"`
	MysqlConfig     `toml:"mysqlConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	JWTConfig       `toml:"jwtConfig"`
	SecurityConfig  `toml:"securityConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
	MatchingConfig  `toml:"matchingConfig"`
}

// config 全局配置单例，延迟加载
var config *Config

// LoadConfig 从多个候选路径加载配置文件
// 按顺序尝试加载，找到第一个可用的配置文件即停止
func LoadConfig() error {
	if config == nil {
		config = new(Config)
	}
	// 候选配置文件路径（优先加载本地配置）
	paths := []string{
		"configs/config_local.toml",
		"configs/config.toml",
		"../../configs/config_local.toml",
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			config.MatchingConfig.Normalize()
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig 获取全局配置实例（单例模式）
// 首次调用时会自动加载配置文件
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig() // 忽略加载错误，使用默认值
		config.MatchingConfig.Normalize()
	}
	return config
}

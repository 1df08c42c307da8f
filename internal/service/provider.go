// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"homeswap_server/internal/config"
	"homeswap_server/internal/dao/mysql/repository"
	myredis "homeswap_server/internal/dao/redis"
	"homeswap_server/internal/service/advisor"
	"homeswap_server/internal/service/auth"
	"homeswap_server/internal/service/listing"
	"homeswap_server/internal/service/matching"
	"homeswap_server/internal/service/notify"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过 service.Svc 访问各个 Service
type Services struct {
	Auth     AuthService       // 认证 Service
	Listing  ListingService    // 房源 Service
	Matching MatchingService   // 匹配引擎 Service
	Notify   *notify.Service   // 通知 Service（具体类型，main 需要 Start/Stop）
	Sweeper  *matching.Service // 匹配引擎具体类型，定时清扫使用
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合实例与配置
//  2. 创建通知 Service 并作为事件出口注入匹配引擎
//  3. 返回 Services 聚合
//
// repos: Repository 层聚合实例
// conf: 应用配置
// producer: Kafka 生产者，messageMode 非 kafka 时传 nil
func NewServices(repos *repository.Repositories, conf *config.Config, producer notify.Producer) *Services {
	notifySvc := notify.NewService(repos, producer, conf.MessageMode == "kafka")
	advisorSvc := advisor.NewAdvisorService()
	matchingSvc := matching.NewMatchingService(repos, notifySvc, advisorSvc, myredis.NewStore(), conf)

	return &Services{
		Auth:     auth.NewAuthService(repos, conf.PhoneKey, conf.JWTConfig.RefreshTokenExpiry),
		Listing:  listing.NewListingService(repos, conf.ListingTtlDays),
		Matching: matchingSvc,
		Notify:   notifySvc,
		Sweeper:  matchingSvc,
	}
}

// Svc 全局 Services 实例
// Handler 层通过 service.Svc.Matching.RunForUser() 等方式调用
var Svc *Services

// InitServices 初始化全局 Services 实例
// 应在 main.go 中调用，在 Repository 初始化之后
func InitServices(repos *repository.Repositories, conf *config.Config, producer notify.Producer) {
	Svc = NewServices(repos, conf, producer)
}

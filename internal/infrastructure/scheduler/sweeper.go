// Package scheduler 提供后台定时任务
// 本文件实现生命周期清扫器：按固定间隔触发过期房源、过期链和过期意向的批量处理
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	myredis "homeswap_server/internal/dao/redis"
	"homeswap_server/pkg/constants"
)

// sweepLockKey 清扫任务的分布式锁键
// 多实例部署时同一时刻只有一个实例执行清扫
const sweepLockKey = "sweep:lock"

// Sweeper 生命周期清扫接口，由匹配引擎实现
type Sweeper interface {
	// ExpireListings 下架过期房源
	ExpireListings(ctx context.Context) (int, error)
	// ExpirePendingChains 断开过期待确认链
	ExpirePendingChains(ctx context.Context) (int, error)
	// ExpireInterests 关闭过期意向
	ExpireInterests(ctx context.Context) (int, error)
}

// Locker 清扫互斥锁接口，由 Redis Store 实现
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// SweepScheduler 定时清扫器
type SweepScheduler struct {
	sweeper  Sweeper
	locker   Locker
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewSweepScheduler 创建清扫器
// locker 传 nil 表示单实例部署，跳过分布式互斥
func NewSweepScheduler(sweeper Sweeper, locker Locker, intervalMinutes int) *SweepScheduler {
	return &SweepScheduler{
		sweeper:  sweeper,
		locker:   locker,
		interval: time.Duration(intervalMinutes) * time.Minute,
		done:     make(chan struct{}),
	}
}

// NewDefaultLocker 返回基于 Redis 的清扫互斥锁
func NewDefaultLocker() Locker {
	return myredis.NewStore()
}

// Start 启动清扫循环
// 启动时立即清扫一次，之后按间隔触发
func (s *SweepScheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.sweepOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweepOnce(ctx)
			}
		}
	}()
	zap.L().Info("清扫器已启动", zap.Duration("interval", s.interval))
}

// Stop 停止清扫循环，等待当前一轮结束
func (s *SweepScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	zap.L().Info("清扫器已停止")
}

// sweepOnce 执行一轮清扫
// 拿不到锁说明其他实例正在清扫，直接跳过本轮
func (s *SweepScheduler) sweepOnce(ctx context.Context) {
	if s.locker != nil {
		locked, err := s.locker.TryLock(ctx, sweepLockKey,
			time.Duration(constants.SWEEP_LOCK_TIMEOUT_MINUTES)*time.Minute)
		if err != nil {
			zap.L().Warn("获取清扫锁失败", zap.Error(err))
			return
		}
		if !locked {
			zap.L().Debug("其他实例正在清扫，跳过本轮")
			return
		}
		defer func() {
			if err := s.locker.Unlock(ctx, sweepLockKey); err != nil {
				zap.L().Warn("释放清扫锁失败", zap.Error(err))
			}
		}()
	}

	start := time.Now()
	listings, err := s.sweeper.ExpireListings(ctx)
	if err != nil {
		zap.L().Error("房源清扫失败", zap.Error(err))
	}
	chains, err := s.sweeper.ExpirePendingChains(ctx)
	if err != nil {
		zap.L().Error("链清扫失败", zap.Error(err))
	}
	interests, err := s.sweeper.ExpireInterests(ctx)
	if err != nil {
		zap.L().Error("意向清扫失败", zap.Error(err))
	}

	if listings+chains+interests > 0 {
		zap.L().Info("清扫完成",
			zap.Int("listings", listings),
			zap.Int("chains", chains),
			zap.Int("interests", interests),
			zap.Duration("cost", time.Since(start)))
	}
}

// Package notify 实现站内通知：异步落库，按配置同步到 Kafka
// 通知投递失败只记日志，不影响触发它的业务事务
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"homeswap_server/internal/dao/mysql/repository"
	"homeswap_server/internal/dto/respond"
	"homeswap_server/internal/model"
	"homeswap_server/pkg/constants"
	"homeswap_server/pkg/errorx"
	"homeswap_server/pkg/util/snowflake"
)

// Event 一条待投递的通知事件
type Event struct {
	UserId  string         `json:"user_id"`
	ChainId string         `json:"chain_id,omitempty"`
	Type    string         `json:"type"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Sink 通知接收端，业务层只依赖这个接口
type Sink interface {
	Publish(event Event)
}

// Producer 消息队列生产者（Kafka），可为 nil
type Producer interface {
	SendMessage(ctx context.Context, key, value []byte) error
}

// Service 通知服务：Worker Pool 异步消费事件队列
type Service struct {
	repos    *repository.Repositories
	producer Producer // 为 nil 或 useKafka=false 时只落库
	useKafka bool

	queue chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

// NewService 创建通知服务
// producer 传 nil 表示纯进程内模式
func NewService(repos *repository.Repositories, producer Producer, useKafka bool) *Service {
	return &Service{
		repos:    repos,
		producer: producer,
		useKafka: useKafka && producer != nil,
		queue:    make(chan Event, constants.NOTIFY_QUEUE_SIZE),
	}
}

// Start 启动 Worker Pool
func (s *Service) Start() {
	for i := 0; i < constants.NOTIFY_WORKER_COUNT; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

// Stop 关闭队列并等待在途事件处理完
func (s *Service) Stop() {
	s.once.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

// Publish 投递通知事件
// 队列满时丢弃并记日志，通知属尽力而为
func (s *Service) Publish(event Event) {
	select {
	case s.queue <- event:
	default:
		zap.L().Warn("notify queue full, event dropped",
			zap.String("type", event.Type), zap.String("user_id", event.UserId))
	}
}

// worker 消费事件：落库，按配置转发 Kafka
func (s *Service) worker() {
	defer s.wg.Done()
	for event := range s.queue {
		s.deliver(event)
	}
}

func (s *Service) deliver(event Event) {
	n := &model.Notification{
		NotifyId: snowflake.GenerateID(),
		UserId:   event.UserId,
		ChainId:  event.ChainId,
		Type:     event.Type,
		Title:    event.Title,
		Message:  event.Message,
		Payload:  event.Payload,
	}
	if err := s.repos.Notification.Create(n); err != nil {
		zap.L().Error("persist notification failed",
			zap.Error(err), zap.String("type", event.Type), zap.String("user_id", event.UserId))
		return
	}

	if !s.useKafka {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("marshal notification event failed", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.producer.SendMessage(ctx, []byte(event.UserId), value); err != nil {
		zap.L().Error("publish notification to kafka failed",
			zap.Error(err), zap.String("type", event.Type))
	}
}

// ListByUser 查询用户的通知列表，新的在前
func (s *Service) ListByUser(userId string, limit int) ([]respond.NotificationRespond, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := s.repos.Notification.FindByUserId(userId, limit)
	if err != nil {
		zap.L().Error("find notifications error", zap.Error(err), zap.String("user_id", userId))
		return nil, errorx.ErrServerBusy
	}
	list := make([]respond.NotificationRespond, 0, len(rows))
	for _, n := range rows {
		item := respond.NotificationRespond{
			NotifyId:  n.NotifyId,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			ChainId:   n.ChainId,
			Payload:   n.Payload,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
		if n.ReadAt.Valid {
			item.ReadAt = n.ReadAt.Time.Format(time.RFC3339)
		}
		list = append(list, item)
	}
	return list, nil
}

// MarkRead 标记通知已读，重复标记幂等
func (s *Service) MarkRead(userId string, notifyId int64) error {
	affected, err := s.repos.Notification.MarkRead(userId, notifyId, time.Now())
	if err != nil {
		zap.L().Error("mark notification read error",
			zap.Error(err), zap.String("user_id", userId), zap.Int64("notify_id", notifyId))
		return errorx.ErrServerBusy
	}
	_ = affected // 0 行表示已读过或不属于该用户，按幂等处理
	return nil
}

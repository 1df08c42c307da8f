// Package mq 封装 Kafka 基础设施
// 1. 封装 Kafka 底层连接 (Writer)
// 2. 提供消息写入接口 (SendMessage)
// 3. 负责 Kafka 资源的初始化和关闭
// 纯技术组件，不包含业务逻辑
package mq

import (
	"context"
	"time"

	myconfig "homeswap_server/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaClient Kafka 客户端结构
type KafkaClient struct {
	Producer *kafka.Writer // 生产者：负责写入通知事件
}

// NewKafkaClient 创建 Kafka 客户端实例
func NewKafkaClient() *KafkaClient {
	return &KafkaClient{}
}

// KafkaInit 初始化 Kafka 客户端
func (k *KafkaClient) KafkaInit() {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	k.Producer = &kafka.Writer{
		Addr:                   kafka.TCP(kafkaConfig.HostPort),
		Topic:                  kafkaConfig.NotifyTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           kafkaConfig.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
}

// KafkaClose 关闭 Kafka 客户端
func (k *KafkaClient) KafkaClose() {
	if k.Producer == nil {
		return
	}
	if err := k.Producer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
}

// SendMessage 向 Kafka 发送消息
func (k *KafkaClient) SendMessage(ctx context.Context, key, value []byte) error {
	return k.Producer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}

package constants

const (
	NOTIFY_QUEUE_SIZE          = 1000 // 通知分发队列大小
	NOTIFY_WORKER_COUNT        = 8    // 通知分发 Worker 数量
	REDIS_RECS_TIMEOUT_MINUTES = 10   // 推荐结果缓存时间（分钟）
	SWEEP_LOCK_TIMEOUT_MINUTES = 5    // 清扫任务分布式锁超时（分钟）
	RECIPROCITY_BONUS          = 15   // 双向边的排名加分
	MAX_CYCLE_LEN              = 4    // 环形链最大长度
	MAX_TOTAL_SCORE            = 100  // 总分上限
)

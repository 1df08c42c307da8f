// Package match_scenario_enum 定义匹配结果场景枚举
package match_scenario_enum

const (
	ONE_TO_ONE  = "ONE_TO_ONE"  // 找到双向链（直接或环形）
	ONE_TO_MANY = "ONE_TO_MANY" // 仅有单向推荐，未成链
	INDEPENDENT = "INDEPENDENT" // 无任何兼容房源
)

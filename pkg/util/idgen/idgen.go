// Package idgen 提供带类型前缀的实体 ID 生成
// 格式：前缀字母 + 13位时间戳随机字符串，如 "L240101aB3dE9xYz12"
package idgen

import (
	"homeswap_server/pkg/util/random"
)

const randomLen = 13

// NewUserId 生成用户 ID（U 前缀）
func NewUserId() string {
	return "U" + random.GetNowAndLenRandomString(randomLen)
}

// NewListingId 生成房源 ID（L 前缀）
func NewListingId() string {
	return "L" + random.GetNowAndLenRandomString(randomLen)
}

// NewChainId 生成交换链 ID（C 前缀）
func NewChainId() string {
	return "C" + random.GetNowAndLenRandomString(randomLen)
}

// NewInterestId 生成意向请求 ID（I 前缀）
func NewInterestId() string {
	return "I" + random.GetNowAndLenRandomString(randomLen)
}

// NewUnlockId 生成联系方式解锁 ID（K 前缀）
func NewUnlockId() string {
	return "K" + random.GetNowAndLenRandomString(randomLen)
}

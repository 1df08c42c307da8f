// Package interest_status_enum 定义房源意向请求状态枚举
package interest_status_enum

const (
	REQUESTED        = "REQUESTED"        // 已发起，等待房源方响应
	CONTACT_APPROVED = "CONTACT_APPROVED" // 房源方已同意交换联系方式
	CONFIRMED_RENTER = "CONFIRMED_RENTER" // 房源方已确认成交（终态）
	DECLINED         = "DECLINED"         // 房源方已拒绝（终态）
	EXPIRED          = "EXPIRED"          // 超时未响应（终态）
	RELEASED         = "RELEASED"         // 因他人成交被释放（终态）
)

// Open 返回所有"进行中"状态
// 进行中的意向会被过期清扫和成交释放逻辑处理
func Open() []string {
	return []string{REQUESTED, CONTACT_APPROVED}
}

// IsOpen 检查状态是否为进行中
func IsOpen(status string) bool {
	return status == REQUESTED || status == CONTACT_APPROVED
}

package repository

import "time"

// MemberListFilter 查询会员列表的过滤条件
type MemberListFilter struct {
	Page      int
	PageSize  int
	Search    string // 姓名/手机号/会员编号模糊匹配
	LevelID   uint
	Status    string
	WithLevel bool
}

// ProductListFilter 查询产品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	Status       string
	OnlyLowStock bool
	WithCategory bool
}

// ServiceItemListFilter 查询服务项目列表的过滤条件
type ServiceItemListFilter struct {
	Page     int
	PageSize int
	Category string
	Search   string
	Status   string
}

// StaffListFilter 查询员工列表的过滤条件
type StaffListFilter struct {
	Page     int
	PageSize int
	Role     string
	Status   string
	Search   string
}

// StockLogListFilter 查询库存流水的过滤条件
type StockLogListFilter struct {
	Page        int
	PageSize    int
	ProductID   uint
	Direction   string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ConsumeRecordListFilter 查询消费记录的过滤条件
type ConsumeRecordListFilter struct {
	Page        int
	PageSize    int
	MemberID    uint
	OperatorID  uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// RechargeRecordListFilter 查询充值记录的过滤条件
type RechargeRecordListFilter struct {
	Page        int
	PageSize    int
	MemberID    uint
	OperatorID  uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// AppointmentListFilter 查询预约列表的过滤条件
type AppointmentListFilter struct {
	Page     int
	PageSize int
	MemberID uint
	StaffID  uint
	Status   string
	Date     *time.Time
}

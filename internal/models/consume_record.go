package models

import "time"

// ConsumeRecord 消费记录表（只追加，不修改）
type ConsumeRecord struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                         // 主键
	RecordNo       string    `gorm:"uniqueIndex;not null" json:"record_no"`                        // 消费单号
	MemberID       uint      `gorm:"not null;index" json:"member_id"`                              // 会员ID
	TotalAmount    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 折后总金额
	DiscountAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 折扣优惠金额
	ActualAmount   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"actual_amount"`   // 实收金额
	BalancePaid    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"balance_paid"`    // 本金余额支付金额
	GiftPaid       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"gift_paid"`       // 赠送余额支付金额
	CashPaid       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"cash_paid"`       // 其他方式支付金额
	PaymentMethod  string    `gorm:"type:varchar(20);not null" json:"payment_method"`              // 支付方式
	PointsEarned   int64     `gorm:"not null;default:0" json:"points_earned"`                      // 本次获得积分
	OperatorID     uint      `gorm:"index" json:"operator_id"`                                     // 操作人ID
	Status         string    `gorm:"type:varchar(20);default:'success'" json:"status"`             // 状态
	Remark         string    `gorm:"default:''" json:"remark"`                                     // 备注
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                                      // 创建时间

	// 关联
	Member *Member       `gorm:"foreignKey:MemberID" json:"member,omitempty"` // 会员信息
	Items  []ConsumeItem `gorm:"foreignKey:RecordID" json:"items,omitempty"`  // 消费明细
}

// TableName 指定表名
func (ConsumeRecord) TableName() string {
	return "consume_records"
}

// ConsumeItem 消费明细表（下单时快照价格，不随目录变动）
type ConsumeItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                          // 主键
	RecordID  uint      `gorm:"not null;index" json:"record_id"`               // 消费记录ID
	ItemType  string    `gorm:"type:varchar(10);not null" json:"item_type"`    // 类型（product/service）
	ItemID    uint      `gorm:"not null" json:"item_id"`                       // 产品/服务ID
	ItemName  string    `gorm:"not null" json:"item_name"`                     // 名称快照
	UnitPrice Money     `gorm:"type:decimal(20,2);not null" json:"unit_price"` // 单价快照
	Quantity  int       `gorm:"not null" json:"quantity"`                      // 数量
	Subtotal  Money     `gorm:"type:decimal(20,2);not null" json:"subtotal"`   // 折后小计
	CreatedAt time.Time `json:"created_at"`                                    // 创建时间
}

// TableName 指定表名
func (ConsumeItem) TableName() string {
	return "consume_items"
}

package models

import "time"

// RechargeRecord 充值记录表（只追加，不修改）
type RechargeRecord struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                     // 主键
	RecordNo      string    `gorm:"uniqueIndex;not null" json:"record_no"`                    // 充值单号
	MemberID      uint      `gorm:"not null;index" json:"member_id"`                          // 会员ID
	Amount        Money     `gorm:"type:decimal(20,2);not null" json:"amount"`                // 充值金额
	GiftAmount    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"gift_amount"` // 赠送金额
	PaymentMethod string    `gorm:"type:varchar(20);not null" json:"payment_method"`          // 支付方式
	PackageID     *uint     `gorm:"index" json:"package_id"`                                  // 充值套餐ID
	OperatorID    uint      `gorm:"index" json:"operator_id"`                                 // 操作人ID
	Status        string    `gorm:"type:varchar(20);default:'success'" json:"status"`         // 状态
	Remark        string    `gorm:"default:''" json:"remark"`                                 // 备注
	CodeURL       string    `gorm:"-" json:"code_url,omitempty"`                              // 微信收款二维码链接（仅结构，不写入数据库）
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                  // 创建时间

	// 关联
	Member  *Member          `gorm:"foreignKey:MemberID" json:"member,omitempty"`   // 会员信息
	Package *RechargePackage `gorm:"foreignKey:PackageID" json:"package,omitempty"` // 套餐信息
}

// TableName 指定表名
func (RechargeRecord) TableName() string {
	return "recharge_records"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// RechargePackage 充值套餐表
type RechargePackage struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                     // 主键
	Name       string         `gorm:"not null" json:"name"`                                     // 套餐名称
	Amount     Money          `gorm:"type:decimal(20,2);not null" json:"amount"`                // 充值金额
	GiftAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"gift_amount"` // 赠送金额
	Status     string         `gorm:"type:varchar(20);default:'active';index" json:"status"`    // 状态（active/inactive）
	CreatedAt  time.Time      `json:"created_at"`                                               // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (RechargePackage) TableName() string {
	return "recharge_packages"
}

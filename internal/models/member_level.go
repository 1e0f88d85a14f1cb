package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberLevel 会员等级表
type MemberLevel struct {
	ID            uint            `gorm:"primarykey" json:"id"`                                        // 主键
	Name          string          `gorm:"uniqueIndex;not null" json:"name"`                            // 等级名称
	LevelOrder    int             `gorm:"uniqueIndex;not null" json:"level_order"`                     // 等级序号（越大等级越高）
	Discount      decimal.Decimal `gorm:"type:decimal(10,4);not null;default:1" json:"discount"`       // 折扣率（0~1]
	PointsRate    decimal.Decimal `gorm:"type:decimal(10,4);not null;default:1" json:"points_rate"`    // 积分倍率
	UpgradeAmount Money           `gorm:"type:decimal(20,2);not null;default:0" json:"upgrade_amount"` // 升级所需累计充值
	Description   string          `gorm:"default:''" json:"description"`                               // 等级说明
	CreatedAt     time.Time       `json:"created_at"`                                                  // 创建时间
	UpdatedAt     time.Time       `json:"updated_at"`                                                  // 更新时间
}

// TableName 指定表名
func (MemberLevel) TableName() string {
	return "member_levels"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 产品表
type Product struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                   // 主键
	CategoryID uint           `gorm:"index" json:"category_id"`                               // 分类ID
	Name       string         `gorm:"not null;index" json:"name"`                             // 产品名称
	Price      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`     // 售价
	Cost       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cost"`      // 成本价
	Stock      int            `gorm:"not null;default:0" json:"stock"`                        // 库存数量
	MinStock   int            `gorm:"not null;default:0" json:"min_stock"`                    // 库存预警阈值
	Unit       string         `gorm:"default:''" json:"unit"`                                 // 单位
	Status     string         `gorm:"type:varchar(20);default:'on_sale';index" json:"status"` // 状态（on_sale/off_sale）
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                             // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间

	// 关联
	Category *ProductCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

package models

import "time"

// StockLog 库存流水表（只追加，不修改）
type StockLog struct {
	ID               uint      `gorm:"primarykey" json:"id"`                             // 主键
	ProductID        uint      `gorm:"not null;index" json:"product_id"`                 // 产品ID
	Direction        string    `gorm:"type:varchar(10);not null;index" json:"direction"` // 方向（in/out）
	Quantity         int       `gorm:"not null" json:"quantity"`                         // 变动数量
	BeforeStock      int       `gorm:"not null" json:"before_stock"`                     // 变动前库存
	AfterStock       int       `gorm:"not null" json:"after_stock"`                      // 变动后库存
	OperatorID       uint      `gorm:"index" json:"operator_id"`                         // 操作人ID
	RelatedConsumeID *uint     `gorm:"index" json:"related_consume_id"`                  // 关联消费记录ID
	Reason           string    `gorm:"default:''" json:"reason"`                         // 变动原因
	Reference        string    `gorm:"uniqueIndex;not null" json:"reference"`            // 流水参考号
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                          // 创建时间

	// 关联
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 产品信息
}

// TableName 指定表名
func (StockLog) TableName() string {
	return "stock_logs"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceItem 服务项目表
type ServiceItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                  // 主键
	Name      string         `gorm:"not null;index" json:"name"`                            // 服务名称
	Category  string         `gorm:"default:''" json:"category"`                            // 服务分类
	Price     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`    // 标准价格
	Duration  int            `gorm:"not null;default:0" json:"duration"`                    // 服务时长（分钟）
	Status    string         `gorm:"type:varchar(20);default:'active';index" json:"status"` // 状态（active/inactive）
	CreatedAt time.Time      `json:"created_at"`                                            // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                            // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间
}

// TableName 指定表名
func (ServiceItem) TableName() string {
	return "service_items"
}

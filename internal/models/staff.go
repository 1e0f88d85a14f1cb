package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff 员工表
type Staff struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                  // 主键
	Name      string         `gorm:"not null" json:"name"`                                  // 姓名
	Phone     string         `gorm:"uniqueIndex;not null" json:"phone"`                     // 手机号
	Role      string         `gorm:"type:varchar(20);default:'technician'" json:"role"`     // 岗位（technician/cashier/manager）
	Status    string         `gorm:"type:varchar(20);default:'active';index" json:"status"` // 状态（active/inactive）
	CreatedAt time.Time      `json:"created_at"`                                            // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                            // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间
}

// TableName 指定表名
func (Staff) TableName() string {
	return "staffs"
}

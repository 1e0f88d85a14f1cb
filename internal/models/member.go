package models

import (
	"time"

	"gorm.io/gorm"
)

// Member 会员表
type Member struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                        // 主键
	MemberNo      string         `gorm:"uniqueIndex;not null" json:"member_no"`                       // 会员编号（M000001）
	Name          string         `gorm:"not null" json:"name"`                                        // 姓名
	Phone         string         `gorm:"uniqueIndex;not null" json:"phone"`                           // 手机号
	Gender        string         `gorm:"type:varchar(10);default:'unknown'" json:"gender"`            // 性别
	Birthday      *time.Time     `json:"birthday"`                                                    // 生日
	Balance       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"balance"`        // 本金余额
	GiftBalance   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"gift_balance"`   // 赠送余额
	Points        int64          `gorm:"not null;default:0" json:"points"`                            // 积分
	TotalRecharge Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_recharge"` // 累计充值
	TotalConsume  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_consume"`  // 累计消费
	LevelID       uint           `gorm:"index" json:"level_id"`                                       // 会员等级ID
	Status        string         `gorm:"type:varchar(20);default:'active';index" json:"status"`       // 状态（active/frozen/deleted）
	Remark        string         `gorm:"default:''" json:"remark"`                                    // 备注
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	Level *MemberLevel `gorm:"foreignKey:LevelID" json:"level,omitempty"` // 等级信息
}

// TableName 指定表名
func (Member) TableName() string {
	return "members"
}

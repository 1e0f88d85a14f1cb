package models

import "time"

// Appointment 预约表
type Appointment struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                   // 主键
	MemberID        uint      `gorm:"not null;index" json:"member_id"`                        // 会员ID
	ServiceID       uint      `gorm:"not null;index" json:"service_id"`                       // 服务项目ID
	StaffID         *uint     `gorm:"index" json:"staff_id"`                                  // 技师ID（可不指定）
	AppointmentDate time.Time `gorm:"type:date;not null;index" json:"appointment_date"`       // 预约日期
	StartTime       string    `gorm:"type:varchar(5);not null" json:"start_time"`             // 开始时间（HH:MM）
	EndTime         string    `gorm:"type:varchar(5);not null" json:"end_time"`               // 结束时间（HH:MM）
	Status          string    `gorm:"type:varchar(20);default:'pending';index" json:"status"` // 状态
	CancelReason    string    `gorm:"default:''" json:"cancel_reason"`                        // 取消原因
	Remark          string    `gorm:"default:''" json:"remark"`                               // 备注
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                             // 更新时间

	// 关联
	Member  *Member      `gorm:"foreignKey:MemberID" json:"member,omitempty"`   // 会员信息
	Service *ServiceItem `gorm:"foreignKey:ServiceID" json:"service,omitempty"` // 服务信息
	Staff   *Staff       `gorm:"foreignKey:StaffID" json:"staff,omitempty"`     // 技师信息
}

// TableName 指定表名
func (Appointment) TableName() string {
	return "appointments"
}

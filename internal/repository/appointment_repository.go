package repository

import (
	"errors"
	"time"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"

	"gorm.io/gorm"
)

// AppointmentRepository 预约数据访问接口
type AppointmentRepository interface {
	Create(appointment *models.Appointment) error
	GetByID(id uint) (*models.Appointment, error)
	List(filter AppointmentListFilter) ([]models.Appointment, int64, error)
	FindBlockingByStaffAndDate(staffID uint, date time.Time, excludeID uint) ([]models.Appointment, error)
	FindExpiredPending(before time.Time, statuses []string) ([]models.Appointment, error)
	Update(appointment *models.Appointment) error
	UpdateFields(id uint, updates map[string]interface{}) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormAppointmentRepository
}

// GormAppointmentRepository GORM 预约仓储实现
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository 创建预约仓库
func NewAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAppointmentRepository) WithTx(tx *gorm.DB) *GormAppointmentRepository {
	if tx == nil {
		return r
	}
	return &GormAppointmentRepository{db: tx}
}

// Transaction 在单个事务中执行
func (r *GormAppointmentRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 创建预约
func (r *GormAppointmentRepository) Create(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

// GetByID 根据 ID 获取预约
func (r *GormAppointmentRepository) GetByID(id uint) (*models.Appointment, error) {
	if id == 0 {
		return nil, nil
	}
	var appointment models.Appointment
	if err := r.db.Preload("Member").Preload("Service").Preload("Staff").
		First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// List 分页查询预约
func (r *GormAppointmentRepository) List(filter AppointmentListFilter) ([]models.Appointment, int64, error) {
	query := r.db.Model(&models.Appointment{})
	if filter.MemberID != 0 {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.StaffID != 0 {
		query = query.Where("staff_id = ?", filter.StaffID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != nil {
		dayStart := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		query = query.Where("appointment_date >= ? AND appointment_date < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var appointments []models.Appointment
	if err := query.Preload("Member").Preload("Service").Preload("Staff").
		Order("appointment_date desc, start_time asc").
		Find(&appointments).Error; err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

// FindBlockingByStaffAndDate 获取指定技师在指定日期的占位预约（pending/confirmed），
// 排除 excludeID 本身，供时段冲突判定使用。
func (r *GormAppointmentRepository) FindBlockingByStaffAndDate(staffID uint, date time.Time, excludeID uint) ([]models.Appointment, error) {
	if staffID == 0 {
		return nil, nil
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	query := r.db.Model(&models.Appointment{}).
		Where("staff_id = ?", staffID).
		Where("appointment_date >= ? AND appointment_date < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Where("status IN ?", []string{constants.AppointmentStatusPending, constants.AppointmentStatusConfirmed})
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var appointments []models.Appointment
	if err := query.Order("start_time asc").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindExpiredPending 获取结束时间早于 before 仍停留在给定状态的预约，供爽约扫描使用。
func (r *GormAppointmentRepository) FindExpiredPending(before time.Time, statuses []string) ([]models.Appointment, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	dayEnd := time.Date(before.Year(), before.Month(), before.Day(), 0, 0, 0, 0, before.Location()).AddDate(0, 0, 1)
	var appointments []models.Appointment
	// 先按日期粗筛，再在内存里按 HH:MM 结束时间精筛，由调用方完成。
	if err := r.db.Model(&models.Appointment{}).
		Where("status IN ?", statuses).
		Where("appointment_date < ?", dayEnd).
		Order("appointment_date asc, end_time asc").
		Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// Update 更新预约
func (r *GormAppointmentRepository) Update(appointment *models.Appointment) error {
	return r.db.Save(appointment).Error
}

// UpdateFields 按字段更新预约
func (r *GormAppointmentRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if id == 0 || len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Appointment{}).Where("id = ?", id).Updates(updates).Error
}

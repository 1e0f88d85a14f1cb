package service

import (
	"strings"
	"time"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/logger"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"

	"gorm.io/gorm"
)

// AppointmentService 预约服务
type AppointmentService struct {
	appointmentRepo repository.AppointmentRepository
	memberRepo      repository.MemberRepository
	serviceRepo     repository.ServiceItemRepository
	staffRepo       repository.StaffRepository
	reminder        AppointmentReminder
}

// AppointmentReminder 预约提醒投递（可选，未配置时为 nil）
type AppointmentReminder interface {
	ScheduleReminder(appointmentID uint, startAt time.Time) error
}

// AppointmentCreateInput 创建预约输入
type AppointmentCreateInput struct {
	MemberID  uint
	ServiceID uint
	StaffID   *uint
	Date      time.Time
	StartTime string // HH:MM
	EndTime   string // HH:MM，为空时按服务时长推算
	Remark    string
}

// AppointmentUpdateInput 改约输入
type AppointmentUpdateInput struct {
	ServiceID uint
	StaffID   *uint
	Date      time.Time
	StartTime string
	EndTime   string
	Remark    string
}

// NewAppointmentService 创建预约服务
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	memberRepo repository.MemberRepository,
	serviceRepo repository.ServiceItemRepository,
	staffRepo repository.StaffRepository,
	reminder AppointmentReminder,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		memberRepo:      memberRepo,
		serviceRepo:     serviceRepo,
		staffRepo:       staffRepo,
		reminder:        reminder,
	}
}

// Create 创建预约。指定技师时对同技师同日的占位预约做时段冲突检测，
// 首尾相接不算冲突；结束时间缺省按服务时长推算。
func (s *AppointmentService) Create(input AppointmentCreateInput) (*models.Appointment, error) {
	member, err := s.memberRepo.GetByID(input.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	svc, err := s.serviceRepo.GetByID(input.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if svc.Status != constants.ServiceStatusActive {
		return nil, ErrServiceInactive
	}
	if input.StaffID != nil {
		staff, err := s.staffRepo.GetByID(*input.StaffID)
		if err != nil {
			return nil, err
		}
		if staff == nil {
			return nil, ErrStaffNotFound
		}
		if staff.Status != constants.StaffStatusActive {
			return nil, ErrStaffInactive
		}
	}

	startMin, endMin, endTime, err := resolveTimeRange(input.StartTime, input.EndTime, svc.Duration)
	if err != nil {
		return nil, err
	}

	var appointment *models.Appointment
	err = s.appointmentRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.appointmentRepo.WithTx(tx)
		if input.StaffID != nil {
			if err := s.checkConflict(repo, *input.StaffID, input.Date, startMin, endMin, 0); err != nil {
				return err
			}
		}
		appointment = &models.Appointment{
			MemberID:        input.MemberID,
			ServiceID:       input.ServiceID,
			StaffID:         input.StaffID,
			AppointmentDate: input.Date,
			StartTime:       input.StartTime,
			EndTime:         endTime,
			Status:          constants.AppointmentStatusPending,
			Remark:          strings.TrimSpace(input.Remark),
		}
		return repo.Create(appointment)
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// Get 获取预约详情
func (s *AppointmentService) Get(id uint) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// List 分页查询预约
func (s *AppointmentService) List(filter repository.AppointmentListFilter) ([]models.Appointment, int64, error) {
	return s.appointmentRepo.List(filter)
}

// Update 改约（仅 pending/confirmed 可改，改约后回到 pending 重新确认）
func (s *AppointmentService) Update(id uint, input AppointmentUpdateInput) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.Status != constants.AppointmentStatusPending &&
		appointment.Status != constants.AppointmentStatusConfirmed {
		return nil, ErrInvalidStatusTransition
	}
	svc, err := s.serviceRepo.GetByID(input.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if input.StaffID != nil {
		staff, err := s.staffRepo.GetByID(*input.StaffID)
		if err != nil {
			return nil, err
		}
		if staff == nil {
			return nil, ErrStaffNotFound
		}
	}

	startMin, endMin, endTime, err := resolveTimeRange(input.StartTime, input.EndTime, svc.Duration)
	if err != nil {
		return nil, err
	}

	err = s.appointmentRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.appointmentRepo.WithTx(tx)
		if input.StaffID != nil {
			if err := s.checkConflict(repo, *input.StaffID, input.Date, startMin, endMin, id); err != nil {
				return err
			}
		}
		appointment.ServiceID = input.ServiceID
		appointment.StaffID = input.StaffID
		appointment.AppointmentDate = input.Date
		appointment.StartTime = input.StartTime
		appointment.EndTime = endTime
		appointment.Status = constants.AppointmentStatusPending
		appointment.Remark = strings.TrimSpace(input.Remark)
		return repo.Update(appointment)
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// Confirm 确认预约并安排提前提醒
func (s *AppointmentService) Confirm(id uint) (*models.Appointment, error) {
	appointment, err := s.transition(id, constants.AppointmentStatusConfirmed, "")
	if err != nil {
		return nil, err
	}
	if s.reminder != nil {
		if startAt, ok := appointmentStartAt(appointment); ok {
			if err := s.reminder.ScheduleReminder(appointment.ID, startAt); err != nil {
				logger.Warnw("appointment_reminder_schedule_failed",
					"appointment_id", appointment.ID,
					"error", err,
				)
			}
		}
	}
	return appointment, nil
}

// Complete 完成预约
func (s *AppointmentService) Complete(id uint) (*models.Appointment, error) {
	return s.transition(id, constants.AppointmentStatusCompleted, "")
}

// MarkNoShow 标记爽约
func (s *AppointmentService) MarkNoShow(id uint) (*models.Appointment, error) {
	return s.transition(id, constants.AppointmentStatusNoShow, "")
}

// Cancel 取消预约（必须说明原因）
func (s *AppointmentService) Cancel(id uint, reason string) (*models.Appointment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrCancelReasonRequired
	}
	return s.transition(id, constants.AppointmentStatusCancelled, strings.TrimSpace(reason))
}

// transition 执行状态迁移，终态不可再变
func (s *AppointmentService) transition(id uint, target string, cancelReason string) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !isValidTransition(appointment.Status, target) {
		return nil, ErrInvalidStatusTransition
	}
	updates := map[string]interface{}{"status": target}
	if target == constants.AppointmentStatusCancelled {
		updates["cancel_reason"] = cancelReason
	}
	if err := s.appointmentRepo.UpdateFields(id, updates); err != nil {
		return nil, err
	}
	appointment.Status = target
	appointment.CancelReason = cancelReason
	return appointment, nil
}

// SweepNoShows 将宽限期后仍未到店的已确认预约批量标记为爽约，返回处理数量。
// 未确认的过期预约不算爽约，留给人工取消。
func (s *AppointmentService) SweepNoShows(now time.Time, graceMinutes int) (int, error) {
	candidates, err := s.appointmentRepo.FindExpiredPending(now, []string{
		constants.AppointmentStatusConfirmed,
	})
	if err != nil {
		return 0, err
	}
	swept := 0
	for i := range candidates {
		endAt, ok := appointmentEndAt(&candidates[i])
		if !ok {
			continue
		}
		if now.Before(endAt.Add(time.Duration(graceMinutes) * time.Minute)) {
			continue
		}
		if err := s.appointmentRepo.UpdateFields(candidates[i].ID, map[string]interface{}{
			"status": constants.AppointmentStatusNoShow,
		}); err != nil {
			return swept, err
		}
		swept++
	}
	return swept, nil
}

func (s *AppointmentService) checkConflict(repo *repository.GormAppointmentRepository, staffID uint, date time.Time, startMin, endMin int, excludeID uint) error {
	existing, err := repo.FindBlockingByStaffAndDate(staffID, date, excludeID)
	if err != nil {
		return err
	}
	for _, other := range existing {
		otherStart, err := parseTimeOfDay(other.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := parseTimeOfDay(other.EndTime)
		if err != nil {
			continue
		}
		if timeRangesOverlap(startMin, endMin, otherStart, otherEnd) {
			return ErrScheduleConflict
		}
	}
	return nil
}

// resolveTimeRange 校验时段输入并在结束时间缺省时按服务时长推算
func resolveTimeRange(startTime, endTime string, durationMinutes int) (int, int, string, error) {
	startMin, err := parseTimeOfDay(startTime)
	if err != nil {
		return 0, 0, "", err
	}
	if endTime == "" {
		if durationMinutes <= 0 {
			return 0, 0, "", ErrInvalidTimeRange
		}
		endMin := startMin + durationMinutes
		if endMin >= 24*60 {
			return 0, 0, "", ErrInvalidTimeRange
		}
		return startMin, endMin, formatTimeOfDay(endMin), nil
	}
	endMin, err := parseTimeOfDay(endTime)
	if err != nil {
		return 0, 0, "", err
	}
	if endMin <= startMin {
		return 0, 0, "", ErrInvalidTimeRange
	}
	return startMin, endMin, endTime, nil
}

// isValidTransition 预约状态机：pending 可确认或取消；confirmed 可完成、爽约或取消；
// completed/cancelled/no_show 为终态。爽约只能从 confirmed 到达。
func isValidTransition(from, to string) bool {
	switch from {
	case constants.AppointmentStatusPending:
		return to == constants.AppointmentStatusConfirmed ||
			to == constants.AppointmentStatusCancelled
	case constants.AppointmentStatusConfirmed:
		return to == constants.AppointmentStatusCompleted ||
			to == constants.AppointmentStatusCancelled ||
			to == constants.AppointmentStatusNoShow
	}
	return false
}

func appointmentStartAt(appointment *models.Appointment) (time.Time, bool) {
	return combineDateTime(appointment.AppointmentDate, appointment.StartTime)
}

func appointmentEndAt(appointment *models.Appointment) (time.Time, bool) {
	return combineDateTime(appointment.AppointmentDate, appointment.EndTime)
}

func combineDateTime(date time.Time, timeOfDay string) (time.Time, bool) {
	minutes, err := parseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, time.Local), true
}

package service

import (
	"testing"
	"time"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"

	"gorm.io/gorm"
)

type recordingReminder struct {
	appointmentIDs []uint
	startAts       []time.Time
}

func (r *recordingReminder) ScheduleReminder(appointmentID uint, startAt time.Time) error {
	r.appointmentIDs = append(r.appointmentIDs, appointmentID)
	r.startAts = append(r.startAts, startAt)
	return nil
}

type appointmentFixture struct {
	svc      *AppointmentService
	db       *gorm.DB
	member   *models.Member
	item     *models.ServiceItem
	staff    *models.Staff
	reminder *recordingReminder
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	db := newTestDB(t)

	member := &models.Member{
		MemberNo: "M000001",
		Name:     "预约测试会员",
		Phone:    "13500000001",
		Status:   constants.MemberStatusActive,
	}
	mustCreate(t, db, member)

	item := &models.ServiceItem{
		Name:     "全身经络推拿",
		Price:    models.NewMoneyFromInt(298),
		Duration: 60,
		Status:   constants.ServiceStatusActive,
	}
	mustCreate(t, db, item)

	staff := &models.Staff{
		Name:   "王美琪",
		Phone:  "13500000002",
		Role:   constants.StaffRoleTechnician,
		Status: constants.StaffStatusActive,
	}
	mustCreate(t, db, staff)

	reminder := &recordingReminder{}
	svc := NewAppointmentService(
		repository.NewAppointmentRepository(db),
		repository.NewMemberRepository(db),
		repository.NewServiceItemRepository(db),
		repository.NewStaffRepository(db),
		reminder,
	)
	return &appointmentFixture{svc: svc, db: db, member: member, item: item, staff: staff, reminder: reminder}
}

func testDate(daysFromNow int) time.Time {
	now := time.Now().AddDate(0, 0, daysFromNow)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

func TestAppointmentCreateDerivesEndTime(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment, err := f.svc.Create(AppointmentCreateInput{
		MemberID:  f.member.ID,
		ServiceID: f.item.ID,
		StaffID:   &f.staff.ID,
		Date:      testDate(1),
		StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if appointment.EndTime != "11:00" {
		t.Fatalf("end time want 11:00 got %s", appointment.EndTime)
	}
	if appointment.Status != constants.AppointmentStatusPending {
		t.Fatalf("new appointment must be pending, got %s", appointment.Status)
	}
}

func TestAppointmentConflictDetection(t *testing.T) {
	f := newAppointmentFixture(t)
	date := testDate(1)

	if _, err := f.svc.Create(AppointmentCreateInput{
		MemberID:  f.member.ID,
		ServiceID: f.item.ID,
		StaffID:   &f.staff.ID,
		Date:      date,
		StartTime: "10:00",
		EndTime:   "11:00",
	}); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	// 时段重叠
	if _, err := f.svc.Create(AppointmentCreateInput{
		MemberID:  f.member.ID,
		ServiceID: f.item.ID,
		StaffID:   &f.staff.ID,
		Date:      date,
		StartTime: "10:30",
		EndTime:   "11:30",
	}); err != ErrScheduleConflict {
		t.Fatalf("overlap want ErrScheduleConflict, got %v", err)
	}

	// 首尾相接不算冲突
	if _, err := f.svc.Create(AppointmentCreateInput{
		MemberID:  f.member.ID,
		ServiceID: f.item.ID,
		StaffID:   &f.staff.ID,
		Date:      date,
		StartTime: "11:00",
		EndTime:   "12:00",
	}); err != nil {
		t.Fatalf("back-to-back should pass: %v", err)
	}

	// 其他日期不冲突
	if _, err := f.svc.Create(AppointmentCreateInput{
		MemberID:  f.member.ID,
		ServiceID: f.item.ID,
		StaffID:   &f.staff.ID,
		Date:      testDate(2),
		StartTime: "10:00",
		EndTime:   "11:00",
	}); err != nil {
		t.Fatalf("other day should pass: %v", err)
	}

	// 不指定技师不做冲突检测
	if _, err := f.svc.Create(AppointmentCreateInput{
		MemberID:  f.member.ID,
		ServiceID: f.item.ID,
		Date:      date,
		StartTime: "10:00",
		EndTime:   "11:00",
	}); err != nil {
		t.Fatalf("no staff should pass: %v", err)
	}

	// 其他技师不冲突
	other := &models.Staff{Name: "李晓燕", Phone: "13500000003", Role: constants.StaffRoleTechnician, Status: constants.StaffStatusActive}
	mustCreate(t, f.db, other)
	if _, err := f.svc.Create(AppointmentCreateInput{
		MemberID:  f.member.ID,
		ServiceID: f.item.ID,
		StaffID:   &other.ID,
		Date:      date,
		StartTime: "10:00",
		EndTime:   "11:00",
	}); err != nil {
		t.Fatalf("other staff should pass: %v", err)
	}
}

func TestAppointmentStatusFlow(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment, err := f.svc.Create(AppointmentCreateInput{
		MemberID:  f.member.ID,
		ServiceID: f.item.ID,
		StaffID:   &f.staff.ID,
		Date:      testDate(1),
		StartTime: "14:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	confirmed, err := f.svc.Confirm(appointment.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != constants.AppointmentStatusConfirmed {
		t.Fatalf("status want confirmed got %s", confirmed.Status)
	}
	if len(f.reminder.appointmentIDs) != 1 || f.reminder.appointmentIDs[0] != appointment.ID {
		t.Fatalf("confirm should schedule a reminder, got %v", f.reminder.appointmentIDs)
	}

	completed, err := f.svc.Complete(appointment.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != constants.AppointmentStatusCompleted {
		t.Fatalf("status want completed got %s", completed.Status)
	}

	// 终态不可再变
	if _, err := f.svc.Cancel(appointment.ID, "客户临时有事"); err != ErrInvalidStatusTransition {
		t.Fatalf("cancel completed want ErrInvalidStatusTransition, got %v", err)
	}
	if _, err := f.svc.Confirm(appointment.ID); err != ErrInvalidStatusTransition {
		t.Fatalf("confirm completed want ErrInvalidStatusTransition, got %v", err)
	}
}

func TestAppointmentCancelRequiresReason(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment, err := f.svc.Create(AppointmentCreateInput{
		MemberID:  f.member.ID,
		ServiceID: f.item.ID,
		Date:      testDate(1),
		StartTime: "09:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.Cancel(appointment.ID, "   "); err != ErrCancelReasonRequired {
		t.Fatalf("blank reason want ErrCancelReasonRequired, got %v", err)
	}

	cancelled, err := f.svc.Cancel(appointment.ID, "客户改期")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != constants.AppointmentStatusCancelled || cancelled.CancelReason != "客户改期" {
		t.Fatalf("cancel result wrong: %+v", cancelled)
	}
}

func TestAppointmentUpdateReturnsToPending(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment, err := f.svc.Create(AppointmentCreateInput{
		MemberID:  f.member.ID,
		ServiceID: f.item.ID,
		StaffID:   &f.staff.ID,
		Date:      testDate(1),
		StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Confirm(appointment.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	updated, err := f.svc.Update(appointment.ID, AppointmentUpdateInput{
		ServiceID: f.item.ID,
		StaffID:   &f.staff.ID,
		Date:      testDate(2),
		StartTime: "15:00",
		EndTime:   "16:00",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != constants.AppointmentStatusPending {
		t.Fatalf("reschedule should return to pending, got %s", updated.Status)
	}
	if updated.StartTime != "15:00" || updated.EndTime != "16:00" {
		t.Fatalf("times not applied: %s-%s", updated.StartTime, updated.EndTime)
	}
}

func TestSweepNoShows(t *testing.T) {
	f := newAppointmentFixture(t)
	now := time.Now()

	// 昨天已确认未到店
	stale := &models.Appointment{
		MemberID:        f.member.ID,
		ServiceID:       f.item.ID,
		StaffID:         &f.staff.ID,
		AppointmentDate: testDate(-1),
		StartTime:       "10:00",
		EndTime:         "11:00",
		Status:          constants.AppointmentStatusConfirmed,
	}
	mustCreate(t, f.db, stale)

	// 昨天未确认的预约不算爽约
	stalePending := &models.Appointment{
		MemberID:        f.member.ID,
		ServiceID:       f.item.ID,
		AppointmentDate: testDate(-1),
		StartTime:       "14:00",
		EndTime:         "15:00",
		Status:          constants.AppointmentStatusPending,
	}
	mustCreate(t, f.db, stalePending)

	// 明天的预约不应被扫到
	upcoming := &models.Appointment{
		MemberID:        f.member.ID,
		ServiceID:       f.item.ID,
		AppointmentDate: testDate(1),
		StartTime:       "10:00",
		EndTime:         "11:00",
		Status:          constants.AppointmentStatusPending,
	}
	mustCreate(t, f.db, upcoming)

	swept, err := f.svc.SweepNoShows(now, 30)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if swept != 1 {
		t.Fatalf("swept want 1 got %d", swept)
	}

	var reloadedStale models.Appointment
	if err := f.db.First(&reloadedStale, stale.ID).Error; err != nil {
		t.Fatalf("reload stale: %v", err)
	}
	if reloadedStale.Status != constants.AppointmentStatusNoShow {
		t.Fatalf("stale appointment want no_show got %s", reloadedStale.Status)
	}

	var reloadedPending models.Appointment
	if err := f.db.First(&reloadedPending, stalePending.ID).Error; err != nil {
		t.Fatalf("reload stale pending: %v", err)
	}
	if reloadedPending.Status != constants.AppointmentStatusPending {
		t.Fatalf("unconfirmed appointment must stay pending, got %s", reloadedPending.Status)
	}

	var reloadedUpcoming models.Appointment
	if err := f.db.First(&reloadedUpcoming, upcoming.ID).Error; err != nil {
		t.Fatalf("reload upcoming: %v", err)
	}
	if reloadedUpcoming.Status != constants.AppointmentStatusPending {
		t.Fatalf("upcoming appointment must stay pending, got %s", reloadedUpcoming.Status)
	}
}

func TestMarkNoShowOnlyFromConfirmed(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment, err := f.svc.Create(AppointmentCreateInput{
		MemberID:  f.member.ID,
		ServiceID: f.item.ID,
		StaffID:   &f.staff.ID,
		Date:      testDate(1),
		StartTime: "16:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.MarkNoShow(appointment.ID); err != ErrInvalidStatusTransition {
		t.Fatalf("no_show from pending want ErrInvalidStatusTransition, got %v", err)
	}

	if _, err := f.svc.Confirm(appointment.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	marked, err := f.svc.MarkNoShow(appointment.ID)
	if err != nil {
		t.Fatalf("no_show from confirmed: %v", err)
	}
	if marked.Status != constants.AppointmentStatusNoShow {
		t.Fatalf("status want no_show got %s", marked.Status)
	}
}

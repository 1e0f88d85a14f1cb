package service

import (
	"testing"
	"time"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"
)

func TestDashboardSummary(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	mustCreate(t, db, &models.Member{
		MemberNo: "M000001", Name: "活跃会员", Phone: "13400000001",
		Status: constants.MemberStatusActive,
	})
	mustCreate(t, db, &models.Member{
		MemberNo: "M000002", Name: "冻结会员", Phone: "13400000002",
		Status: constants.MemberStatusFrozen,
	})

	mustCreate(t, db, &models.ConsumeRecord{
		RecordNo: "C0001", MemberID: 1,
		TotalAmount:   models.NewMoneyFromInt(90),
		ActualAmount:  models.NewMoneyFromInt(90),
		PaymentMethod: constants.PaymentMethodBalance,
		Status:        constants.RecordStatusSuccess,
	})
	mustCreate(t, db, &models.RechargeRecord{
		RecordNo: "R0001", MemberID: 1,
		Amount:        models.NewMoneyFromInt(1000),
		GiftAmount:    models.NewMoneyFromInt(100),
		PaymentMethod: constants.PaymentMethodCash,
		Status:        constants.RecordStatusSuccess,
	})

	mustCreate(t, db, &models.Product{
		Name: "低库存产品", Price: models.NewMoneyFromInt(99),
		Stock: 1, MinStock: 5, Status: constants.ProductStatusOnSale,
	})

	mustCreate(t, db, &models.ServiceItem{
		Name: "面部护理", Price: models.NewMoneyFromInt(198), Duration: 60,
		Status: constants.ServiceStatusActive,
	})
	mustCreate(t, db, &models.Appointment{
		MemberID: 1, ServiceID: 1,
		AppointmentDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		StartTime:       "10:00", EndTime: "11:00",
		Status: constants.AppointmentStatusConfirmed,
	})

	svc := NewDashboardService(
		repository.NewMemberRepository(db),
		repository.NewConsumeRepository(db),
		repository.NewRechargeRepository(db),
		repository.NewProductRepository(db),
		repository.NewAppointmentRepository(db),
	)

	summary, err := svc.Summary(now)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.MemberCount != 1 {
		t.Fatalf("active member count want 1 got %d", summary.MemberCount)
	}
	if summary.TodayConsumeTotal.String() != "90.00" || summary.TodayConsumeCount != 1 {
		t.Fatalf("consume stats wrong: %s / %d", summary.TodayConsumeTotal, summary.TodayConsumeCount)
	}
	if summary.TodayRechargeTotal.String() != "1000.00" || summary.TodayRechargeCount != 1 {
		t.Fatalf("recharge stats wrong: %s / %d", summary.TodayRechargeTotal, summary.TodayRechargeCount)
	}
	if len(summary.LowStockProducts) != 1 {
		t.Fatalf("low stock count want 1 got %d", len(summary.LowStockProducts))
	}
	if len(summary.TodayAppointments) != 1 {
		t.Fatalf("today appointments want 1 got %d", len(summary.TodayAppointments))
	}
}

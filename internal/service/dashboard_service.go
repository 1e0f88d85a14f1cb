package service

import (
	"time"

	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"
)

// DashboardService 经营概览服务
type DashboardService struct {
	memberRepo      repository.MemberRepository
	consumeRepo     repository.ConsumeRepository
	rechargeRepo    repository.RechargeRepository
	productRepo     repository.ProductRepository
	appointmentRepo repository.AppointmentRepository
}

// DashboardSummary 经营概览
type DashboardSummary struct {
	MemberCount        int64                `json:"member_count"`
	TodayConsumeTotal  models.Money         `json:"today_consume_total"`
	TodayConsumeCount  int64                `json:"today_consume_count"`
	TodayRechargeTotal models.Money         `json:"today_recharge_total"`
	TodayRechargeCount int64                `json:"today_recharge_count"`
	LowStockProducts   []models.Product     `json:"low_stock_products"`
	TodayAppointments  []models.Appointment `json:"today_appointments"`
}

// NewDashboardService 创建经营概览服务
func NewDashboardService(
	memberRepo repository.MemberRepository,
	consumeRepo repository.ConsumeRepository,
	rechargeRepo repository.RechargeRepository,
	productRepo repository.ProductRepository,
	appointmentRepo repository.AppointmentRepository,
) *DashboardService {
	return &DashboardService{
		memberRepo:      memberRepo,
		consumeRepo:     consumeRepo,
		rechargeRepo:    rechargeRepo,
		productRepo:     productRepo,
		appointmentRepo: appointmentRepo,
	}
}

// Summary 汇总当日经营数据
func (s *DashboardService) Summary(now time.Time) (*DashboardSummary, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	memberCount, err := s.memberRepo.CountActive()
	if err != nil {
		return nil, err
	}
	consumeTotal, consumeCount, err := s.consumeRepo.SumTotalAmount(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	rechargeTotal, rechargeCount, err := s.rechargeRepo.SumAmount(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.ListLowStock(10)
	if err != nil {
		return nil, err
	}
	today := dayStart
	appointments, _, err := s.appointmentRepo.List(repository.AppointmentListFilter{
		Page:     1,
		PageSize: 100,
		Date:     &today,
	})
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		MemberCount:        memberCount,
		TodayConsumeTotal:  models.NewMoneyFromDecimal(consumeTotal),
		TodayConsumeCount:  consumeCount,
		TodayRechargeTotal: models.NewMoneyFromDecimal(rechargeTotal),
		TodayRechargeCount: rechargeCount,
		LowStockProducts:   lowStock,
		TodayAppointments:  appointments,
	}, nil
}

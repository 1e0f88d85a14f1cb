package service

import (
	"context"
	"testing"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"

	"gorm.io/gorm"
)

type rechargeFixture struct {
	svc       *RechargeService
	db        *gorm.DB
	member    *models.Member
	baseLevel *models.MemberLevel
	nextLevel *models.MemberLevel
}

func newRechargeFixture(t *testing.T) *rechargeFixture {
	t.Helper()
	db := newTestDB(t)

	base := &models.MemberLevel{Name: "普通会员", LevelOrder: 1}
	mustCreate(t, db, base)
	next := &models.MemberLevel{Name: "银卡会员", LevelOrder: 2, UpgradeAmount: models.NewMoneyFromInt(1000)}
	mustCreate(t, db, next)

	member := &models.Member{
		MemberNo: "M000001",
		Name:     "充值测试会员",
		Phone:    "13600000001",
		LevelID:  base.ID,
		Status:   constants.MemberStatusActive,
	}
	mustCreate(t, db, member)

	svc := NewRechargeService(
		repository.NewMemberRepository(db),
		repository.NewMemberLevelRepository(db),
		repository.NewRechargeRepository(db),
		repository.NewRechargePackageRepository(db),
		nil,
	)
	return &rechargeFixture{svc: svc, db: db, member: member, baseLevel: base, nextLevel: next}
}

func (f *rechargeFixture) reloadMember(t *testing.T) *models.Member {
	t.Helper()
	var member models.Member
	if err := f.db.First(&member, f.member.ID).Error; err != nil {
		t.Fatalf("reload member: %v", err)
	}
	return &member
}

func TestRechargeAccumulatesAndPromotes(t *testing.T) {
	f := newRechargeFixture(t)
	ctx := context.Background()

	record, err := f.svc.Recharge(ctx, RechargeInput{
		MemberID:      f.member.ID,
		Amount:        models.NewMoneyFromInt(200),
		PaymentMethod: constants.PaymentMethodCash,
		OperatorID:    1,
	})
	if err != nil {
		t.Fatalf("first recharge: %v", err)
	}
	if record.RecordNo == "" || record.RecordNo[0] != 'R' {
		t.Fatalf("record no wrong: %s", record.RecordNo)
	}

	member := f.reloadMember(t)
	if member.Balance.String() != "200.00" || member.TotalRecharge.String() != "200.00" {
		t.Fatalf("after first recharge: balance %s total %s", member.Balance, member.TotalRecharge)
	}
	if member.LevelID != f.baseLevel.ID {
		t.Fatalf("200 must not promote, level %d", member.LevelID)
	}

	// 赠送金额单独入账，不计入累计充值
	if _, err := f.svc.Recharge(ctx, RechargeInput{
		MemberID:      f.member.ID,
		Amount:        models.NewMoneyFromInt(1000),
		GiftAmount:    models.NewMoneyFromInt(100),
		PaymentMethod: constants.PaymentMethodCash,
		OperatorID:    1,
	}); err != nil {
		t.Fatalf("second recharge: %v", err)
	}

	member = f.reloadMember(t)
	if member.Balance.String() != "1200.00" || member.GiftBalance.String() != "100.00" {
		t.Fatalf("after second recharge: balance %s gift %s", member.Balance, member.GiftBalance)
	}
	if member.TotalRecharge.String() != "1200.00" {
		t.Fatalf("total recharge want 1200.00 got %s", member.TotalRecharge)
	}
	if member.LevelID != f.nextLevel.ID {
		t.Fatalf("1200 should promote to level %d, got %d", f.nextLevel.ID, member.LevelID)
	}
}

func TestRechargeWithPackage(t *testing.T) {
	f := newRechargeFixture(t)
	ctx := context.Background()

	pkg := &models.RechargePackage{
		Name:       "充3000送450",
		Amount:     models.NewMoneyFromInt(3000),
		GiftAmount: models.NewMoneyFromInt(450),
		Status:     constants.RechargePackageStatusActive,
	}
	mustCreate(t, f.db, pkg)

	record, err := f.svc.Recharge(ctx, RechargeInput{
		MemberID:      f.member.ID,
		PackageID:     &pkg.ID,
		PaymentMethod: constants.PaymentMethodWechat,
		OperatorID:    1,
	})
	if err != nil {
		t.Fatalf("package recharge: %v", err)
	}
	if record.Amount.String() != "3000.00" || record.GiftAmount.String() != "450.00" {
		t.Fatalf("package amounts not applied: %s / %s", record.Amount, record.GiftAmount)
	}

	member := f.reloadMember(t)
	if member.Balance.String() != "3000.00" || member.GiftBalance.String() != "450.00" {
		t.Fatalf("member balances wrong: %s / %s", member.Balance, member.GiftBalance)
	}

	inactive := &models.RechargePackage{
		Name:       "已下架套餐",
		Amount:     models.NewMoneyFromInt(1000),
		GiftAmount: models.NewMoneyFromInt(100),
		Status:     constants.RechargePackageStatusInactive,
	}
	mustCreate(t, f.db, inactive)
	if _, err := f.svc.Recharge(ctx, RechargeInput{
		MemberID:      f.member.ID,
		PackageID:     &inactive.ID,
		PaymentMethod: constants.PaymentMethodCash,
	}); err != ErrPackageInactive {
		t.Fatalf("inactive package want ErrPackageInactive, got %v", err)
	}

	missing := uint(9999)
	if _, err := f.svc.Recharge(ctx, RechargeInput{
		MemberID:      f.member.ID,
		PackageID:     &missing,
		PaymentMethod: constants.PaymentMethodCash,
	}); err != ErrPackageNotFound {
		t.Fatalf("missing package want ErrPackageNotFound, got %v", err)
	}
}

func TestRechargeValidation(t *testing.T) {
	f := newRechargeFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Recharge(ctx, RechargeInput{
		MemberID:      f.member.ID,
		Amount:        models.ZeroMoney(),
		PaymentMethod: constants.PaymentMethodCash,
	}); err != ErrInvalidAmount {
		t.Fatalf("zero amount want ErrInvalidAmount, got %v", err)
	}

	if _, err := f.svc.Recharge(ctx, RechargeInput{
		MemberID:      f.member.ID,
		Amount:        models.NewMoneyFromInt(100),
		GiftAmount:    models.NewMoneyFromInt(-10),
		PaymentMethod: constants.PaymentMethodCash,
	}); err != ErrInvalidAmount {
		t.Fatalf("negative gift want ErrInvalidAmount, got %v", err)
	}

	// 余额不能给自己充值
	if _, err := f.svc.Recharge(ctx, RechargeInput{
		MemberID:      f.member.ID,
		Amount:        models.NewMoneyFromInt(100),
		PaymentMethod: constants.PaymentMethodBalance,
	}); err != ErrPaymentMethodInvalid {
		t.Fatalf("balance method want ErrPaymentMethodInvalid, got %v", err)
	}

	if _, err := f.svc.Recharge(ctx, RechargeInput{
		MemberID:      9999,
		Amount:        models.NewMoneyFromInt(100),
		PaymentMethod: constants.PaymentMethodCash,
	}); err != ErrMemberNotFound {
		t.Fatalf("missing member want ErrMemberNotFound, got %v", err)
	}

	if err := f.db.Model(&models.Member{}).Where("id = ?", f.member.ID).
		Update("status", constants.MemberStatusFrozen).Error; err != nil {
		t.Fatalf("freeze member: %v", err)
	}
	if _, err := f.svc.Recharge(ctx, RechargeInput{
		MemberID:      f.member.ID,
		Amount:        models.NewMoneyFromInt(100),
		PaymentMethod: constants.PaymentMethodCash,
	}); err != ErrMemberFrozen {
		t.Fatalf("frozen member want ErrMemberFrozen, got %v", err)
	}
}

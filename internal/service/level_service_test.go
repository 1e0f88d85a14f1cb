package service

import (
	"testing"

	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newLevelService(t *testing.T) (*LevelService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewLevelService(repository.NewMemberLevelRepository(db), repository.NewMemberRepository(db))
	return svc, db
}

func TestHighestQualifiedLevel(t *testing.T) {
	// 按等级序号从高到低排列
	levels := []models.MemberLevel{
		{ID: 3, LevelOrder: 3, UpgradeAmount: models.NewMoneyFromInt(5000)},
		{ID: 2, LevelOrder: 2, UpgradeAmount: models.NewMoneyFromInt(1000)},
		{ID: 1, LevelOrder: 1, UpgradeAmount: models.NewMoneyFromInt(0)},
	}

	if got := HighestQualifiedLevel(levels, models.NewMoneyFromInt(200)); got == nil || got.ID != 1 {
		t.Fatalf("200 should stay at base level, got %+v", got)
	}
	if got := HighestQualifiedLevel(levels, models.NewMoneyFromInt(1000)); got == nil || got.ID != 2 {
		t.Fatalf("1000 should reach level 2, got %+v", got)
	}
	if got := HighestQualifiedLevel(levels, models.NewMoneyFromInt(9999)); got == nil || got.ID != 3 {
		t.Fatalf("9999 should reach level 3, got %+v", got)
	}
	if got := HighestQualifiedLevel(nil, models.NewMoneyFromInt(100)); got != nil {
		t.Fatalf("empty levels should return nil, got %+v", got)
	}
}

func TestLevelCreateAndValidation(t *testing.T) {
	svc, _ := newLevelService(t)

	level, err := svc.Create(LevelInput{
		Name:          "银卡会员",
		LevelOrder:    2,
		Discount:      decimal.NewFromFloat(0.95),
		PointsRate:    decimal.NewFromFloat(1.2),
		UpgradeAmount: models.NewMoneyFromInt(1000),
	})
	if err != nil {
		t.Fatalf("create level: %v", err)
	}
	if level.ID == 0 {
		t.Fatalf("level id not assigned")
	}

	if _, err := svc.Create(LevelInput{
		Name:          "重复序号",
		LevelOrder:    2,
		Discount:      decimal.NewFromInt(1),
		PointsRate:    decimal.NewFromInt(1),
		UpgradeAmount: models.NewMoneyFromInt(0),
	}); err != ErrLevelOrderExists {
		t.Fatalf("duplicate order want ErrLevelOrderExists, got %v", err)
	}

	if _, err := svc.Create(LevelInput{
		Name:       "",
		LevelOrder: 3,
		Discount:   decimal.NewFromInt(1),
		PointsRate: decimal.NewFromInt(1),
	}); err != ErrLevelNameEmpty {
		t.Fatalf("blank name want ErrLevelNameEmpty, got %v", err)
	}

	if _, err := svc.Create(LevelInput{
		Name:       "折扣越界",
		LevelOrder: 3,
		Discount:   decimal.NewFromFloat(1.2),
		PointsRate: decimal.NewFromInt(1),
	}); err != ErrInvalidDiscount {
		t.Fatalf("discount above 1 want ErrInvalidDiscount, got %v", err)
	}

	if _, err := svc.Create(LevelInput{
		Name:       "零折扣",
		LevelOrder: 3,
		Discount:   decimal.Zero,
		PointsRate: decimal.NewFromInt(1),
	}); err != ErrInvalidDiscount {
		t.Fatalf("zero discount want ErrInvalidDiscount, got %v", err)
	}
}

func TestLevelDeleteInUse(t *testing.T) {
	svc, db := newLevelService(t)

	level, err := svc.Create(LevelInput{
		Name:          "金卡会员",
		LevelOrder:    3,
		Discount:      decimal.NewFromFloat(0.9),
		PointsRate:    decimal.NewFromFloat(1.5),
		UpgradeAmount: models.NewMoneyFromInt(5000),
	})
	if err != nil {
		t.Fatalf("create level: %v", err)
	}

	mustCreate(t, db, &models.Member{
		MemberNo: "M000001",
		Name:     "测试会员",
		Phone:    "13800001111",
		LevelID:  level.ID,
		Status:   "active",
	})

	if err := svc.Delete(level.ID); err != ErrLevelInUse {
		t.Fatalf("delete in-use level want ErrLevelInUse, got %v", err)
	}

	if err := db.Delete(&models.Member{}, "level_id = ?", level.ID).Error; err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if err := svc.Delete(level.ID); err != nil {
		t.Fatalf("delete unused level: %v", err)
	}
	if _, err := svc.Get(level.ID); err != ErrLevelNotFound {
		t.Fatalf("deleted level want ErrLevelNotFound, got %v", err)
	}
}

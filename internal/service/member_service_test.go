package service

import (
	"testing"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"

	"gorm.io/gorm"
)

func newMemberService(t *testing.T) (*MemberService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewMemberService(repository.NewMemberRepository(db), repository.NewMemberLevelRepository(db))
	return svc, db
}

func TestMemberCreate(t *testing.T) {
	svc, db := newMemberService(t)
	mustCreate(t, db, &models.MemberLevel{Name: "普通会员", LevelOrder: 1})
	mustCreate(t, db, &models.MemberLevel{Name: "银卡会员", LevelOrder: 2, UpgradeAmount: models.NewMoneyFromInt(1000)})

	member, err := svc.Create(MemberCreateInput{
		Name:   " 林小雨 ",
		Phone:  " 13900000001 ",
		Gender: "female",
	})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if member.MemberNo != "M000001" {
		t.Fatalf("member no want M000001 got %s", member.MemberNo)
	}
	if member.Name != "林小雨" || member.Phone != "13900000001" {
		t.Fatalf("name/phone not trimmed: %q %q", member.Name, member.Phone)
	}
	if member.Status != constants.MemberStatusActive {
		t.Fatalf("new member should be active, got %s", member.Status)
	}

	// 落到序号最低的等级
	var base models.MemberLevel
	if err := db.Where("level_order = ?", 1).First(&base).Error; err != nil {
		t.Fatalf("load base level: %v", err)
	}
	if member.LevelID != base.ID {
		t.Fatalf("member should start at base level %d, got %d", base.ID, member.LevelID)
	}

	second, err := svc.Create(MemberCreateInput{Name: "周婷", Phone: "13900000002", Gender: "其他"})
	if err != nil {
		t.Fatalf("create second member: %v", err)
	}
	if second.MemberNo != "M000002" {
		t.Fatalf("member no want M000002 got %s", second.MemberNo)
	}
	if second.Gender != constants.MemberGenderUnknown {
		t.Fatalf("unknown gender fallback expected, got %s", second.Gender)
	}

	if _, err := svc.Create(MemberCreateInput{Name: "重复手机号", Phone: "13900000001"}); err != ErrPhoneExists {
		t.Fatalf("duplicate phone want ErrPhoneExists, got %v", err)
	}
	if _, err := svc.Create(MemberCreateInput{Name: "", Phone: "13900000003"}); err != ErrMemberInfoInvalid {
		t.Fatalf("blank name want ErrMemberInfoInvalid, got %v", err)
	}
}

func TestMemberFreezeUnfreeze(t *testing.T) {
	svc, _ := newMemberService(t)
	member, err := svc.Create(MemberCreateInput{Name: "陈露", Phone: "13900000010"})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	if err := svc.Freeze(member.ID); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	got, err := svc.Get(member.ID)
	if err != nil {
		t.Fatalf("get after freeze: %v", err)
	}
	if got.Status != constants.MemberStatusFrozen {
		t.Fatalf("status want frozen got %s", got.Status)
	}

	if err := svc.Unfreeze(member.ID); err != nil {
		t.Fatalf("unfreeze: %v", err)
	}
	got, err = svc.Get(member.ID)
	if err != nil {
		t.Fatalf("get after unfreeze: %v", err)
	}
	if got.Status != constants.MemberStatusActive {
		t.Fatalf("status want active got %s", got.Status)
	}

	if err := svc.Freeze(9999); err != ErrMemberNotFound {
		t.Fatalf("freeze missing member want ErrMemberNotFound, got %v", err)
	}
}

func TestMemberDeleteRejectsRemainingBalance(t *testing.T) {
	svc, db := newMemberService(t)
	member, err := svc.Create(MemberCreateInput{Name: "吴倩", Phone: "13900000020"})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	if err := db.Model(&models.Member{}).Where("id = ?", member.ID).
		Update("gift_balance", models.NewMoneyFromInt(30)).Error; err != nil {
		t.Fatalf("set gift balance: %v", err)
	}
	if err := svc.Delete(member.ID); err != ErrMemberHasBalance {
		t.Fatalf("delete with balance want ErrMemberHasBalance, got %v", err)
	}

	if err := db.Model(&models.Member{}).Where("id = ?", member.ID).
		Update("gift_balance", models.ZeroMoney()).Error; err != nil {
		t.Fatalf("clear gift balance: %v", err)
	}
	if err := svc.Delete(member.ID); err != nil {
		t.Fatalf("delete cleared member: %v", err)
	}
	if _, err := svc.Get(member.ID); err != ErrMemberNotFound {
		t.Fatalf("deleted member want ErrMemberNotFound, got %v", err)
	}
}

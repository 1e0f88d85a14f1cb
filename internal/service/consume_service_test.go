package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type consumeFixture struct {
	svc     *ConsumeService
	db      *gorm.DB
	member  *models.Member
	product *models.Product
	item    *models.ServiceItem
}

// newConsumeFixture 预置一个九折、积分倍率 1.5 的会员，
// 本金 500 / 赠送 50，产品单价 100 库存 10，服务单价 200。
func newConsumeFixture(t *testing.T) *consumeFixture {
	t.Helper()
	db := newTestDB(t)

	level := &models.MemberLevel{
		Name:       "金卡会员",
		LevelOrder: 3,
		Discount:   decimal.NewFromFloat(0.9),
		PointsRate: decimal.NewFromFloat(1.5),
	}
	mustCreate(t, db, level)

	member := &models.Member{
		MemberNo:    "M000001",
		Name:        "消费测试会员",
		Phone:       "13700000001",
		Balance:     models.NewMoneyFromInt(500),
		GiftBalance: models.NewMoneyFromInt(50),
		LevelID:     level.ID,
		Status:      constants.MemberStatusActive,
	}
	mustCreate(t, db, member)

	product := &models.Product{
		Name:     "玻尿酸补水面膜",
		Price:    models.NewMoneyFromInt(100),
		Stock:    10,
		MinStock: 2,
		Status:   constants.ProductStatusOnSale,
	}
	mustCreate(t, db, product)

	item := &models.ServiceItem{
		Name:     "深层清洁面部护理",
		Price:    models.NewMoneyFromInt(200),
		Duration: 60,
		Status:   constants.ServiceStatusActive,
	}
	mustCreate(t, db, item)

	svc := NewConsumeService(
		repository.NewMemberRepository(db),
		repository.NewMemberLevelRepository(db),
		repository.NewProductRepository(db),
		repository.NewServiceItemRepository(db),
		repository.NewConsumeRepository(db),
		repository.NewStockLogRepository(db),
	)
	return &consumeFixture{svc: svc, db: db, member: member, product: product, item: item}
}

func (f *consumeFixture) reloadMember(t *testing.T) *models.Member {
	t.Helper()
	var member models.Member
	if err := f.db.First(&member, f.member.ID).Error; err != nil {
		t.Fatalf("reload member: %v", err)
	}
	return &member
}

func (f *consumeFixture) reloadProduct(t *testing.T) *models.Product {
	t.Helper()
	var product models.Product
	if err := f.db.First(&product, f.product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return &product
}

func TestConsumeBalanceGiftFirst(t *testing.T) {
	f := newConsumeFixture(t)

	record, err := f.svc.Consume(ConsumeInput{
		MemberID:      f.member.ID,
		Items:         []ConsumeItemInput{{ItemType: constants.ConsumeItemTypeProduct, ItemID: f.product.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodBalance,
		OperatorID:    1,
	})
	if err != nil {
		t.Fatalf("consume: %v", err)
	}

	// 100 × 0.9 = 90，赠送余额 50 先扣光，本金再扣 40
	if record.TotalAmount.String() != "90.00" {
		t.Fatalf("total want 90.00 got %s", record.TotalAmount)
	}
	if record.DiscountAmount.String() != "10.00" {
		t.Fatalf("discount want 10.00 got %s", record.DiscountAmount)
	}
	if record.GiftPaid.String() != "50.00" || record.BalancePaid.String() != "40.00" {
		t.Fatalf("waterfall wrong: gift %s balance %s", record.GiftPaid, record.BalancePaid)
	}
	// 90 × 1.5 = 135 积分，向下取整
	if record.PointsEarned != 135 {
		t.Fatalf("points want 135 got %d", record.PointsEarned)
	}

	member := f.reloadMember(t)
	if member.Balance.String() != "460.00" || member.GiftBalance.String() != "0.00" {
		t.Fatalf("member balances wrong: %s / %s", member.Balance, member.GiftBalance)
	}
	if member.TotalConsume.String() != "90.00" {
		t.Fatalf("total consume want 90.00 got %s", member.TotalConsume)
	}
	if member.Points != 135 {
		t.Fatalf("member points want 135 got %d", member.Points)
	}

	product := f.reloadProduct(t)
	if product.Stock != 9 {
		t.Fatalf("stock want 9 got %d", product.Stock)
	}

	var stockLog models.StockLog
	if err := f.db.Where("related_consume_id = ?", record.ID).First(&stockLog).Error; err != nil {
		t.Fatalf("stock log missing: %v", err)
	}
	if stockLog.Direction != constants.StockDirectionOut || stockLog.BeforeStock != 10 || stockLog.AfterStock != 9 {
		t.Fatalf("stock log wrong: %+v", stockLog)
	}

	var items []models.ConsumeItem
	if err := f.db.Where("record_id = ?", record.ID).Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 1 || items[0].UnitPrice.String() != "100.00" || items[0].Subtotal.String() != "90.00" {
		t.Fatalf("item snapshot wrong: %+v", items)
	}
}

func TestConsumeQuotedPriceSnapshot(t *testing.T) {
	f := newConsumeFixture(t)

	// 收银员议价 80 并改写展示名，目录价 100 不生效
	quoted := models.NewMoneyFromInt(80)
	record, err := f.svc.Consume(ConsumeInput{
		MemberID: f.member.ID,
		Items: []ConsumeItemInput{{
			ItemType:  constants.ConsumeItemTypeProduct,
			ItemID:    f.product.ID,
			ItemName:  "面膜（店庆特价）",
			UnitPrice: &quoted,
			Quantity:  1,
		}},
		PaymentMethod: constants.PaymentMethodCash,
		OperatorID:    1,
	})
	if err != nil {
		t.Fatalf("consume: %v", err)
	}

	// 80 × 0.9 = 72
	if record.TotalAmount.String() != "72.00" {
		t.Fatalf("total want 72.00 got %s", record.TotalAmount)
	}
	if record.DiscountAmount.String() != "8.00" {
		t.Fatalf("discount want 8.00 got %s", record.DiscountAmount)
	}

	var items []models.ConsumeItem
	if err := f.db.Where("record_id = ?", record.ID).Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items want 1 got %d", len(items))
	}
	if items[0].UnitPrice.String() != "80.00" || items[0].Subtotal.String() != "72.00" {
		t.Fatalf("quoted price not snapshotted: %+v", items[0])
	}
	if items[0].ItemName != "面膜（店庆特价）" {
		t.Fatalf("item name override not snapshotted: %s", items[0].ItemName)
	}

	// 负单价直接拒绝
	negative := models.NewMoneyFromInt(-1)
	if _, err := f.svc.Consume(ConsumeInput{
		MemberID: f.member.ID,
		Items: []ConsumeItemInput{{
			ItemType:  constants.ConsumeItemTypeProduct,
			ItemID:    f.product.ID,
			UnitPrice: &negative,
			Quantity:  1,
		}},
		PaymentMethod: constants.PaymentMethodCash,
	}); err != ErrInvalidAmount {
		t.Fatalf("negative quote want ErrInvalidAmount got %v", err)
	}
}

func TestConsumeInsufficientBalanceRollsBack(t *testing.T) {
	f := newConsumeFixture(t)

	// 7 × 100 × 0.9 = 630 > 550 可用余额
	_, err := f.svc.Consume(ConsumeInput{
		MemberID:      f.member.ID,
		Items:         []ConsumeItemInput{{ItemType: constants.ConsumeItemTypeProduct, ItemID: f.product.ID, Quantity: 7}},
		PaymentMethod: constants.PaymentMethodBalance,
		OperatorID:    1,
	})
	if err != ErrInsufficientBalance {
		t.Fatalf("want ErrInsufficientBalance got %v", err)
	}

	member := f.reloadMember(t)
	if member.Balance.String() != "500.00" || member.GiftBalance.String() != "50.00" {
		t.Fatalf("balances must be untouched: %s / %s", member.Balance, member.GiftBalance)
	}
	if f.reloadProduct(t).Stock != 10 {
		t.Fatalf("stock must be untouched")
	}

	var count int64
	f.db.Model(&models.ConsumeRecord{}).Count(&count)
	if count != 0 {
		t.Fatalf("no record should survive, got %d", count)
	}
}

// TestConsumeJointOverdrawSingleSuccess 两笔各自可支付、合计超出可用余额的结算，
// 只允许第一笔成功。
func TestConsumeJointOverdrawSingleSuccess(t *testing.T) {
	f := newConsumeFixture(t)

	// 4 × 100 × 0.9 = 360，可用 550：单笔可付，两笔合计 720 超额
	input := ConsumeInput{
		MemberID:      f.member.ID,
		Items:         []ConsumeItemInput{{ItemType: constants.ConsumeItemTypeProduct, ItemID: f.product.ID, Quantity: 4}},
		PaymentMethod: constants.PaymentMethodBalance,
		OperatorID:    1,
	}
	if _, err := f.svc.Consume(input); err != nil {
		t.Fatalf("first consume: %v", err)
	}
	if _, err := f.svc.Consume(input); err != ErrInsufficientBalance {
		t.Fatalf("second consume want ErrInsufficientBalance got %v", err)
	}

	member := f.reloadMember(t)
	if member.Balance.String() != "190.00" || member.GiftBalance.String() != "0.00" {
		t.Fatalf("balances after single success wrong: %s / %s", member.Balance, member.GiftBalance)
	}
	if f.reloadProduct(t).Stock != 6 {
		t.Fatalf("only the first consume may ship stock, got %d", f.reloadProduct(t).Stock)
	}

	var count int64
	f.db.Model(&models.ConsumeRecord{}).Count(&count)
	if count != 1 {
		t.Fatalf("records want 1 got %d", count)
	}
}

// TestConsumeGuardedDebitStaleRead 两笔扣款都按同一份过期快照计算，
// 条件更新只放行第一笔，第二笔 0 行命中。
func TestConsumeGuardedDebitStaleRead(t *testing.T) {
	f := newConsumeFixture(t)
	memberRepo := repository.NewMemberRepository(f.db)
	productRepo := repository.NewProductRepository(f.db)

	// 快照：本金 500 / 赠送 50。按快照看两笔 350 都付得起。
	debit := models.Member{
		Balance:      models.NewMoneyFromInt(300),
		GiftBalance:  models.NewMoneyFromInt(50),
		TotalConsume: models.NewMoneyFromInt(350),
		Points:       350,
	}
	affected, err := memberRepo.ApplyConsumption(f.member.ID, debit)
	if err != nil {
		t.Fatalf("first debit: %v", err)
	}
	if affected != 1 {
		t.Fatalf("first debit want 1 row got %d", affected)
	}

	affected, err = memberRepo.ApplyConsumption(f.member.ID, debit)
	if err != nil {
		t.Fatalf("second debit: %v", err)
	}
	if affected != 0 {
		t.Fatalf("stale second debit want 0 rows got %d", affected)
	}

	member := f.reloadMember(t)
	if member.Balance.String() != "200.00" || member.GiftBalance.String() != "0.00" {
		t.Fatalf("second debit must not land: %s / %s", member.Balance, member.GiftBalance)
	}
	if member.TotalConsume.String() != "350.00" || member.Points != 350 {
		t.Fatalf("accruals from rejected debit must not land: %s / %d", member.TotalConsume, member.Points)
	}

	// 库存同理：快照库存 10，清空后按快照再扣一次拿不到行
	affected, err = productRepo.AdjustStock(f.product.ID, -10)
	if err != nil || affected != 1 {
		t.Fatalf("drain stock: affected %d err %v", affected, err)
	}
	affected, err = productRepo.AdjustStock(f.product.ID, -1)
	if err != nil {
		t.Fatalf("stale stock decrement: %v", err)
	}
	if affected != 0 {
		t.Fatalf("stale stock decrement want 0 rows got %d", affected)
	}
	if f.reloadProduct(t).Stock != 0 {
		t.Fatalf("stock must stop at 0, got %d", f.reloadProduct(t).Stock)
	}
}

func TestConsumeCashKeepsBalances(t *testing.T) {
	f := newConsumeFixture(t)

	record, err := f.svc.Consume(ConsumeInput{
		MemberID:      f.member.ID,
		Items:         []ConsumeItemInput{{ItemType: constants.ConsumeItemTypeService, ItemID: f.item.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodCash,
		OperatorID:    1,
	})
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if record.CashPaid.String() != "180.00" || record.BalancePaid.String() != "0.00" || record.GiftPaid.String() != "0.00" {
		t.Fatalf("cash split wrong: %+v", record)
	}

	member := f.reloadMember(t)
	if member.Balance.String() != "500.00" || member.GiftBalance.String() != "50.00" {
		t.Fatalf("cash payment must not touch balances: %s / %s", member.Balance, member.GiftBalance)
	}
	if member.TotalConsume.String() != "180.00" {
		t.Fatalf("total consume want 180.00 got %s", member.TotalConsume)
	}
	if member.Points != 270 {
		t.Fatalf("points want 270 got %d", member.Points)
	}
}

func TestConsumeInsufficientStockRollsBack(t *testing.T) {
	f := newConsumeFixture(t)

	_, err := f.svc.Consume(ConsumeInput{
		MemberID:      f.member.ID,
		Items:         []ConsumeItemInput{{ItemType: constants.ConsumeItemTypeProduct, ItemID: f.product.ID, Quantity: 11}},
		PaymentMethod: constants.PaymentMethodCash,
		OperatorID:    1,
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}
	// 失败原因要能定位到具体商品
	if !strings.Contains(err.Error(), f.product.Name) {
		t.Fatalf("error should name the item, got %v", err)
	}

	member := f.reloadMember(t)
	if member.TotalConsume.String() != "0.00" || member.Points != 0 {
		t.Fatalf("accruals must roll back: %s / %d", member.TotalConsume, member.Points)
	}
	if f.reloadProduct(t).Stock != 10 {
		t.Fatalf("stock must be untouched")
	}

	var count int64
	f.db.Model(&models.ConsumeRecord{}).Count(&count)
	if count != 0 {
		t.Fatalf("no record should survive, got %d", count)
	}
}

func TestConsumeValidation(t *testing.T) {
	f := newConsumeFixture(t)

	cases := []struct {
		name  string
		input ConsumeInput
		want  error
	}{
		{
			name:  "empty_items",
			input: ConsumeInput{MemberID: f.member.ID, PaymentMethod: constants.PaymentMethodCash},
			want:  ErrInvalidConsumeItem,
		},
		{
			name: "zero_quantity",
			input: ConsumeInput{
				MemberID:      f.member.ID,
				Items:         []ConsumeItemInput{{ItemType: constants.ConsumeItemTypeProduct, ItemID: f.product.ID, Quantity: 0}},
				PaymentMethod: constants.PaymentMethodCash,
			},
			want: ErrInvalidQuantity,
		},
		{
			name: "bad_item_type",
			input: ConsumeInput{
				MemberID:      f.member.ID,
				Items:         []ConsumeItemInput{{ItemType: "coupon", ItemID: 1, Quantity: 1}},
				PaymentMethod: constants.PaymentMethodCash,
			},
			want: ErrInvalidConsumeItem,
		},
		{
			name: "bad_payment_method",
			input: ConsumeInput{
				MemberID:      f.member.ID,
				Items:         []ConsumeItemInput{{ItemType: constants.ConsumeItemTypeProduct, ItemID: f.product.ID, Quantity: 1}},
				PaymentMethod: "points",
			},
			want: ErrPaymentMethodInvalid,
		},
		{
			name: "missing_member",
			input: ConsumeInput{
				MemberID:      9999,
				Items:         []ConsumeItemInput{{ItemType: constants.ConsumeItemTypeProduct, ItemID: f.product.ID, Quantity: 1}},
				PaymentMethod: constants.PaymentMethodCash,
			},
			want: ErrMemberNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.Consume(tc.input); err != tc.want {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}
}

func TestConsumeRejectsFrozenMemberAndOffSaleProduct(t *testing.T) {
	f := newConsumeFixture(t)

	if err := f.db.Model(&models.Product{}).Where("id = ?", f.product.ID).
		Update("status", constants.ProductStatusOffSale).Error; err != nil {
		t.Fatalf("off-sale product: %v", err)
	}
	_, err := f.svc.Consume(ConsumeInput{
		MemberID:      f.member.ID,
		Items:         []ConsumeItemInput{{ItemType: constants.ConsumeItemTypeProduct, ItemID: f.product.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodCash,
	})
	if !errors.Is(err, ErrProductOffSale) {
		t.Fatalf("want ErrProductOffSale got %v", err)
	}

	if err := f.db.Model(&models.Member{}).Where("id = ?", f.member.ID).
		Update("status", constants.MemberStatusFrozen).Error; err != nil {
		t.Fatalf("freeze member: %v", err)
	}
	_, err = f.svc.Consume(ConsumeInput{
		MemberID:      f.member.ID,
		Items:         []ConsumeItemInput{{ItemType: constants.ConsumeItemTypeService, ItemID: f.item.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodCash,
	})
	if err != ErrMemberFrozen {
		t.Fatalf("want ErrMemberFrozen got %v", err)
	}
}

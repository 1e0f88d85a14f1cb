package service

import (
	"testing"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"

	"gorm.io/gorm"
)

type recordingNotifier struct {
	productIDs []uint
}

func (n *recordingNotifier) NotifyLowStock(productID uint) error {
	n.productIDs = append(n.productIDs, productID)
	return nil
}

func newStockFixture(t *testing.T) (*StockService, *gorm.DB, *models.Product, *recordingNotifier) {
	t.Helper()
	db := newTestDB(t)
	product := &models.Product{
		Name:     "烟酰胺精华液",
		Price:    models.NewMoneyFromInt(268),
		Stock:    5,
		MinStock: 3,
		Status:   constants.ProductStatusOnSale,
	}
	mustCreate(t, db, product)

	notifier := &recordingNotifier{}
	svc := NewStockService(repository.NewProductRepository(db), repository.NewStockLogRepository(db), notifier)
	return svc, db, product, notifier
}

func reloadStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return product.Stock
}

func TestStockAdjustInAndOut(t *testing.T) {
	svc, db, product, notifier := newStockFixture(t)

	stockLog, err := svc.Adjust(StockAdjustInput{
		ProductID:  product.ID,
		Direction:  constants.StockDirectionIn,
		Quantity:   10,
		OperatorID: 1,
	})
	if err != nil {
		t.Fatalf("adjust in: %v", err)
	}
	if stockLog.BeforeStock != 5 || stockLog.AfterStock != 15 {
		t.Fatalf("in log wrong: %+v", stockLog)
	}
	if stockLog.Reason != constants.StockReasonPurchase {
		t.Fatalf("default in reason want purchase, got %s", stockLog.Reason)
	}
	if got := reloadStock(t, db, product.ID); got != 15 {
		t.Fatalf("stock want 15 got %d", got)
	}
	if len(notifier.productIDs) != 0 {
		t.Fatalf("inbound adjustment must not notify")
	}

	stockLog, err = svc.Adjust(StockAdjustInput{
		ProductID:  product.ID,
		Direction:  constants.StockDirectionOut,
		Quantity:   12,
		Reason:     "盘点报损",
		OperatorID: 1,
	})
	if err != nil {
		t.Fatalf("adjust out: %v", err)
	}
	if stockLog.BeforeStock != 15 || stockLog.AfterStock != 3 || stockLog.Reason != "盘点报损" {
		t.Fatalf("out log wrong: %+v", stockLog)
	}
	if got := reloadStock(t, db, product.ID); got != 3 {
		t.Fatalf("stock want 3 got %d", got)
	}
	if len(notifier.productIDs) != 1 || notifier.productIDs[0] != product.ID {
		t.Fatalf("outbound adjustment should notify, got %v", notifier.productIDs)
	}

	var count int64
	db.Model(&models.StockLog{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 2 {
		t.Fatalf("log count want 2 got %d", count)
	}
}

func TestStockAdjustCannotGoNegative(t *testing.T) {
	svc, db, product, _ := newStockFixture(t)

	_, err := svc.Adjust(StockAdjustInput{
		ProductID:  product.ID,
		Direction:  constants.StockDirectionOut,
		Quantity:   6,
		OperatorID: 1,
	})
	if err != ErrInsufficientStock {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}
	if got := reloadStock(t, db, product.ID); got != 5 {
		t.Fatalf("stock must be untouched, got %d", got)
	}

	var count int64
	db.Model(&models.StockLog{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed adjustment must not log, got %d", count)
	}
}

func TestStockAdjustValidation(t *testing.T) {
	svc, _, product, _ := newStockFixture(t)

	if _, err := svc.Adjust(StockAdjustInput{ProductID: product.ID, Direction: constants.StockDirectionIn, Quantity: 0}); err != ErrInvalidQuantity {
		t.Fatalf("zero quantity want ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.Adjust(StockAdjustInput{ProductID: product.ID, Direction: "sideways", Quantity: 1}); err != ErrInvalidQuantity {
		t.Fatalf("bad direction want ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.Adjust(StockAdjustInput{ProductID: 9999, Direction: constants.StockDirectionIn, Quantity: 1}); err != ErrProductNotFound {
		t.Fatalf("missing product want ErrProductNotFound, got %v", err)
	}
}

func TestListLowStock(t *testing.T) {
	svc, db, product, _ := newStockFixture(t)

	// 高于阈值的产品不在预警名单
	mustCreate(t, db, &models.Product{
		Name:     "库存充足产品",
		Price:    models.NewMoneyFromInt(99),
		Stock:    50,
		MinStock: 5,
		Status:   constants.ProductStatusOnSale,
	})
	if _, err := svc.Adjust(StockAdjustInput{
		ProductID:  product.ID,
		Direction:  constants.StockDirectionOut,
		Quantity:   3,
		OperatorID: 1,
	}); err != nil {
		t.Fatalf("adjust out: %v", err)
	}

	low, err := svc.ListLowStock(10)
	if err != nil {
		t.Fatalf("list low stock: %v", err)
	}
	if len(low) != 1 || low[0].ID != product.ID {
		t.Fatalf("low stock list wrong: %+v", low)
	}
}

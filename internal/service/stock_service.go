package service

import (
	"strings"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/logger"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService 库存服务
type StockService struct {
	productRepo  repository.ProductRepository
	stockLogRepo repository.StockLogRepository
	notifier     LowStockNotifier
}

// LowStockNotifier 低库存提醒投递（可选，未配置时为 nil）
type LowStockNotifier interface {
	NotifyLowStock(productID uint) error
}

// StockAdjustInput 手工库存调整输入
type StockAdjustInput struct {
	ProductID  uint
	Direction  string // in / out
	Quantity   int
	Reason     string
	OperatorID uint
}

// NewStockService 创建库存服务
func NewStockService(productRepo repository.ProductRepository, stockLogRepo repository.StockLogRepository, notifier LowStockNotifier) *StockService {
	return &StockService{
		productRepo:  productRepo,
		stockLogRepo: stockLogRepo,
		notifier:     notifier,
	}
}

// Adjust 手工调整库存（采购入库、盘点调整等）。锁定产品行，出库不允许扣成负数，
// 调整与流水在同一事务内完成。
func (s *StockService) Adjust(input StockAdjustInput) (*models.StockLog, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	delta := input.Quantity
	switch input.Direction {
	case constants.StockDirectionIn:
	case constants.StockDirectionOut:
		delta = -input.Quantity
	default:
		return nil, ErrInvalidQuantity
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		if input.Direction == constants.StockDirectionIn {
			reason = constants.StockReasonPurchase
		} else {
			reason = constants.StockReasonAdjustment
		}
	}

	var stockLog *models.StockLog
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		product, err := productRepo.GetByIDForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}
		if product.Stock+delta < 0 {
			return ErrInsufficientStock
		}
		affected, err := productRepo.AdjustStock(product.ID, delta)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientStock
		}
		stockLog = &models.StockLog{
			ProductID:   product.ID,
			Direction:   input.Direction,
			Quantity:    input.Quantity,
			BeforeStock: product.Stock,
			AfterStock:  product.Stock + delta,
			OperatorID:  input.OperatorID,
			Reason:      reason,
			Reference:   uuid.NewString(),
		}
		return s.stockLogRepo.WithTx(tx).Create(stockLog)
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && delta < 0 {
		if err := s.notifier.NotifyLowStock(input.ProductID); err != nil {
			logger.Warnw("low_stock_notify_failed",
				"product_id", input.ProductID,
				"error", err,
			)
		}
	}
	return stockLog, nil
}

// ListLogs 分页查询库存流水
func (s *StockService) ListLogs(filter repository.StockLogListFilter) ([]models.StockLog, int64, error) {
	return s.stockLogRepo.List(filter)
}

// ListLowStock 获取低库存产品
func (s *StockService) ListLowStock(limit int) ([]models.Product, error) {
	return s.productRepo.ListLowStock(limit)
}

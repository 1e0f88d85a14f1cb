package service

import (
	"fmt"
	"strings"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/logger"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ConsumeService 消费结算服务
type ConsumeService struct {
	memberRepo   repository.MemberRepository
	levelRepo    repository.MemberLevelRepository
	productRepo  repository.ProductRepository
	serviceRepo  repository.ServiceItemRepository
	consumeRepo  repository.ConsumeRepository
	stockLogRepo repository.StockLogRepository
}

// ConsumeItemInput 消费明细输入。单价与名称可由收银员改写（议价、临时改名），
// 缺省时按目录价与目录名结算。
type ConsumeItemInput struct {
	ItemType  string // product / service
	ItemID    uint
	ItemName  string        // 可选，展示名改写
	UnitPrice *models.Money // 可选，报给顾客的单价
	Quantity  int
}

// ConsumeInput 消费结算输入
type ConsumeInput struct {
	MemberID      uint
	Items         []ConsumeItemInput
	PaymentMethod string
	OperatorID    uint
	Remark        string
}

// NewConsumeService 创建消费结算服务
func NewConsumeService(
	memberRepo repository.MemberRepository,
	levelRepo repository.MemberLevelRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceItemRepository,
	consumeRepo repository.ConsumeRepository,
	stockLogRepo repository.StockLogRepository,
) *ConsumeService {
	return &ConsumeService{
		memberRepo:   memberRepo,
		levelRepo:    levelRepo,
		productRepo:  productRepo,
		serviceRepo:  serviceRepo,
		consumeRepo:  consumeRepo,
		stockLogRepo: stockLogRepo,
	}
}

// pricedItem 事务内定价后的明细
type pricedItem struct {
	input     ConsumeItemInput
	name      string
	unitPrice models.Money
	subtotal  models.Money
	rawTotal  decimal.Decimal // 折扣前金额
}

// Consume 会员消费结算。按等级折扣定价，余额支付走赠送优先的扣款顺序，
// 产品出库与积分累加在同一事务内完成，任一步骤失败整单回滚。
func (s *ConsumeService) Consume(input ConsumeInput) (*models.ConsumeRecord, error) {
	if len(input.Items) == 0 {
		return nil, ErrInvalidConsumeItem
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.UnitPrice != nil && item.UnitPrice.Decimal.IsNegative() {
			return nil, ErrInvalidAmount
		}
		switch item.ItemType {
		case constants.ConsumeItemTypeProduct, constants.ConsumeItemTypeService:
		default:
			return nil, ErrInvalidConsumeItem
		}
	}
	if !isValidConsumeMethod(input.PaymentMethod) {
		return nil, ErrPaymentMethodInvalid
	}

	var record *models.ConsumeRecord
	err := s.consumeRepo.Transaction(func(tx *gorm.DB) error {
		memberRepo := s.memberRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		member, err := memberRepo.GetByIDForUpdate(input.MemberID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrMemberNotFound
		}
		if member.Status == constants.MemberStatusFrozen {
			return ErrMemberFrozen
		}

		discount := decimal.NewFromInt(1)
		pointsRate := decimal.NewFromInt(1)
		if member.LevelID != 0 {
			// 等级缺失按无折扣处理，不阻塞结算
			level, err := s.levelRepo.WithTx(tx).GetByID(member.LevelID)
			if err != nil {
				return err
			}
			if level != nil {
				discount = level.Discount
				pointsRate = level.PointsRate
			}
		}

		priced, err := s.priceItems(tx, input.Items, discount)
		if err != nil {
			return err
		}

		total := decimal.Zero
		rawTotal := decimal.Zero
		for _, item := range priced {
			total = total.Add(item.subtotal.Decimal)
			rawTotal = rawTotal.Add(item.rawTotal)
		}
		totalAmount := models.NewMoneyFromDecimal(total)
		discountAmount := models.NewMoneyFromDecimal(rawTotal.Sub(total))

		balancePaid := models.ZeroMoney()
		giftPaid := models.ZeroMoney()
		cashPaid := models.ZeroMoney()

		if input.PaymentMethod == constants.PaymentMethodBalance {
			available := member.Balance.Decimal.Add(member.GiftBalance.Decimal)
			if available.LessThan(totalAmount.Decimal) {
				return ErrInsufficientBalance
			}
			// 赠送余额优先，不足部分再扣本金
			gift := decimal.Min(member.GiftBalance.Decimal, totalAmount.Decimal)
			giftPaid = models.NewMoneyFromDecimal(gift)
			balancePaid = models.NewMoneyFromDecimal(totalAmount.Decimal.Sub(gift))

			pointsEarned := totalAmount.Decimal.Mul(pointsRate).IntPart()
			affected, err := memberRepo.ApplyConsumption(member.ID, models.Member{
				Balance:      balancePaid,
				GiftBalance:  giftPaid,
				TotalConsume: totalAmount,
				Points:       pointsEarned,
			})
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientBalance
			}
			record = s.buildRecord(input, member.ID, totalAmount, discountAmount, balancePaid, giftPaid, cashPaid, pointsEarned, priced)
		} else {
			cashPaid = totalAmount
			pointsEarned := totalAmount.Decimal.Mul(pointsRate).IntPart()
			if err := memberRepo.UpdateFields(member.ID, map[string]interface{}{
				"total_consume": gorm.Expr("total_consume + ?", totalAmount.Decimal),
				"points":        gorm.Expr("points + ?", pointsEarned),
			}); err != nil {
				return err
			}
			record = s.buildRecord(input, member.ID, totalAmount, discountAmount, balancePaid, giftPaid, cashPaid, pointsEarned, priced)
		}

		if err := s.consumeRepo.WithTx(tx).Create(record); err != nil {
			return err
		}

		// 产品出库并留痕，库存不足整单失败
		for _, item := range priced {
			if item.input.ItemType != constants.ConsumeItemTypeProduct {
				continue
			}
			product, err := productRepo.GetByIDForUpdate(item.input.ItemID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: product %d", ErrProductNotFound, item.input.ItemID)
			}
			affected, err := productRepo.AdjustStock(product.ID, -item.input.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w: %s (available %d)", ErrInsufficientStock, product.Name, product.Stock)
			}
			stockLog := &models.StockLog{
				ProductID:        product.ID,
				Direction:        constants.StockDirectionOut,
				Quantity:         item.input.Quantity,
				BeforeStock:      product.Stock,
				AfterStock:       product.Stock - item.input.Quantity,
				OperatorID:       input.OperatorID,
				RelatedConsumeID: &record.ID,
				Reason:           constants.StockReasonSale,
				Reference:        uuid.NewString(),
			}
			if err := s.stockLogRepo.WithTx(tx).Create(stockLog); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("consume_settled",
		"record_no", record.RecordNo,
		"member_id", record.MemberID,
		"total_amount", record.TotalAmount.String(),
		"payment_method", record.PaymentMethod,
		"points_earned", record.PointsEarned,
	)
	return record, nil
}

// GetRecord 获取消费记录
func (s *ConsumeService) GetRecord(id uint) (*models.ConsumeRecord, error) {
	record, err := s.consumeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrConsumeRecordNotFound
	}
	return record, nil
}

// ListRecords 分页查询消费记录
func (s *ConsumeService) ListRecords(filter repository.ConsumeRecordListFilter) ([]models.ConsumeRecord, int64, error) {
	return s.consumeRepo.List(filter)
}

// priceItems 事务内按报价或目录价与折扣率对明细定价，价格随单快照
func (s *ConsumeService) priceItems(tx *gorm.DB, items []ConsumeItemInput, discount decimal.Decimal) ([]pricedItem, error) {
	priced := make([]pricedItem, 0, len(items))
	productRepo := s.productRepo.WithTx(tx)
	serviceRepo := s.serviceRepo.WithTx(tx)

	for _, item := range items {
		var name string
		var unitPrice models.Money
		switch item.ItemType {
		case constants.ConsumeItemTypeProduct:
			product, err := productRepo.GetByID(item.ItemID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, fmt.Errorf("%w: product %d", ErrProductNotFound, item.ItemID)
			}
			if product.Status != constants.ProductStatusOnSale {
				return nil, fmt.Errorf("%w: %s", ErrProductOffSale, product.Name)
			}
			name = product.Name
			unitPrice = product.Price
		case constants.ConsumeItemTypeService:
			svc, err := serviceRepo.GetByID(item.ItemID)
			if err != nil {
				return nil, err
			}
			if svc == nil {
				return nil, fmt.Errorf("%w: service %d", ErrServiceNotFound, item.ItemID)
			}
			if svc.Status != constants.ServiceStatusActive {
				return nil, fmt.Errorf("%w: %s", ErrServiceInactive, svc.Name)
			}
			name = svc.Name
			unitPrice = svc.Price
		}
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		}
		if override := strings.TrimSpace(item.ItemName); override != "" {
			name = override
		}

		quantity := decimal.NewFromInt(int64(item.Quantity))
		raw := unitPrice.Decimal.Mul(quantity)
		subtotal := models.NewMoneyFromDecimal(raw.Mul(discount))
		priced = append(priced, pricedItem{
			input:     item,
			name:      name,
			unitPrice: unitPrice,
			subtotal:  subtotal,
			rawTotal:  raw,
		})
	}
	return priced, nil
}

func (s *ConsumeService) buildRecord(
	input ConsumeInput,
	memberID uint,
	totalAmount, discountAmount, balancePaid, giftPaid, cashPaid models.Money,
	pointsEarned int64,
	priced []pricedItem,
) *models.ConsumeRecord {
	items := make([]models.ConsumeItem, 0, len(priced))
	for _, item := range priced {
		items = append(items, models.ConsumeItem{
			ItemType:  item.input.ItemType,
			ItemID:    item.input.ItemID,
			ItemName:  item.name,
			UnitPrice: item.unitPrice,
			Quantity:  item.input.Quantity,
			Subtotal:  item.subtotal,
		})
	}
	return &models.ConsumeRecord{
		RecordNo:       generateRecordNo("C"),
		MemberID:       memberID,
		TotalAmount:    totalAmount,
		DiscountAmount: discountAmount,
		ActualAmount:   totalAmount,
		BalancePaid:    balancePaid,
		GiftPaid:       giftPaid,
		CashPaid:       cashPaid,
		PaymentMethod:  input.PaymentMethod,
		PointsEarned:   pointsEarned,
		OperatorID:     input.OperatorID,
		Status:         constants.RecordStatusSuccess,
		Remark:         input.Remark,
		Items:          items,
	}
}

func isValidConsumeMethod(method string) bool {
	switch method {
	case constants.PaymentMethodBalance,
		constants.PaymentMethodCash,
		constants.PaymentMethodWechat,
		constants.PaymentMethodAlipay,
		constants.PaymentMethodBankCard:
		return true
	}
	return false
}

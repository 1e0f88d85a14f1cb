package service

import (
	"context"
	"fmt"
	"time"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/logger"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"

	"gorm.io/gorm"
)

// QRCollector 扫码收款网关（可选，未配置时为 nil）
type QRCollector interface {
	CreateNativeOrder(ctx context.Context, recordNo string, amount models.Money, description string) (string, error)
}

// RechargeService 充值服务
type RechargeService struct {
	memberRepo   repository.MemberRepository
	levelRepo    repository.MemberLevelRepository
	rechargeRepo repository.RechargeRepository
	packageRepo  repository.RechargePackageRepository
	collector    QRCollector
}

// RechargeInput 充值输入
type RechargeInput struct {
	MemberID      uint
	Amount        models.Money
	GiftAmount    models.Money
	PaymentMethod string
	PackageID     *uint
	OperatorID    uint
	Remark        string
}

// NewRechargeService 创建充值服务
func NewRechargeService(
	memberRepo repository.MemberRepository,
	levelRepo repository.MemberLevelRepository,
	rechargeRepo repository.RechargeRepository,
	packageRepo repository.RechargePackageRepository,
	collector QRCollector,
) *RechargeService {
	return &RechargeService{
		memberRepo:   memberRepo,
		levelRepo:    levelRepo,
		rechargeRepo: rechargeRepo,
		packageRepo:  packageRepo,
		collector:    collector,
	}
}

// Recharge 会员充值。套餐充值时金额与赠送额以套餐为准；本金与赠送余额分开入账，
// 只有本金计入累计充值并参与等级评定。记录、入账与等级变更在同一事务内完成。
func (s *RechargeService) Recharge(ctx context.Context, input RechargeInput) (*models.RechargeRecord, error) {
	if input.PackageID != nil {
		pkg, err := s.packageRepo.GetByID(*input.PackageID)
		if err != nil {
			return nil, err
		}
		if pkg == nil {
			return nil, ErrPackageNotFound
		}
		if pkg.Status != constants.RechargePackageStatusActive {
			return nil, ErrPackageInactive
		}
		input.Amount = pkg.Amount
		input.GiftAmount = pkg.GiftAmount
	}
	if !input.Amount.Decimal.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if input.GiftAmount.Decimal.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if !isValidRechargeMethod(input.PaymentMethod) {
		return nil, ErrPaymentMethodInvalid
	}

	var record *models.RechargeRecord
	err := s.rechargeRepo.Transaction(func(tx *gorm.DB) error {
		memberRepo := s.memberRepo.WithTx(tx)
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

		newTotalRecharge := models.NewMoneyFromDecimal(member.TotalRecharge.Decimal.Add(input.Amount.Decimal))
		updates := map[string]interface{}{
			"balance":        gorm.Expr("balance + ?", input.Amount.Decimal),
			"gift_balance":   gorm.Expr("gift_balance + ?", input.GiftAmount.Decimal),
			"total_recharge": gorm.Expr("total_recharge + ?", input.Amount.Decimal),
		}

		// 等级按累计充值重新评定，只升不降由门槛单调性保证
		levels, err := s.levelRepo.WithTx(tx).ListOrderedDesc()
		if err != nil {
			return err
		}
		if target := HighestQualifiedLevel(levels, newTotalRecharge); target != nil && target.ID != member.LevelID {
			updates["level_id"] = target.ID
			logger.Infow("member_level_changed",
				"member_id", member.ID,
				"from_level_id", member.LevelID,
				"to_level_id", target.ID,
				"total_recharge", newTotalRecharge.String(),
			)
		}

		if err := memberRepo.UpdateFields(member.ID, updates); err != nil {
			return err
		}

		record = &models.RechargeRecord{
			RecordNo:      generateRecordNo("R"),
			MemberID:      member.ID,
			Amount:        input.Amount,
			GiftAmount:    input.GiftAmount,
			PaymentMethod: input.PaymentMethod,
			PackageID:     input.PackageID,
			OperatorID:    input.OperatorID,
			Status:        constants.RecordStatusSuccess,
			Remark:        input.Remark,
		}
		return s.rechargeRepo.WithTx(tx).Create(record)
	})
	if err != nil {
		return nil, err
	}

	// 微信收款码为柜台收款辅助信息，生成失败不影响已完成的充值
	if input.PaymentMethod == constants.PaymentMethodWechat && s.collector != nil {
		codeURL, err := s.collector.CreateNativeOrder(ctx, record.RecordNo, record.Amount, "会员充值")
		if err != nil {
			logger.Warnw("wechat_qr_create_failed",
				"record_no", record.RecordNo,
				"error", err,
			)
		} else {
			record.CodeURL = codeURL
		}
	}
	return record, nil
}

// GetRecord 获取充值记录
func (s *RechargeService) GetRecord(id uint) (*models.RechargeRecord, error) {
	record, err := s.rechargeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRechargeRecordNotFound
	}
	return record, nil
}

// ListRecords 分页查询充值记录
func (s *RechargeService) ListRecords(filter repository.RechargeRecordListFilter) ([]models.RechargeRecord, int64, error) {
	return s.rechargeRepo.List(filter)
}

func isValidRechargeMethod(method string) bool {
	switch method {
	case constants.PaymentMethodCash,
		constants.PaymentMethodWechat,
		constants.PaymentMethodAlipay,
		constants.PaymentMethodBankCard:
		return true
	}
	return false
}

// generateRecordNo 生成单号（前缀 + 时间戳 + 纳秒尾数）
func generateRecordNo(prefix string) string {
	now := time.Now()
	return fmt.Sprintf("%s%s%06d", prefix, now.Format("20060102150405"), now.Nanosecond()/1000)
}

package repository

import (
	"errors"
	"time"

	"github.com/meiye-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RechargeRepository 充值记录数据访问接口（只追加）
type RechargeRepository interface {
	Create(record *models.RechargeRecord) error
	GetByID(id uint) (*models.RechargeRecord, error)
	GetByRecordNo(recordNo string) (*models.RechargeRecord, error)
	List(filter RechargeRecordListFilter) ([]models.RechargeRecord, int64, error)
	SumAmount(from, to time.Time) (decimal.Decimal, int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormRechargeRepository
}

// GormRechargeRepository GORM 充值记录仓储实现
type GormRechargeRepository struct {
	db *gorm.DB
}

// NewRechargeRepository 创建充值记录仓库
func NewRechargeRepository(db *gorm.DB) *GormRechargeRepository {
	return &GormRechargeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRechargeRepository) WithTx(tx *gorm.DB) *GormRechargeRepository {
	if tx == nil {
		return r
	}
	return &GormRechargeRepository{db: tx}
}

// Transaction 在单个事务中执行
func (r *GormRechargeRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 追加充值记录
func (r *GormRechargeRepository) Create(record *models.RechargeRecord) error {
	return r.db.Create(record).Error
}

// GetByID 根据 ID 获取充值记录
func (r *GormRechargeRepository) GetByID(id uint) (*models.RechargeRecord, error) {
	if id == 0 {
		return nil, nil
	}
	var record models.RechargeRecord
	if err := r.db.Preload("Member").Preload("Package").
		First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetByRecordNo 根据单号获取充值记录
func (r *GormRechargeRepository) GetByRecordNo(recordNo string) (*models.RechargeRecord, error) {
	if recordNo == "" {
		return nil, nil
	}
	var record models.RechargeRecord
	if err := r.db.Where("record_no = ?", recordNo).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// SumAmount 统计时间段内的充值本金总额与笔数
func (r *GormRechargeRepository) SumAmount(from, to time.Time) (decimal.Decimal, int64, error) {
	var result struct {
		Total decimal.Decimal
		Count int64
	}
	if err := r.db.Model(&models.RechargeRecord{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return result.Total, result.Count, nil
}

// List 分页查询充值记录
func (r *GormRechargeRepository) List(filter RechargeRecordListFilter) ([]models.RechargeRecord, int64, error) {
	query := r.db.Model(&models.RechargeRecord{})
	if filter.MemberID != 0 {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.OperatorID != 0 {
		query = query.Where("operator_id = ?", filter.OperatorID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var records []models.RechargeRecord
	if err := query.Preload("Member").Preload("Package").
		Order("id desc").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

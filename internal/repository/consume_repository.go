package repository

import (
	"errors"
	"time"

	"github.com/meiye-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ConsumeRepository 消费记录数据访问接口（只追加）
type ConsumeRepository interface {
	Create(record *models.ConsumeRecord) error
	GetByID(id uint) (*models.ConsumeRecord, error)
	GetByRecordNo(recordNo string) (*models.ConsumeRecord, error)
	List(filter ConsumeRecordListFilter) ([]models.ConsumeRecord, int64, error)
	SumTotalAmount(from, to time.Time) (decimal.Decimal, int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormConsumeRepository
}

// GormConsumeRepository GORM 消费记录仓储实现
type GormConsumeRepository struct {
	db *gorm.DB
}

// NewConsumeRepository 创建消费记录仓库
func NewConsumeRepository(db *gorm.DB) *GormConsumeRepository {
	return &GormConsumeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormConsumeRepository) WithTx(tx *gorm.DB) *GormConsumeRepository {
	if tx == nil {
		return r
	}
	return &GormConsumeRepository{db: tx}
}

// Transaction 在单个事务中执行
func (r *GormConsumeRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 追加消费记录（级联写入明细）
func (r *GormConsumeRepository) Create(record *models.ConsumeRecord) error {
	return r.db.Create(record).Error
}

// GetByID 根据 ID 获取消费记录（含明细）
func (r *GormConsumeRepository) GetByID(id uint) (*models.ConsumeRecord, error) {
	if id == 0 {
		return nil, nil
	}
	var record models.ConsumeRecord
	if err := r.db.Preload("Items").Preload("Member").
		First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetByRecordNo 根据单号获取消费记录
func (r *GormConsumeRepository) GetByRecordNo(recordNo string) (*models.ConsumeRecord, error) {
	if recordNo == "" {
		return nil, nil
	}
	var record models.ConsumeRecord
	if err := r.db.Preload("Items").
		Where("record_no = ?", recordNo).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// SumTotalAmount 统计时间段内的消费总额与笔数
func (r *GormConsumeRepository) SumTotalAmount(from, to time.Time) (decimal.Decimal, int64, error) {
	var result struct {
		Total decimal.Decimal
		Count int64
	}
	if err := r.db.Model(&models.ConsumeRecord{}).
		Select("COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return result.Total, result.Count, nil
}

// List 分页查询消费记录
func (r *GormConsumeRepository) List(filter ConsumeRecordListFilter) ([]models.ConsumeRecord, int64, error) {
	query := r.db.Model(&models.ConsumeRecord{})
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

	var records []models.ConsumeRecord
	if err := query.Preload("Items").Preload("Member").
		Order("id desc").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

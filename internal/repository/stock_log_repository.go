package repository

import (
	"github.com/meiye-next/internal/models"

	"gorm.io/gorm"
)

// StockLogRepository 库存流水数据访问接口（只追加）
type StockLogRepository interface {
	Create(log *models.StockLog) error
	List(filter StockLogListFilter) ([]models.StockLog, int64, error)
	WithTx(tx *gorm.DB) *GormStockLogRepository
}

// GormStockLogRepository GORM 库存流水仓储实现
type GormStockLogRepository struct {
	db *gorm.DB
}

// NewStockLogRepository 创建库存流水仓库
func NewStockLogRepository(db *gorm.DB) *GormStockLogRepository {
	return &GormStockLogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStockLogRepository) WithTx(tx *gorm.DB) *GormStockLogRepository {
	if tx == nil {
		return r
	}
	return &GormStockLogRepository{db: tx}
}

// Create 追加库存流水
func (r *GormStockLogRepository) Create(log *models.StockLog) error {
	return r.db.Create(log).Error
}

// List 分页查询库存流水
func (r *GormStockLogRepository) List(filter StockLogListFilter) ([]models.StockLog, int64, error) {
	query := r.db.Model(&models.StockLog{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Direction != "" {
		query = query.Where("direction = ?", filter.Direction)
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

	var logs []models.StockLog
	if err := query.Preload("Product").Order("id desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

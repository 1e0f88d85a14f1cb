package repository

import (
	"errors"
	"strings"

	"github.com/meiye-next/internal/models"

	"gorm.io/gorm"
)

// ServiceItemRepository 服务项目数据访问接口
type ServiceItemRepository interface {
	Create(item *models.ServiceItem) error
	GetByID(id uint) (*models.ServiceItem, error)
	List(filter ServiceItemListFilter) ([]models.ServiceItem, int64, error)
	Update(item *models.ServiceItem) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormServiceItemRepository
}

// GormServiceItemRepository GORM 服务项目仓储实现
type GormServiceItemRepository struct {
	db *gorm.DB
}

// NewServiceItemRepository 创建服务项目仓库
func NewServiceItemRepository(db *gorm.DB) *GormServiceItemRepository {
	return &GormServiceItemRepository{db: db}
}

// WithTx 绑定事务
func (r *GormServiceItemRepository) WithTx(tx *gorm.DB) *GormServiceItemRepository {
	if tx == nil {
		return r
	}
	return &GormServiceItemRepository{db: tx}
}

// Create 创建服务项目
func (r *GormServiceItemRepository) Create(item *models.ServiceItem) error {
	return r.db.Create(item).Error
}

// GetByID 根据 ID 获取服务项目
func (r *GormServiceItemRepository) GetByID(id uint) (*models.ServiceItem, error) {
	if id == 0 {
		return nil, nil
	}
	var item models.ServiceItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List 分页查询服务项目
func (r *GormServiceItemRepository) List(filter ServiceItemListFilter) ([]models.ServiceItem, int64, error) {
	query := r.db.Model(&models.ServiceItem{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var items []models.ServiceItem
	if err := query.Order("id desc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update 更新服务项目
func (r *GormServiceItemRepository) Update(item *models.ServiceItem) error {
	return r.db.Save(item).Error
}

// Delete 删除服务项目（软删除）
func (r *GormServiceItemRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.ServiceItem{}, id).Error
}

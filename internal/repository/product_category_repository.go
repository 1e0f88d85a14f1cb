package repository

import (
	"errors"
	"strings"

	"github.com/meiye-next/internal/models"

	"gorm.io/gorm"
)

// ProductCategoryRepository 产品分类数据访问接口
type ProductCategoryRepository interface {
	Create(category *models.ProductCategory) error
	GetByID(id uint) (*models.ProductCategory, error)
	GetByName(name string) (*models.ProductCategory, error)
	ListAll() ([]models.ProductCategory, error)
	Update(category *models.ProductCategory) error
	Delete(id uint) error
	CountProducts(categoryID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormProductCategoryRepository
}

// GormProductCategoryRepository GORM 产品分类仓储实现
type GormProductCategoryRepository struct {
	db *gorm.DB
}

// NewProductCategoryRepository 创建产品分类仓库
func NewProductCategoryRepository(db *gorm.DB) *GormProductCategoryRepository {
	return &GormProductCategoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductCategoryRepository) WithTx(tx *gorm.DB) *GormProductCategoryRepository {
	if tx == nil {
		return r
	}
	return &GormProductCategoryRepository{db: tx}
}

// Create 创建分类
func (r *GormProductCategoryRepository) Create(category *models.ProductCategory) error {
	return r.db.Create(category).Error
}

// GetByID 根据 ID 获取分类
func (r *GormProductCategoryRepository) GetByID(id uint) (*models.ProductCategory, error) {
	if id == 0 {
		return nil, nil
	}
	var category models.ProductCategory
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetByName 根据名称获取分类
func (r *GormProductCategoryRepository) GetByName(name string) (*models.ProductCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var category models.ProductCategory
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ListAll 按排序权重获取全部分类
func (r *GormProductCategoryRepository) ListAll() ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	if err := r.db.Order("sort_order asc, id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update 更新分类
func (r *GormProductCategoryRepository) Update(category *models.ProductCategory) error {
	return r.db.Save(category).Error
}

// Delete 删除分类（软删除）
func (r *GormProductCategoryRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.ProductCategory{}, id).Error
}

// CountProducts 统计分类下的产品数量
func (r *GormProductCategoryRepository) CountProducts(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package repository

import (
	"errors"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"

	"gorm.io/gorm"
)

// RechargePackageRepository 充值套餐数据访问接口
type RechargePackageRepository interface {
	Create(pkg *models.RechargePackage) error
	GetByID(id uint) (*models.RechargePackage, error)
	ListAll(onlyActive bool) ([]models.RechargePackage, error)
	Update(pkg *models.RechargePackage) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormRechargePackageRepository
}

// GormRechargePackageRepository GORM 充值套餐仓储实现
type GormRechargePackageRepository struct {
	db *gorm.DB
}

// NewRechargePackageRepository 创建充值套餐仓库
func NewRechargePackageRepository(db *gorm.DB) *GormRechargePackageRepository {
	return &GormRechargePackageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRechargePackageRepository) WithTx(tx *gorm.DB) *GormRechargePackageRepository {
	if tx == nil {
		return r
	}
	return &GormRechargePackageRepository{db: tx}
}

// Create 创建套餐
func (r *GormRechargePackageRepository) Create(pkg *models.RechargePackage) error {
	return r.db.Create(pkg).Error
}

// GetByID 根据 ID 获取套餐
func (r *GormRechargePackageRepository) GetByID(id uint) (*models.RechargePackage, error) {
	if id == 0 {
		return nil, nil
	}
	var pkg models.RechargePackage
	if err := r.db.First(&pkg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pkg, nil
}

// ListAll 获取全部套餐
func (r *GormRechargePackageRepository) ListAll(onlyActive bool) ([]models.RechargePackage, error) {
	query := r.db.Model(&models.RechargePackage{})
	if onlyActive {
		query = query.Where("status = ?", constants.RechargePackageStatusActive)
	}
	var pkgs []models.RechargePackage
	if err := query.Order("amount asc").Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

// Update 更新套餐
func (r *GormRechargePackageRepository) Update(pkg *models.RechargePackage) error {
	return r.db.Save(pkg).Error
}

// Delete 删除套餐（软删除）
func (r *GormRechargePackageRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.RechargePackage{}, id).Error
}

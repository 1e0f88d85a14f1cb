package repository

import (
	"errors"

	"github.com/meiye-next/internal/models"

	"gorm.io/gorm"
)

// MemberLevelRepository 会员等级数据访问接口
type MemberLevelRepository interface {
	GetByID(id uint) (*models.MemberLevel, error)
	ListOrderedDesc() ([]models.MemberLevel, error)
	ListOrderedAsc() ([]models.MemberLevel, error)
	Create(level *models.MemberLevel) error
	Update(level *models.MemberLevel) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormMemberLevelRepository
}

// GormMemberLevelRepository GORM 会员等级仓储实现
type GormMemberLevelRepository struct {
	db *gorm.DB
}

// NewMemberLevelRepository 创建会员等级仓库
func NewMemberLevelRepository(db *gorm.DB) *GormMemberLevelRepository {
	return &GormMemberLevelRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMemberLevelRepository) WithTx(tx *gorm.DB) *GormMemberLevelRepository {
	if tx == nil {
		return r
	}
	return &GormMemberLevelRepository{db: tx}
}

// GetByID 根据 ID 获取等级
func (r *GormMemberLevelRepository) GetByID(id uint) (*models.MemberLevel, error) {
	if id == 0 {
		return nil, nil
	}
	var level models.MemberLevel
	if err := r.db.First(&level, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &level, nil
}

// ListOrderedDesc 按等级序号从高到低获取全部等级
func (r *GormMemberLevelRepository) ListOrderedDesc() ([]models.MemberLevel, error) {
	var levels []models.MemberLevel
	if err := r.db.Order("level_order desc").Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// ListOrderedAsc 按等级序号从低到高获取全部等级
func (r *GormMemberLevelRepository) ListOrderedAsc() ([]models.MemberLevel, error) {
	var levels []models.MemberLevel
	if err := r.db.Order("level_order asc").Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// Create 创建等级
func (r *GormMemberLevelRepository) Create(level *models.MemberLevel) error {
	return r.db.Create(level).Error
}

// Update 更新等级
func (r *GormMemberLevelRepository) Update(level *models.MemberLevel) error {
	return r.db.Save(level).Error
}

// Delete 删除等级
func (r *GormMemberLevelRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.MemberLevel{}, id).Error
}

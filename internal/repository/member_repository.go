package repository

import (
	"errors"
	"strings"

	"github.com/meiye-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemberRepository 会员数据访问接口
type MemberRepository interface {
	Create(member *models.Member) error
	GetByID(id uint) (*models.Member, error)
	GetByIDForUpdate(id uint) (*models.Member, error)
	GetByPhone(phone string) (*models.Member, error)
	Count() (int64, error)
	CountActive() (int64, error)
	List(filter MemberListFilter) ([]models.Member, int64, error)
	Update(member *models.Member) error
	UpdateFields(id uint, updates map[string]interface{}) error
	ApplyConsumption(id uint, debit models.Member) (int64, error)
	Delete(id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormMemberRepository
}

// GormMemberRepository GORM 会员仓储实现
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建会员仓库
func NewMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMemberRepository) WithTx(tx *gorm.DB) *GormMemberRepository {
	if tx == nil {
		return r
	}
	return &GormMemberRepository{db: tx}
}

// Transaction 在单个事务中执行
func (r *GormMemberRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 创建会员
func (r *GormMemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// GetByID 根据 ID 获取会员
func (r *GormMemberRepository) GetByID(id uint) (*models.Member, error) {
	if id == 0 {
		return nil, nil
	}
	var member models.Member
	if err := r.db.Preload("Level").First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// GetByIDForUpdate 根据 ID 加锁获取会员
func (r *GormMemberRepository) GetByIDForUpdate(id uint) (*models.Member, error) {
	if id == 0 {
		return nil, nil
	}
	var member models.Member
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// GetByPhone 根据手机号获取会员
func (r *GormMemberRepository) GetByPhone(phone string) (*models.Member, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, nil
	}
	var member models.Member
	if err := r.db.Where("phone = ?", phone).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// Count 统计会员数量（含软删除，用于生成会员编号）
func (r *GormMemberRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Unscoped().Model(&models.Member{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActive 统计在册会员数量
func (r *GormMemberRepository) CountActive() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Member{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// List 分页查询会员
func (r *GormMemberRepository) List(filter MemberListFilter) ([]models.Member, int64, error) {
	query := r.db.Model(&models.Member{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("(name LIKE ? OR phone LIKE ? OR member_no LIKE ?)", like, like, like)
	}
	if filter.LevelID != 0 {
		query = query.Where("level_id = ?", filter.LevelID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithLevel {
		query = query.Preload("Level")
	}

	var members []models.Member
	if err := query.Order("id desc").Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// Update 更新会员
func (r *GormMemberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}

// UpdateFields 按字段更新会员
func (r *GormMemberRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if id == 0 || len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Member{}).Where("id = ?", id).Updates(updates).Error
}

// ApplyConsumption 以受保护的条件更新扣减余额并累加消费与积分。
// WHERE 条件里校验余额充足，返回受影响行数；并发下两笔同时扣减同一会员
// 只会有一笔命中，另一笔返回 0 行由调用方判定余额不足。
func (r *GormMemberRepository) ApplyConsumption(id uint, debit models.Member) (int64, error) {
	if id == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Member{}).
		Where("id = ? AND balance >= ? AND gift_balance >= ?",
			id, debit.Balance.Decimal, debit.GiftBalance.Decimal).
		Updates(map[string]interface{}{
			"balance":       gorm.Expr("balance - ?", debit.Balance.Decimal),
			"gift_balance":  gorm.Expr("gift_balance - ?", debit.GiftBalance.Decimal),
			"total_consume": gorm.Expr("total_consume + ?", debit.TotalConsume.Decimal),
			"points":        gorm.Expr("points + ?", debit.Points),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete 删除会员（软删除）
func (r *GormMemberRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Member{}, id).Error
}

package service

import (
	"strings"

	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"

	"github.com/shopspring/decimal"
)

// LevelService 会员等级服务
type LevelService struct {
	levelRepo  repository.MemberLevelRepository
	memberRepo repository.MemberRepository
}

// LevelInput 等级创建/更新输入
type LevelInput struct {
	Name          string
	LevelOrder    int
	Discount      decimal.Decimal
	PointsRate    decimal.Decimal
	UpgradeAmount models.Money
	Description   string
}

// NewLevelService 创建会员等级服务
func NewLevelService(levelRepo repository.MemberLevelRepository, memberRepo repository.MemberRepository) *LevelService {
	return &LevelService{levelRepo: levelRepo, memberRepo: memberRepo}
}

// HighestQualifiedLevel 在按序号从高到低排列的等级中，返回累计充值达到
// 升级门槛的第一个等级。等级表为空时返回 nil。
func HighestQualifiedLevel(levels []models.MemberLevel, totalRecharge models.Money) *models.MemberLevel {
	for i := range levels {
		if totalRecharge.Decimal.GreaterThanOrEqual(levels[i].UpgradeAmount.Decimal) {
			return &levels[i]
		}
	}
	return nil
}

// List 获取全部等级（序号从低到高）
func (s *LevelService) List() ([]models.MemberLevel, error) {
	return s.levelRepo.ListOrderedAsc()
}

// Get 获取单个等级
func (s *LevelService) Get(id uint) (*models.MemberLevel, error) {
	level, err := s.levelRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, ErrLevelNotFound
	}
	return level, nil
}

// Create 创建等级
func (s *LevelService) Create(input LevelInput) (*models.MemberLevel, error) {
	if err := validateLevelInput(input); err != nil {
		return nil, err
	}
	levels, err := s.levelRepo.ListOrderedAsc()
	if err != nil {
		return nil, err
	}
	for _, existing := range levels {
		if existing.LevelOrder == input.LevelOrder {
			return nil, ErrLevelOrderExists
		}
	}
	level := &models.MemberLevel{
		Name:          strings.TrimSpace(input.Name),
		LevelOrder:    input.LevelOrder,
		Discount:      input.Discount,
		PointsRate:    input.PointsRate,
		UpgradeAmount: input.UpgradeAmount,
		Description:   strings.TrimSpace(input.Description),
	}
	if err := s.levelRepo.Create(level); err != nil {
		return nil, err
	}
	return level, nil
}

// Update 更新等级
func (s *LevelService) Update(id uint, input LevelInput) (*models.MemberLevel, error) {
	if err := validateLevelInput(input); err != nil {
		return nil, err
	}
	level, err := s.levelRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, ErrLevelNotFound
	}
	levels, err := s.levelRepo.ListOrderedAsc()
	if err != nil {
		return nil, err
	}
	for _, existing := range levels {
		if existing.ID != id && existing.LevelOrder == input.LevelOrder {
			return nil, ErrLevelOrderExists
		}
	}
	level.Name = strings.TrimSpace(input.Name)
	level.LevelOrder = input.LevelOrder
	level.Discount = input.Discount
	level.PointsRate = input.PointsRate
	level.UpgradeAmount = input.UpgradeAmount
	level.Description = strings.TrimSpace(input.Description)
	if err := s.levelRepo.Update(level); err != nil {
		return nil, err
	}
	return level, nil
}

// Delete 删除等级（有会员引用时拒绝）
func (s *LevelService) Delete(id uint) error {
	level, err := s.levelRepo.GetByID(id)
	if err != nil {
		return err
	}
	if level == nil {
		return ErrLevelNotFound
	}
	members, _, err := s.memberRepo.List(repository.MemberListFilter{
		Page:     1,
		PageSize: 1,
		LevelID:  id,
	})
	if err != nil {
		return err
	}
	if len(members) > 0 {
		return ErrLevelInUse
	}
	return s.levelRepo.Delete(id)
}

func validateLevelInput(input LevelInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrLevelNameEmpty
	}
	// 折扣率在 (0, 1] 区间，1 表示不打折
	if input.Discount.LessThanOrEqual(decimal.Zero) || input.Discount.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidDiscount
	}
	if input.PointsRate.LessThan(decimal.Zero) {
		return ErrInvalidDiscount
	}
	if input.UpgradeAmount.Decimal.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

package service

import (
	"strings"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"
)

// PackageService 充值套餐目录服务
type PackageService struct {
	packageRepo repository.RechargePackageRepository
}

// PackageInput 套餐创建/更新输入
type PackageInput struct {
	Name       string
	Amount     models.Money
	GiftAmount models.Money
	Status     string
}

// NewPackageService 创建充值套餐目录服务
func NewPackageService(packageRepo repository.RechargePackageRepository) *PackageService {
	return &PackageService{packageRepo: packageRepo}
}

// Create 创建套餐
func (s *PackageService) Create(input PackageInput) (*models.RechargePackage, error) {
	if err := validatePackageInput(input); err != nil {
		return nil, err
	}
	pkg := &models.RechargePackage{
		Name:       strings.TrimSpace(input.Name),
		Amount:     input.Amount,
		GiftAmount: input.GiftAmount,
		Status:     normalizePackageStatus(input.Status),
	}
	if err := s.packageRepo.Create(pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Get 获取套餐详情
func (s *PackageService) Get(id uint) (*models.RechargePackage, error) {
	pkg, err := s.packageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	return pkg, nil
}

// List 获取套餐列表
func (s *PackageService) List(onlyActive bool) ([]models.RechargePackage, error) {
	return s.packageRepo.ListAll(onlyActive)
}

// Update 更新套餐（历史充值记录只引用套餐 ID，金额变动不回溯）
func (s *PackageService) Update(id uint, input PackageInput) (*models.RechargePackage, error) {
	if err := validatePackageInput(input); err != nil {
		return nil, err
	}
	pkg, err := s.packageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	pkg.Name = strings.TrimSpace(input.Name)
	pkg.Amount = input.Amount
	pkg.GiftAmount = input.GiftAmount
	pkg.Status = normalizePackageStatus(input.Status)
	if err := s.packageRepo.Update(pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Delete 删除套餐（软删除）
func (s *PackageService) Delete(id uint) error {
	pkg, err := s.packageRepo.GetByID(id)
	if err != nil {
		return err
	}
	if pkg == nil {
		return ErrPackageNotFound
	}
	return s.packageRepo.Delete(id)
}

func validatePackageInput(input PackageInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrNameEmpty
	}
	if !input.Amount.Decimal.IsPositive() {
		return ErrInvalidAmount
	}
	if input.GiftAmount.Decimal.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func normalizePackageStatus(status string) string {
	if status == constants.RechargePackageStatusInactive {
		return constants.RechargePackageStatusInactive
	}
	return constants.RechargePackageStatusActive
}

package service

import (
	"strings"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"
)

// ServiceItemService 服务项目目录服务
type ServiceItemService struct {
	serviceRepo repository.ServiceItemRepository
}

// ServiceItemInput 服务项目创建/更新输入
type ServiceItemInput struct {
	Name     string
	Category string
	Price    models.Money
	Duration int // 分钟
	Status   string
}

// NewServiceItemService 创建服务项目目录服务
func NewServiceItemService(serviceRepo repository.ServiceItemRepository) *ServiceItemService {
	return &ServiceItemService{serviceRepo: serviceRepo}
}

// Create 创建服务项目
func (s *ServiceItemService) Create(input ServiceItemInput) (*models.ServiceItem, error) {
	if err := validateServiceItemInput(input); err != nil {
		return nil, err
	}
	item := &models.ServiceItem{
		Name:     strings.TrimSpace(input.Name),
		Category: strings.TrimSpace(input.Category),
		Price:    input.Price,
		Duration: input.Duration,
		Status:   normalizeServiceStatus(input.Status),
	}
	if err := s.serviceRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get 获取服务项目详情
func (s *ServiceItemService) Get(id uint) (*models.ServiceItem, error) {
	item, err := s.serviceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrServiceNotFound
	}
	return item, nil
}

// List 分页查询服务项目
func (s *ServiceItemService) List(filter repository.ServiceItemListFilter) ([]models.ServiceItem, int64, error) {
	return s.serviceRepo.List(filter)
}

// Update 更新服务项目
func (s *ServiceItemService) Update(id uint, input ServiceItemInput) (*models.ServiceItem, error) {
	if err := validateServiceItemInput(input); err != nil {
		return nil, err
	}
	item, err := s.serviceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrServiceNotFound
	}
	item.Name = strings.TrimSpace(input.Name)
	item.Category = strings.TrimSpace(input.Category)
	item.Price = input.Price
	item.Duration = input.Duration
	item.Status = normalizeServiceStatus(input.Status)
	if err := s.serviceRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete 删除服务项目（软删除，历史消费明细靠快照不受影响）
func (s *ServiceItemService) Delete(id uint) error {
	item, err := s.serviceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrServiceNotFound
	}
	return s.serviceRepo.Delete(id)
}

func validateServiceItemInput(input ServiceItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrNameEmpty
	}
	if input.Price.Decimal.IsNegative() {
		return ErrInvalidAmount
	}
	if input.Duration <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

func normalizeServiceStatus(status string) string {
	if status == constants.ServiceStatusInactive {
		return constants.ServiceStatusInactive
	}
	return constants.ServiceStatusActive
}

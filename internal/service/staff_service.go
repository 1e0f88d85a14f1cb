package service

import (
	"strings"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"
)

// StaffService 员工目录服务
type StaffService struct {
	staffRepo repository.StaffRepository
}

// StaffInput 员工创建/更新输入
type StaffInput struct {
	Name   string
	Phone  string
	Role   string
	Status string
}

// NewStaffService 创建员工目录服务
func NewStaffService(staffRepo repository.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

// Create 创建员工
func (s *StaffService) Create(input StaffInput) (*models.Staff, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, ErrNameEmpty
	}
	existing, err := s.staffRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneExists
	}
	staff := &models.Staff{
		Name:   name,
		Phone:  phone,
		Role:   normalizeStaffRole(input.Role),
		Status: normalizeStaffStatus(input.Status),
	}
	if err := s.staffRepo.Create(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Get 获取员工详情
func (s *StaffService) Get(id uint) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

// List 分页查询员工
func (s *StaffService) List(filter repository.StaffListFilter) ([]models.Staff, int64, error) {
	return s.staffRepo.List(filter)
}

// Update 更新员工
func (s *StaffService) Update(id uint, input StaffInput) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		staff.Name = name
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" && phone != staff.Phone {
		existing, err := s.staffRepo.GetByPhone(phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrPhoneExists
		}
		staff.Phone = phone
	}
	staff.Role = normalizeStaffRole(input.Role)
	staff.Status = normalizeStaffStatus(input.Status)
	if err := s.staffRepo.Update(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Delete 删除员工（软删除，历史预约保留技师关联）
func (s *StaffService) Delete(id uint) error {
	staff, err := s.staffRepo.GetByID(id)
	if err != nil {
		return err
	}
	if staff == nil {
		return ErrStaffNotFound
	}
	return s.staffRepo.Delete(id)
}

func normalizeStaffRole(role string) string {
	switch role {
	case constants.StaffRoleCashier, constants.StaffRoleManager:
		return role
	}
	return constants.StaffRoleTechnician
}

func normalizeStaffStatus(status string) string {
	if status == constants.StaffStatusInactive {
		return constants.StaffStatusInactive
	}
	return constants.StaffStatusActive
}

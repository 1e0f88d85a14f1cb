package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"
)

// MemberService 会员档案服务
type MemberService struct {
	memberRepo repository.MemberRepository
	levelRepo  repository.MemberLevelRepository
}

// MemberCreateInput 会员建档输入
type MemberCreateInput struct {
	Name     string
	Phone    string
	Gender   string
	Birthday *time.Time
	Remark   string
}

// MemberUpdateInput 会员资料更新输入（不触碰余额、积分与累计值）
type MemberUpdateInput struct {
	Name     string
	Gender   string
	Birthday *time.Time
	Remark   string
}

// NewMemberService 创建会员档案服务
func NewMemberService(memberRepo repository.MemberRepository, levelRepo repository.MemberLevelRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo, levelRepo: levelRepo}
}

// Create 会员建档，分配会员编号并落到最低等级
func (s *MemberService) Create(input MemberCreateInput) (*models.Member, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, ErrMemberInfoInvalid
	}
	existing, err := s.memberRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneExists
	}

	gender := input.Gender
	switch gender {
	case constants.MemberGenderMale, constants.MemberGenderFemale:
	default:
		gender = constants.MemberGenderUnknown
	}

	// 最低等级为默认等级（等级表为空时保持 0，由展示层兜底）
	var levelID uint
	levels, err := s.levelRepo.ListOrderedAsc()
	if err != nil {
		return nil, err
	}
	if len(levels) > 0 {
		levelID = levels[0].ID
	}

	count, err := s.memberRepo.Count()
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		MemberNo:      fmt.Sprintf("M%06d", count+1),
		Name:          name,
		Phone:         phone,
		Gender:        gender,
		Birthday:      input.Birthday,
		Balance:       models.ZeroMoney(),
		GiftBalance:   models.ZeroMoney(),
		TotalRecharge: models.ZeroMoney(),
		TotalConsume:  models.ZeroMoney(),
		LevelID:       levelID,
		Status:        constants.MemberStatusActive,
		Remark:        strings.TrimSpace(input.Remark),
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, err
	}
	return member, nil
}

// Get 获取会员详情
func (s *MemberService) Get(id uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// GetByPhone 根据手机号获取会员
func (s *MemberService) GetByPhone(phone string) (*models.Member, error) {
	member, err := s.memberRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// List 分页查询会员
func (s *MemberService) List(filter repository.MemberListFilter) ([]models.Member, int64, error) {
	filter.WithLevel = true
	return s.memberRepo.List(filter)
}

// Update 更新会员资料
func (s *MemberService) Update(id uint, input MemberUpdateInput) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		member.Name = name
	}
	switch input.Gender {
	case constants.MemberGenderMale, constants.MemberGenderFemale, constants.MemberGenderUnknown:
		member.Gender = input.Gender
	}
	if input.Birthday != nil {
		member.Birthday = input.Birthday
	}
	member.Remark = strings.TrimSpace(input.Remark)
	if err := s.memberRepo.Update(member); err != nil {
		return nil, err
	}
	return member, nil
}

// Freeze 冻结会员（冻结后不能消费与充值）
func (s *MemberService) Freeze(id uint) error {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	return s.memberRepo.UpdateFields(id, map[string]interface{}{
		"status": constants.MemberStatusFrozen,
	})
}

// Unfreeze 解冻会员
func (s *MemberService) Unfreeze(id uint) error {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	return s.memberRepo.UpdateFields(id, map[string]interface{}{
		"status": constants.MemberStatusActive,
	})
}

// Delete 注销会员（剩余余额未清零时拒绝）
func (s *MemberService) Delete(id uint) error {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	if member.Balance.Decimal.IsPositive() || member.GiftBalance.Decimal.IsPositive() {
		return ErrMemberHasBalance
	}
	return s.memberRepo.Delete(id)
}

package admin

import (
	"errors"

	"github.com/meiye-next/internal/http/response"
	"github.com/meiye-next/internal/repository"
	"github.com/meiye-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateMemberRequest 会员建档请求
type CreateMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Gender   string `json:"gender"`
	Birthday string `json:"birthday"` // YYYY-MM-DD
	Remark   string `json:"remark"`
}

// CreateMember 会员建档
func (h *Handler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	birthday, err := parseDateNullable(req.Birthday)
	if err != nil {
		respondError(c, response.CodeBadRequest, "生日格式错误", err)
		return
	}

	member, err := h.MemberService.Create(service.MemberCreateInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Gender:   req.Gender,
		Birthday: birthday,
		Remark:   req.Remark,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberInfoInvalid):
			respondError(c, response.CodeBadRequest, "姓名或手机号不能为空", nil)
		case errors.Is(err, service.ErrPhoneExists):
			respondError(c, response.CodeBadRequest, "手机号已被注册", nil)
		default:
			respondError(c, response.CodeInternal, "会员建档失败", err)
		}
		return
	}

	response.Success(c, member)
}

// GetMembers 获取会员列表
func (h *Handler) GetMembers(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	levelID, ok := parseUintQuery(c, "level_id")
	if !ok {
		return
	}

	members, total, err := h.MemberService.List(repository.MemberListFilter{
		Page:      page,
		PageSize:  pageSize,
		Search:    c.Query("search"),
		LevelID:   levelID,
		Status:    c.Query("status"),
		WithLevel: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询会员失败", err)
		return
	}

	response.SuccessWithPage(c, members, buildPagination(page, pageSize, total))
}

// GetMember 获取会员详情
func (h *Handler) GetMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	member, err := h.MemberService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			respondError(c, response.CodeNotFound, "会员不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询会员失败", err)
		return
	}
	response.Success(c, member)
}

// UpdateMemberRequest 会员资料更新请求
type UpdateMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Gender   string `json:"gender"`
	Birthday string `json:"birthday"`
	Remark   string `json:"remark"`
}

// UpdateMember 更新会员资料（不涉及余额与积分）
func (h *Handler) UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	birthday, err := parseDateNullable(req.Birthday)
	if err != nil {
		respondError(c, response.CodeBadRequest, "生日格式错误", err)
		return
	}

	member, err := h.MemberService.Update(id, service.MemberUpdateInput{
		Name:     req.Name,
		Gender:   req.Gender,
		Birthday: birthday,
		Remark:   req.Remark,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			respondError(c, response.CodeNotFound, "会员不存在", nil)
		case errors.Is(err, service.ErrMemberInfoInvalid):
			respondError(c, response.CodeBadRequest, "姓名不能为空", nil)
		default:
			respondError(c, response.CodeInternal, "更新会员失败", err)
		}
		return
	}

	response.Success(c, member)
}

// FreezeMember 冻结会员
func (h *Handler) FreezeMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.MemberService.Freeze(id); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			respondError(c, response.CodeNotFound, "会员不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "冻结会员失败", err)
		return
	}
	response.SuccessWithMsg(c, "会员已冻结", nil)
}

// UnfreezeMember 解冻会员
func (h *Handler) UnfreezeMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.MemberService.Unfreeze(id); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			respondError(c, response.CodeNotFound, "会员不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "解冻会员失败", err)
		return
	}
	response.SuccessWithMsg(c, "会员已解冻", nil)
}

// DeleteMember 删除会员（有余额的会员拒绝删除）
func (h *Handler) DeleteMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.MemberService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			respondError(c, response.CodeNotFound, "会员不存在", nil)
		case errors.Is(err, service.ErrMemberHasBalance):
			respondError(c, response.CodeBadRequest, "会员仍有余额，请先清退", nil)
		default:
			respondError(c, response.CodeInternal, "删除会员失败", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

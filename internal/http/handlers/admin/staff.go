package admin

import (
	"errors"

	"github.com/meiye-next/internal/http/response"
	"github.com/meiye-next/internal/repository"
	"github.com/meiye-next/internal/service"

	"github.com/gin-gonic/gin"
)

// StaffRequest 员工创建/更新请求
type StaffRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// GetStaffList 获取员工列表
func (h *Handler) GetStaffList(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	staff, total, err := h.StaffService.List(repository.StaffListFilter{
		Page:     page,
		PageSize: pageSize,
		Role:     c.Query("role"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询员工失败", err)
		return
	}
	response.SuccessWithPage(c, staff, buildPagination(page, pageSize, total))
}

// GetStaff 获取员工详情
func (h *Handler) GetStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	staff, err := h.StaffService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrStaffNotFound) {
			respondError(c, response.CodeNotFound, "员工不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询员工失败", err)
		return
	}
	response.Success(c, staff)
}

// CreateStaff 创建员工
func (h *Handler) CreateStaff(c *gin.Context) {
	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	staff, err := h.StaffService.Create(service.StaffInput{
		Name:   req.Name,
		Phone:  req.Phone,
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		respondStaffError(c, err, "创建员工失败")
		return
	}
	response.Success(c, staff)
}

// UpdateStaff 更新员工
func (h *Handler) UpdateStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	staff, err := h.StaffService.Update(id, service.StaffInput{
		Name:   req.Name,
		Phone:  req.Phone,
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		respondStaffError(c, err, "更新员工失败")
		return
	}
	response.Success(c, staff)
}

// DeleteStaff 删除员工
func (h *Handler) DeleteStaff(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.StaffService.Delete(id); err != nil {
		if errors.Is(err, service.ErrStaffNotFound) {
			respondError(c, response.CodeNotFound, "员工不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除员工失败", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondStaffError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrStaffNotFound):
		respondError(c, response.CodeNotFound, "员工不存在", nil)
	case errors.Is(err, service.ErrNameEmpty):
		respondError(c, response.CodeBadRequest, "员工姓名不能为空", nil)
	case errors.Is(err, service.ErrPhoneExists):
		respondError(c, response.CodeBadRequest, "手机号已被占用", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

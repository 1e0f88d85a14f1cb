package admin

import (
	"errors"
	"strings"
	"time"

	"github.com/meiye-next/internal/http/response"
	"github.com/meiye-next/internal/repository"
	"github.com/meiye-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateAppointmentRequest 创建预约请求
type CreateAppointmentRequest struct {
	MemberID  uint   `json:"member_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	StaffID   *uint  `json:"staff_id"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time"` // 缺省按服务时长推算
	Remark    string `json:"remark"`
}

// CreateAppointment 创建预约
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	date, err := parseDateRequired(req.Date)
	if err != nil {
		respondError(c, response.CodeBadRequest, "预约日期格式错误", err)
		return
	}

	appointment, err := h.AppointmentService.Create(service.AppointmentCreateInput{
		MemberID:  req.MemberID,
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Remark:    req.Remark,
	})
	if err != nil {
		respondAppointmentError(c, err, "创建预约失败")
		return
	}
	response.Success(c, appointment)
}

// GetAppointments 获取预约列表
func (h *Handler) GetAppointments(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	memberID, ok := parseUintQuery(c, "member_id")
	if !ok {
		return
	}
	staffID, ok := parseUintQuery(c, "staff_id")
	if !ok {
		return
	}
	date, err := parseDateNullable(c.Query("date"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "日期格式错误", err)
		return
	}

	appointments, total, err := h.AppointmentService.List(repository.AppointmentListFilter{
		Page:     page,
		PageSize: pageSize,
		MemberID: memberID,
		StaffID:  staffID,
		Status:   c.Query("status"),
		Date:     date,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询预约失败", err)
		return
	}
	response.SuccessWithPage(c, appointments, buildPagination(page, pageSize, total))
}

// GetAppointment 获取预约详情
func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appointment, err := h.AppointmentService.Get(id)
	if err != nil {
		respondAppointmentError(c, err, "查询预约失败")
		return
	}
	response.Success(c, appointment)
}

// UpdateAppointmentRequest 改约请求
type UpdateAppointmentRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	StaffID   *uint  `json:"staff_id"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time"`
	Remark    string `json:"remark"`
}

// UpdateAppointment 改约（仅占位中的预约可改）
func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	date, err := parseDateRequired(req.Date)
	if err != nil {
		respondError(c, response.CodeBadRequest, "预约日期格式错误", err)
		return
	}

	appointment, err := h.AppointmentService.Update(id, service.AppointmentUpdateInput{
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Remark:    req.Remark,
	})
	if err != nil {
		respondAppointmentError(c, err, "改约失败")
		return
	}
	response.Success(c, appointment)
}

// ConfirmAppointment 确认预约
func (h *Handler) ConfirmAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appointment, err := h.AppointmentService.Confirm(id)
	if err != nil {
		respondAppointmentError(c, err, "确认预约失败")
		return
	}
	response.Success(c, appointment)
}

// CompleteAppointment 完成预约
func (h *Handler) CompleteAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appointment, err := h.AppointmentService.Complete(id)
	if err != nil {
		respondAppointmentError(c, err, "完成预约失败")
		return
	}
	response.Success(c, appointment)
}

// CancelAppointmentRequest 取消预约请求
type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelAppointment 取消预约（必须填写原因）
func (h *Handler) CancelAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "取消原因不能为空", err)
		return
	}
	appointment, err := h.AppointmentService.Cancel(id, req.Reason)
	if err != nil {
		respondAppointmentError(c, err, "取消预约失败")
		return
	}
	response.Success(c, appointment)
}

// MarkAppointmentNoShow 标记爽约
func (h *Handler) MarkAppointmentNoShow(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appointment, err := h.AppointmentService.MarkNoShow(id)
	if err != nil {
		respondAppointmentError(c, err, "标记爽约失败")
		return
	}
	response.Success(c, appointment)
}

func parseDateRequired(raw string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), time.Local)
}

func respondAppointmentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrAppointmentNotFound):
		respondError(c, response.CodeNotFound, "预约不存在", nil)
	case errors.Is(err, service.ErrMemberNotFound):
		respondError(c, response.CodeBadRequest, "会员不存在", nil)
	case errors.Is(err, service.ErrMemberFrozen):
		respondError(c, response.CodeBadRequest, "会员已被冻结", nil)
	case errors.Is(err, service.ErrServiceNotFound):
		respondError(c, response.CodeBadRequest, "服务项目不存在", nil)
	case errors.Is(err, service.ErrServiceInactive):
		respondError(c, response.CodeBadRequest, "服务项目已停用", nil)
	case errors.Is(err, service.ErrStaffNotFound):
		respondError(c, response.CodeBadRequest, "技师不存在", nil)
	case errors.Is(err, service.ErrStaffInactive):
		respondError(c, response.CodeBadRequest, "技师已停用", nil)
	case errors.Is(err, service.ErrScheduleConflict):
		respondError(c, response.CodeBadRequest, "该时段与已有预约冲突", nil)
	case errors.Is(err, service.ErrInvalidTimeFormat):
		respondError(c, response.CodeBadRequest, "时间格式应为 HH:MM", nil)
	case errors.Is(err, service.ErrInvalidTimeRange):
		respondError(c, response.CodeBadRequest, "结束时间必须晚于开始时间", nil)
	case errors.Is(err, service.ErrInvalidStatusTransition):
		respondError(c, response.CodeBadRequest, "当前状态不允许该操作", nil)
	case errors.Is(err, service.ErrCancelReasonRequired):
		respondError(c, response.CodeBadRequest, "取消原因不能为空", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

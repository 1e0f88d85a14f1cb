package admin

import (
	"errors"

	"github.com/meiye-next/internal/http/response"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"
	"github.com/meiye-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateRechargeRequest 充值请求。指定套餐时金额与赠送额以套餐为准。
type CreateRechargeRequest struct {
	MemberID      uint    `json:"member_id" binding:"required"`
	Amount        float64 `json:"amount"`
	GiftAmount    float64 `json:"gift_amount"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	PackageID     *uint   `json:"package_id"`
	Remark        string  `json:"remark"`
}

// CreateRecharge 会员充值
func (h *Handler) CreateRecharge(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req CreateRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	record, err := h.RechargeService.Recharge(c.Request.Context(), service.RechargeInput{
		MemberID:      req.MemberID,
		Amount:        models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Amount)),
		GiftAmount:    models.NewMoneyFromDecimal(decimal.NewFromFloat(req.GiftAmount)),
		PaymentMethod: req.PaymentMethod,
		PackageID:     req.PackageID,
		OperatorID:    adminID,
		Remark:        req.Remark,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			respondError(c, response.CodeNotFound, "会员不存在", nil)
		case errors.Is(err, service.ErrMemberFrozen):
			respondError(c, response.CodeBadRequest, "会员已被冻结", nil)
		case errors.Is(err, service.ErrPackageNotFound):
			respondError(c, response.CodeBadRequest, "充值套餐不存在", nil)
		case errors.Is(err, service.ErrPackageInactive):
			respondError(c, response.CodeBadRequest, "充值套餐已停用", nil)
		case errors.Is(err, service.ErrInvalidAmount):
			respondError(c, response.CodeBadRequest, "充值金额不合法", nil)
		case errors.Is(err, service.ErrPaymentMethodInvalid):
			respondError(c, response.CodeBadRequest, "支付方式不支持", nil)
		default:
			respondError(c, response.CodeInternal, "充值失败", err)
		}
		return
	}

	requestLog(c).Infow("recharge_created",
		"record_no", record.RecordNo,
		"member_id", record.MemberID,
		"amount", record.Amount,
		"gift_amount", record.GiftAmount,
	)
	response.Success(c, record)
}

// GetRecharges 获取充值记录列表
func (h *Handler) GetRecharges(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	memberID, ok := parseUintQuery(c, "member_id")
	if !ok {
		return
	}
	createdFrom, err := parseDateNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "日期格式错误", err)
		return
	}
	createdTo, err := parseDateNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "日期格式错误", err)
		return
	}

	records, total, err := h.RechargeService.ListRecords(repository.RechargeRecordListFilter{
		Page:        page,
		PageSize:    pageSize,
		MemberID:    memberID,
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询充值记录失败", err)
		return
	}
	response.SuccessWithPage(c, records, buildPagination(page, pageSize, total))
}

// GetRecharge 获取充值记录详情
func (h *Handler) GetRecharge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	record, err := h.RechargeService.GetRecord(id)
	if err != nil {
		if errors.Is(err, service.ErrRechargeRecordNotFound) {
			respondError(c, response.CodeNotFound, "充值记录不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询充值记录失败", err)
		return
	}
	response.Success(c, record)
}

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

// ConsumeItemRequest 消费明细请求。unit_price/item_name 缺省按目录结算。
type ConsumeItemRequest struct {
	ItemType  string   `json:"item_type" binding:"required"` // product / service
	ItemID    uint     `json:"item_id" binding:"required"`
	ItemName  string   `json:"item_name"`
	UnitPrice *float64 `json:"unit_price"`
	Quantity  int      `json:"quantity" binding:"required"`
}

// CreateConsumeRequest 消费结算请求
type CreateConsumeRequest struct {
	MemberID      uint                 `json:"member_id" binding:"required"`
	Items         []ConsumeItemRequest `json:"items" binding:"required"`
	PaymentMethod string               `json:"payment_method" binding:"required"`
	Remark        string               `json:"remark"`
}

// CreateConsume 会员消费结算
func (h *Handler) CreateConsume(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req CreateConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	items := make([]service.ConsumeItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		var unitPrice *models.Money
		if item.UnitPrice != nil {
			quoted := models.NewMoneyFromDecimal(decimal.NewFromFloat(*item.UnitPrice))
			unitPrice = &quoted
		}
		items = append(items, service.ConsumeItemInput{
			ItemType:  item.ItemType,
			ItemID:    item.ItemID,
			ItemName:  item.ItemName,
			UnitPrice: unitPrice,
			Quantity:  item.Quantity,
		})
	}

	record, err := h.ConsumeService.Consume(service.ConsumeInput{
		MemberID:      req.MemberID,
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		OperatorID:    adminID,
		Remark:        req.Remark,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			respondError(c, response.CodeNotFound, "会员不存在", nil)
		case errors.Is(err, service.ErrMemberFrozen):
			respondError(c, response.CodeBadRequest, "会员已被冻结", nil)
		case errors.Is(err, service.ErrInsufficientBalance):
			respondError(c, response.CodeBadRequest, "余额不足", nil)
		case errors.Is(err, service.ErrInsufficientStock):
			respondError(c, response.CodeBadRequest, "产品库存不足："+err.Error(), nil)
		case errors.Is(err, service.ErrInvalidAmount):
			respondError(c, response.CodeBadRequest, "单价不合法", nil)
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeBadRequest, "产品不存在", nil)
		case errors.Is(err, service.ErrProductOffSale):
			respondError(c, response.CodeBadRequest, "产品已下架", nil)
		case errors.Is(err, service.ErrServiceNotFound):
			respondError(c, response.CodeBadRequest, "服务项目不存在", nil)
		case errors.Is(err, service.ErrServiceInactive):
			respondError(c, response.CodeBadRequest, "服务项目已停用", nil)
		case errors.Is(err, service.ErrInvalidConsumeItem):
			respondError(c, response.CodeBadRequest, "消费明细不合法", nil)
		case errors.Is(err, service.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "数量需大于 0", nil)
		case errors.Is(err, service.ErrPaymentMethodInvalid):
			respondError(c, response.CodeBadRequest, "支付方式不支持", nil)
		default:
			respondError(c, response.CodeInternal, "消费结算失败", err)
		}
		return
	}

	requestLog(c).Infow("consume_settled",
		"record_no", record.RecordNo,
		"member_id", record.MemberID,
		"total_amount", record.TotalAmount,
		"payment_method", record.PaymentMethod,
	)
	response.Success(c, record)
}

// GetConsumes 获取消费记录列表
func (h *Handler) GetConsumes(c *gin.Context) {
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

	records, total, err := h.ConsumeService.ListRecords(repository.ConsumeRecordListFilter{
		Page:        page,
		PageSize:    pageSize,
		MemberID:    memberID,
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询消费记录失败", err)
		return
	}
	response.SuccessWithPage(c, records, buildPagination(page, pageSize, total))
}

// GetConsume 获取消费记录详情
func (h *Handler) GetConsume(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	record, err := h.ConsumeService.GetRecord(id)
	if err != nil {
		if errors.Is(err, service.ErrConsumeRecordNotFound) {
			respondError(c, response.CodeNotFound, "消费记录不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询消费记录失败", err)
		return
	}
	response.Success(c, record)
}

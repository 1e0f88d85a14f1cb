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

// ServiceItemRequest 服务项目创建/更新请求
type ServiceItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category"`
	Price    float64 `json:"price" binding:"required"`
	Duration int     `json:"duration" binding:"required"` // 分钟
	Status   string  `json:"status"`
}

func (r ServiceItemRequest) toInput() service.ServiceItemInput {
	return service.ServiceItemInput{
		Name:     r.Name,
		Category: r.Category,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price)),
		Duration: r.Duration,
		Status:   r.Status,
	}
}

// GetServiceItems 获取服务项目列表
func (h *Handler) GetServiceItems(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	items, total, err := h.ServiceItemService.List(repository.ServiceItemListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询服务项目失败", err)
		return
	}
	response.SuccessWithPage(c, items, buildPagination(page, pageSize, total))
}

// GetServiceItem 获取服务项目详情
func (h *Handler) GetServiceItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.ServiceItemService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondError(c, response.CodeNotFound, "服务项目不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询服务项目失败", err)
		return
	}
	response.Success(c, item)
}

// CreateServiceItem 创建服务项目
func (h *Handler) CreateServiceItem(c *gin.Context) {
	var req ServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	item, err := h.ServiceItemService.Create(req.toInput())
	if err != nil {
		respondServiceItemError(c, err, "创建服务项目失败")
		return
	}
	response.Success(c, item)
}

// UpdateServiceItem 更新服务项目
func (h *Handler) UpdateServiceItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	item, err := h.ServiceItemService.Update(id, req.toInput())
	if err != nil {
		respondServiceItemError(c, err, "更新服务项目失败")
		return
	}
	response.Success(c, item)
}

// DeleteServiceItem 删除服务项目
func (h *Handler) DeleteServiceItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ServiceItemService.Delete(id); err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondError(c, response.CodeNotFound, "服务项目不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除服务项目失败", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondServiceItemError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		respondError(c, response.CodeNotFound, "服务项目不存在", nil)
	case errors.Is(err, service.ErrNameEmpty):
		respondError(c, response.CodeBadRequest, "项目名称不能为空", nil)
	case errors.Is(err, service.ErrInvalidAmount):
		respondError(c, response.CodeBadRequest, "价格不合法", nil)
	case errors.Is(err, service.ErrInvalidQuantity):
		respondError(c, response.CodeBadRequest, "时长需大于 0", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

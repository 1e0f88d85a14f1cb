package admin

import (
	"errors"
	"strconv"

	"github.com/meiye-next/internal/http/response"
	"github.com/meiye-next/internal/repository"
	"github.com/meiye-next/internal/service"

	"github.com/gin-gonic/gin"
)

// StockAdjustRequest 库存调整请求
type StockAdjustRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Direction string `json:"direction" binding:"required"` // in / out
	Quantity  int    `json:"quantity" binding:"required"`
	Reason    string `json:"reason"`
}

// AdjustStock 库存调整（入库/出库），每次调整都落一条流水
func (h *Handler) AdjustStock(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	log, err := h.StockService.Adjust(service.StockAdjustInput{
		ProductID:  req.ProductID,
		Direction:  req.Direction,
		Quantity:   req.Quantity,
		Reason:     req.Reason,
		OperatorID: adminID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "产品不存在", nil)
		case errors.Is(err, service.ErrInvalidQuantity):
			respondError(c, response.CodeBadRequest, "调整数量不合法", nil)
		case errors.Is(err, service.ErrInsufficientStock):
			respondError(c, response.CodeBadRequest, "库存不足，无法出库", nil)
		default:
			respondError(c, response.CodeInternal, "库存调整失败", err)
		}
		return
	}

	response.Success(c, log)
}

// GetStockLogs 获取库存流水
func (h *Handler) GetStockLogs(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	productID, ok := parseUintQuery(c, "product_id")
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

	logs, total, err := h.StockService.ListLogs(repository.StockLogListFilter{
		Page:        page,
		PageSize:    pageSize,
		ProductID:   productID,
		Direction:   c.Query("direction"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询库存流水失败", err)
		return
	}
	response.SuccessWithPage(c, logs, buildPagination(page, pageSize, total))
}

// GetLowStockProducts 获取低库存产品
func (h *Handler) GetLowStockProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	products, err := h.StockService.ListLowStock(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "查询低库存产品失败", err)
		return
	}
	response.Success(c, products)
}

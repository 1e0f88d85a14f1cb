package admin

import (
	"errors"
	"strconv"

	"github.com/meiye-next/internal/http/response"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PackageRequest 充值套餐创建/更新请求
type PackageRequest struct {
	Name       string  `json:"name" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	GiftAmount float64 `json:"gift_amount"`
	Status     string  `json:"status"`
}

func (r PackageRequest) toInput() service.PackageInput {
	return service.PackageInput{
		Name:       r.Name,
		Amount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Amount)),
		GiftAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.GiftAmount)),
		Status:     r.Status,
	}
}

// GetPackages 获取充值套餐列表
func (h *Handler) GetPackages(c *gin.Context) {
	onlyActive, _ := strconv.ParseBool(c.DefaultQuery("only_active", "false"))
	packages, err := h.PackageService.List(onlyActive)
	if err != nil {
		respondError(c, response.CodeInternal, "查询套餐失败", err)
		return
	}
	response.Success(c, packages)
}

// GetPackage 获取充值套餐详情
func (h *Handler) GetPackage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	pkg, err := h.PackageService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			respondError(c, response.CodeNotFound, "套餐不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询套餐失败", err)
		return
	}
	response.Success(c, pkg)
}

// CreatePackage 创建充值套餐
func (h *Handler) CreatePackage(c *gin.Context) {
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	pkg, err := h.PackageService.Create(req.toInput())
	if err != nil {
		respondPackageError(c, err, "创建套餐失败")
		return
	}
	response.Success(c, pkg)
}

// UpdatePackage 更新充值套餐
func (h *Handler) UpdatePackage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	pkg, err := h.PackageService.Update(id, req.toInput())
	if err != nil {
		respondPackageError(c, err, "更新套餐失败")
		return
	}
	response.Success(c, pkg)
}

// DeletePackage 删除充值套餐
func (h *Handler) DeletePackage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.PackageService.Delete(id); err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			respondError(c, response.CodeNotFound, "套餐不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除套餐失败", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondPackageError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPackageNotFound):
		respondError(c, response.CodeNotFound, "套餐不存在", nil)
	case errors.Is(err, service.ErrNameEmpty):
		respondError(c, response.CodeBadRequest, "套餐名称不能为空", nil)
	case errors.Is(err, service.ErrInvalidAmount):
		respondError(c, response.CodeBadRequest, "套餐金额不合法", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

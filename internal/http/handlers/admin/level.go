package admin

import (
	"errors"

	"github.com/meiye-next/internal/http/response"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LevelRequest 等级创建/更新请求
type LevelRequest struct {
	Name          string  `json:"name" binding:"required"`
	LevelOrder    int     `json:"level_order"`
	Discount      float64 `json:"discount" binding:"required"`
	PointsRate    float64 `json:"points_rate"`
	UpgradeAmount float64 `json:"upgrade_amount"`
	Description   string  `json:"description"`
}

func (r LevelRequest) toInput() service.LevelInput {
	return service.LevelInput{
		Name:          r.Name,
		LevelOrder:    r.LevelOrder,
		Discount:      decimal.NewFromFloat(r.Discount),
		PointsRate:    decimal.NewFromFloat(r.PointsRate),
		UpgradeAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.UpgradeAmount)),
		Description:   r.Description,
	}
}

// GetLevels 获取等级列表（按序号从低到高）
func (h *Handler) GetLevels(c *gin.Context) {
	levels, err := h.LevelService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "查询等级失败", err)
		return
	}
	response.Success(c, levels)
}

// CreateLevel 创建等级
func (h *Handler) CreateLevel(c *gin.Context) {
	var req LevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	level, err := h.LevelService.Create(req.toInput())
	if err != nil {
		respondLevelError(c, err, "创建等级失败")
		return
	}
	response.Success(c, level)
}

// UpdateLevel 更新等级
func (h *Handler) UpdateLevel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req LevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	level, err := h.LevelService.Update(id, req.toInput())
	if err != nil {
		respondLevelError(c, err, "更新等级失败")
		return
	}
	response.Success(c, level)
}

// DeleteLevel 删除等级（仍有会员挂靠的等级拒绝删除）
func (h *Handler) DeleteLevel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.LevelService.Delete(id); err != nil {
		respondLevelError(c, err, "删除等级失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondLevelError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrLevelNotFound):
		respondError(c, response.CodeNotFound, "等级不存在", nil)
	case errors.Is(err, service.ErrLevelNameEmpty):
		respondError(c, response.CodeBadRequest, "等级名称不能为空", nil)
	case errors.Is(err, service.ErrLevelOrderExists):
		respondError(c, response.CodeBadRequest, "等级序号已存在", nil)
	case errors.Is(err, service.ErrInvalidDiscount):
		respondError(c, response.CodeBadRequest, "折扣率需在 0 到 1 之间", nil)
	case errors.Is(err, service.ErrLevelInUse):
		respondError(c, response.CodeBadRequest, "等级下仍有会员，无法删除", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

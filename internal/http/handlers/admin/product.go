package admin

import (
	"errors"
	"strconv"

	"github.com/meiye-next/internal/http/response"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"
	"github.com/meiye-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 产品创建/更新请求
type ProductRequest struct {
	CategoryID uint    `json:"category_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price" binding:"required"`
	Cost       float64 `json:"cost"`
	MinStock   int     `json:"min_stock"`
	Unit       string  `json:"unit"`
	Status     string  `json:"status"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		CategoryID: r.CategoryID,
		Name:       r.Name,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price)),
		Cost:       models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Cost)),
		MinStock:   r.MinStock,
		Unit:       r.Unit,
		Status:     r.Status,
	}
}

// GetAdminProducts 获取产品列表
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	categoryID, ok := parseUintQuery(c, "category_id")
	if !ok {
		return
	}
	onlyLowStock, _ := strconv.ParseBool(c.DefaultQuery("only_low_stock", "false"))

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       c.Query("search"),
		Status:       c.Query("status"),
		OnlyLowStock: onlyLowStock,
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "查询产品失败", err)
		return
	}

	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetAdminProduct 获取产品详情
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "产品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "查询产品失败", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建产品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductError(c, err, "创建产品失败")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新产品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondProductError(c, err, "更新产品失败")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除产品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "产品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除产品失败", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondProductError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "产品不存在", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "产品分类不存在", nil)
	case errors.Is(err, service.ErrNameEmpty):
		respondError(c, response.CodeBadRequest, "产品名称不能为空", nil)
	case errors.Is(err, service.ErrInvalidAmount):
		respondError(c, response.CodeBadRequest, "价格不合法", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// GetAdminCategories 获取产品分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.ProductService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "查询分类失败", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建产品分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	category, err := h.ProductService.CreateCategory(service.CategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondCategoryError(c, err, "创建分类失败")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新产品分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	category, err := h.ProductService.UpdateCategory(id, service.CategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondCategoryError(c, err, "更新分类失败")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除产品分类（分类下仍有产品时拒绝删除）
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.DeleteCategory(id); err != nil {
		respondCategoryError(c, err, "删除分类失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondCategoryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "产品分类不存在", nil)
	case errors.Is(err, service.ErrNameEmpty):
		respondError(c, response.CodeBadRequest, "分类名称不能为空", nil)
	case errors.Is(err, service.ErrCategoryNameExists):
		respondError(c, response.CodeBadRequest, "分类名称已存在", nil)
	case errors.Is(err, service.ErrCategoryInUse):
		respondError(c, response.CodeBadRequest, "分类下仍有产品，无法删除", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

package service

import (
	"strings"

	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/models"
	"github.com/meiye-next/internal/repository"
)

// ProductService 产品目录服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.ProductCategoryRepository
}

// ProductInput 产品创建/更新输入
type ProductInput struct {
	CategoryID uint
	Name       string
	Price      models.Money
	Cost       models.Money
	MinStock   int
	Unit       string
	Status     string
}

// CategoryInput 分类创建/更新输入
type CategoryInput struct {
	Name      string
	SortOrder int
}

// NewProductService 创建产品目录服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.ProductCategoryRepository) *ProductService {
	return &ProductService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// Create 创建产品（初始库存为 0，入库走库存调整留痕）
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := s.validateProductInput(input); err != nil {
		return nil, err
	}
	product := &models.Product{
		CategoryID: input.CategoryID,
		Name:       strings.TrimSpace(input.Name),
		Price:      input.Price,
		Cost:       input.Cost,
		Stock:      0,
		MinStock:   input.MinStock,
		Unit:       strings.TrimSpace(input.Unit),
		Status:     normalizeProductStatus(input.Status),
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get 获取产品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// List 分页查询产品
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

// Update 更新产品（库存只能走库存调整，不在此处修改）
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	if err := s.validateProductInput(input); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	product.CategoryID = input.CategoryID
	product.Name = strings.TrimSpace(input.Name)
	product.Price = input.Price
	product.Cost = input.Cost
	product.MinStock = input.MinStock
	product.Unit = strings.TrimSpace(input.Unit)
	product.Status = normalizeProductStatus(input.Status)
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除产品（软删除）
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

// ListCategories 获取全部分类
func (s *ProductService) ListCategories() ([]models.ProductCategory, error) {
	return s.categoryRepo.ListAll()
}

// CreateCategory 创建分类
func (s *ProductService) CreateCategory(input CategoryInput) (*models.ProductCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameEmpty
	}
	existing, err := s.categoryRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryNameExists
	}
	category := &models.ProductCategory{Name: name, SortOrder: input.SortOrder}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory 更新分类
func (s *ProductService) UpdateCategory(id uint, input CategoryInput) (*models.ProductCategory, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name != "" && name != category.Name {
		existing, err := s.categoryRepo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrCategoryNameExists
		}
		category.Name = name
	}
	category.SortOrder = input.SortOrder
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 删除分类（仍有产品挂在分类下时拒绝）
func (s *ProductService) DeleteCategory(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(id)
}

func (s *ProductService) validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrNameEmpty
	}
	if input.Price.Decimal.IsNegative() || input.Cost.Decimal.IsNegative() {
		return ErrInvalidAmount
	}
	if input.MinStock < 0 {
		return ErrInvalidQuantity
	}
	if input.CategoryID != 0 {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	return nil
}

func normalizeProductStatus(status string) string {
	if status == constants.ProductStatusOffSale {
		return constants.ProductStatusOffSale
	}
	return constants.ProductStatusOnSale
}

package main

import (
	"github.com/meiye-next/internal/config"
	"github.com/meiye-next/internal/constants"
	"github.com/meiye-next/internal/logger"
	"github.com/meiye-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	seedLevels(stdLog.Printf)
	seedCategories(stdLog.Printf)
	seedProducts(stdLog.Printf)
	seedServiceItems(stdLog.Printf)
	seedStaff(stdLog.Printf)
	seedPackages(stdLog.Printf)

	stdLog.Printf("Seed finished")
}

type printfFunc func(format string, v ...interface{})

// seedLevels 初始化会员等级阶梯：普通 / 银卡 / 金卡 / 钻石
func seedLevels(printf printfFunc) {
	levels := []models.MemberLevel{
		{
			Name:          "普通会员",
			LevelOrder:    1,
			Discount:      decimal.NewFromInt(1),
			PointsRate:    decimal.NewFromInt(1),
			UpgradeAmount: models.NewMoneyFromInt(0),
		},
		{
			Name:          "银卡会员",
			LevelOrder:    2,
			Discount:      decimal.NewFromFloat(0.95),
			PointsRate:    decimal.NewFromFloat(1.2),
			UpgradeAmount: models.NewMoneyFromInt(1000),
		},
		{
			Name:          "金卡会员",
			LevelOrder:    3,
			Discount:      decimal.NewFromFloat(0.9),
			PointsRate:    decimal.NewFromFloat(1.5),
			UpgradeAmount: models.NewMoneyFromInt(5000),
		},
		{
			Name:          "钻石会员",
			LevelOrder:    4,
			Discount:      decimal.NewFromFloat(0.85),
			PointsRate:    decimal.NewFromInt(2),
			UpgradeAmount: models.NewMoneyFromInt(10000),
		},
	}
	for _, level := range levels {
		var existing models.MemberLevel
		if err := models.DB.Where("level_order = ?", level.LevelOrder).First(&existing).Error; err == nil {
			printf("Level already exists: %s", existing.Name)
			continue
		}
		if err := models.DB.Create(&level).Error; err != nil {
			printf("Failed to create level %s: %v", level.Name, err)
			continue
		}
		printf("Created level: %s", level.Name)
	}
}

func seedCategories(printf printfFunc) {
	names := []string{"护肤产品", "美发用品", "养生礼盒"}
	for i, name := range names {
		var existing models.ProductCategory
		if err := models.DB.Where("name = ?", name).First(&existing).Error; err == nil {
			printf("Category already exists: %s", name)
			continue
		}
		category := models.ProductCategory{Name: name, SortOrder: i + 1}
		if err := models.DB.Create(&category).Error; err != nil {
			printf("Failed to create category %s: %v", name, err)
			continue
		}
		printf("Created category: %s", name)
	}
}

func seedProducts(printf printfFunc) {
	var category models.ProductCategory
	if err := models.DB.Where("name = ?", "护肤产品").First(&category).Error; err != nil {
		printf("Skip product seed, category missing: %v", err)
		return
	}
	products := []models.Product{
		{CategoryID: category.ID, Name: "玻尿酸补水面膜", Price: models.NewMoneyFromInt(128), Cost: models.NewMoneyFromInt(45), MinStock: 10, Unit: "盒", Status: constants.ProductStatusOnSale},
		{CategoryID: category.ID, Name: "烟酰胺精华液", Price: models.NewMoneyFromInt(268), Cost: models.NewMoneyFromInt(96), MinStock: 5, Unit: "瓶", Status: constants.ProductStatusOnSale},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err == nil {
			printf("Product already exists: %s", product.Name)
			continue
		}
		if err := models.DB.Create(&product).Error; err != nil {
			printf("Failed to create product %s: %v", product.Name, err)
			continue
		}
		printf("Created product: %s", product.Name)
	}
}

func seedServiceItems(printf printfFunc) {
	items := []models.ServiceItem{
		{Name: "深层清洁面部护理", Category: "面部护理", Price: models.NewMoneyFromInt(198), Duration: 60, Status: constants.ServiceStatusActive},
		{Name: "全身经络推拿", Category: "推拿按摩", Price: models.NewMoneyFromInt(298), Duration: 90, Status: constants.ServiceStatusActive},
		{Name: "头皮养护洗剪吹", Category: "美发", Price: models.NewMoneyFromInt(88), Duration: 45, Status: constants.ServiceStatusActive},
	}
	for _, item := range items {
		var existing models.ServiceItem
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err == nil {
			printf("Service item already exists: %s", item.Name)
			continue
		}
		if err := models.DB.Create(&item).Error; err != nil {
			printf("Failed to create service item %s: %v", item.Name, err)
			continue
		}
		printf("Created service item: %s", item.Name)
	}
}

func seedStaff(printf printfFunc) {
	staff := []models.Staff{
		{Name: "王美琪", Phone: "13800000001", Role: constants.StaffRoleTechnician, Status: constants.StaffStatusActive},
		{Name: "李晓燕", Phone: "13800000002", Role: constants.StaffRoleTechnician, Status: constants.StaffStatusActive},
		{Name: "赵雪", Phone: "13800000003", Role: constants.StaffRoleCashier, Status: constants.StaffStatusActive},
	}
	for _, member := range staff {
		var existing models.Staff
		if err := models.DB.Where("phone = ?", member.Phone).First(&existing).Error; err == nil {
			printf("Staff already exists: %s", member.Name)
			continue
		}
		if err := models.DB.Create(&member).Error; err != nil {
			printf("Failed to create staff %s: %v", member.Name, err)
			continue
		}
		printf("Created staff: %s", member.Name)
	}
}

func seedPackages(printf printfFunc) {
	packages := []models.RechargePackage{
		{Name: "充1000送100", Amount: models.NewMoneyFromInt(1000), GiftAmount: models.NewMoneyFromInt(100), Status: constants.RechargePackageStatusActive},
		{Name: "充3000送450", Amount: models.NewMoneyFromInt(3000), GiftAmount: models.NewMoneyFromInt(450), Status: constants.RechargePackageStatusActive},
		{Name: "充5000送1000", Amount: models.NewMoneyFromInt(5000), GiftAmount: models.NewMoneyFromInt(1000), Status: constants.RechargePackageStatusActive},
	}
	for _, pkg := range packages {
		var existing models.RechargePackage
		if err := models.DB.Where("name = ?", pkg.Name).First(&existing).Error; err == nil {
			printf("Package already exists: %s", pkg.Name)
			continue
		}
		if err := models.DB.Create(&pkg).Error; err != nil {
			printf("Failed to create package %s: %v", pkg.Name, err)
			continue
		}
		printf("Created package: %s", pkg.Name)
	}
}

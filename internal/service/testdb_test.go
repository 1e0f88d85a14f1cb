package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/meiye-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Member{},
		&models.MemberLevel{},
		&models.ProductCategory{},
		&models.Product{},
		&models.ServiceItem{},
		&models.Staff{},
		&models.ConsumeRecord{},
		&models.ConsumeItem{},
		&models.RechargeRecord{},
		&models.RechargePackage{},
		&models.StockLog{},
		&models.Appointment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create fixture %T: %v", value, err)
	}
}

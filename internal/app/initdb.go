package app

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/stockbill/internal/auth"
	"github.com/talkincode/stockbill/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WarehouseSchema owns families, products, users and the audit log
func WarehouseSchema() Schema {
	return Schema{Name: "warehouse", Tables: domain.WarehouseTables, Seed: SeedWarehouse}
}

// InvoicingSchema owns clients and invoices
func InvoicingSchema() Schema {
	return Schema{Name: "invoicing", Tables: domain.InvoicingTables, Seed: SeedInvoicing}
}

// SeedWarehouse creates the demo account and catalogue on an empty database
func SeedWarehouse(db *gorm.DB) error {
	if err := checkDemoUser(db); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&domain.Family{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	today := domain.Today()
	families := []domain.Family{
		{Name: "Laptops", Products: []domain.Product{
			{Name: "Ultrabook 13", Price: decimal.RequireFromString("999.00"), OnboardDate: today},
			{Name: "Workstation 16", Price: decimal.RequireFromString("1899.50"), OnboardDate: today},
		}},
		{Name: "Monitors", Products: []domain.Product{
			{Name: "Monitor 24", Price: decimal.RequireFromString("149.90"), OnboardDate: today},
			{Name: "Monitor 32 curved", Price: decimal.RequireFromString("379.00"), OnboardDate: today, Discontinued: true},
		}},
		{Name: "Accessories", Products: []domain.Product{
			{Name: "Wireless mouse", Price: decimal.RequireFromString("19.99"), OnboardDate: today},
			{Name: "Mechanical keyboard", Price: decimal.RequireFromString("89.00"), OnboardDate: today},
		}},
	}
	if err := db.Create(&families).Error; err != nil {
		return err
	}
	zap.L().Info("initialized demo catalogue", zap.Int("families", len(families)))
	return nil
}

// checkDemoUser makes sure the demo account can log in
func checkDemoUser(db *gorm.DB) error {
	const demoEmail = "admin@stockbill.local"
	const defaultPassword = "stockbill"

	var user domain.User
	err := db.Where("email = ?", demoEmail).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, err := auth.Hash(defaultPassword, "")
		if err != nil {
			return err
		}
		if err := db.Create(&domain.User{
			Email:    demoEmail,
			Password: hashed.Hash,
			Salt:     hashed.Salt,
		}).Error; err != nil {
			zap.L().Error("failed to create demo user", zap.Error(err))
			return err
		}
		zap.L().Info("initialized demo user", zap.String("email", demoEmail))
		return nil
	case err != nil:
		zap.L().Error("failed to query demo user", zap.Error(err))
		return err
	}

	if user.Salt != "" {
		return nil
	}
	// the account was registered through the encrypt flow, reset it to a salted hash
	hashed, err := auth.Hash(defaultPassword, "")
	if err != nil {
		return err
	}
	zap.L().Warn("repaired demo user", zap.String("email", demoEmail))
	return db.Model(&domain.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"password": hashed.Hash,
		"salt":     hashed.Salt,
	}).Error
}

// SeedInvoicing creates demo clients with paid and unpaid invoices
func SeedInvoicing(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Client{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	day := func(offset int) time.Time {
		return domain.Today().AddDate(0, 0, -offset)
	}
	clients := []domain.Client{
		{Name: "Ferreteria Norte", City: "Madrid", Invoices: []domain.Invoice{
			{Date: day(40), Amount: decimal.RequireFromString("1200.00"), Paid: true},
			{Date: day(5), Amount: decimal.RequireFromString("310.45"), Paid: false},
		}},
		{Name: "Bazar Central", City: "Valencia", Invoices: []domain.Invoice{
			{Date: day(20), Amount: decimal.RequireFromString("89.90"), Paid: true},
		}},
		{Name: "Libreria Sur", City: "Madrid"},
	}
	if err := db.Create(&clients).Error; err != nil {
		return err
	}
	zap.L().Info("initialized demo clients", zap.Int("clients", len(clients)))
	return nil
}

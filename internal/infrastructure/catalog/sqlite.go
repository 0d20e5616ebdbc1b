package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vegist/backend/internal/domain"
)

// productRecord is the products table row
type productRecord struct {
	ID            string                `gorm:"primaryKey;column:id"`
	Position      int                   `gorm:"column:position;not null;index"`
	Name          string                `gorm:"column:name;not null"`
	Category      string                `gorm:"column:category;not null;index"`
	Brand         string                `gorm:"column:brand"`
	Price         string                `gorm:"column:price;not null"`
	OriginalPrice string                `gorm:"column:original_price"`
	Currency      string                `gorm:"column:currency"`
	Rating        float64               `gorm:"column:rating"`
	ReviewCount   int                   `gorm:"column:review_count"`
	InStock       bool                  `gorm:"column:in_stock"`
	Description   string                `gorm:"column:description"`
	Weight        string                `gorm:"column:weight"`
	Images        []string              `gorm:"column:images;serializer:json"`
	Stores        []string              `gorm:"column:stores;serializer:json"`
	Popularity    float64               `gorm:"column:popularity"`
	Discount      float64               `gorm:"column:discount"`
	Variants      *domain.VariantConfig `gorm:"column:variants;serializer:json"`
}

func (productRecord) TableName() string { return "products" }

func toRecord(p domain.Product, position int) productRecord {
	return productRecord{
		ID:            p.ID,
		Position:      position,
		Name:          p.Name,
		Category:      p.Category,
		Brand:         p.Brand,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Currency:      p.Currency,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		InStock:       p.InStock,
		Description:   p.Description,
		Weight:        p.Weight,
		Images:        p.Images,
		Stores:        p.Stores,
		Popularity:    p.Popularity,
		Discount:      p.Discount,
		Variants:      p.Variants,
	}
}

func (r productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Category:      r.Category,
		Brand:         r.Brand,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Currency:      r.Currency,
		Rating:        r.Rating,
		ReviewCount:   r.ReviewCount,
		InStock:       r.InStock,
		Description:   r.Description,
		Weight:        r.Weight,
		Images:        r.Images,
		Stores:        r.Stores,
		Popularity:    r.Popularity,
		Discount:      r.Discount,
		Variants:      r.Variants,
	}
}

// SQLiteRepository stores the catalog in SQLite through gorm
type SQLiteRepository struct {
	db *gorm.DB
}

// OpenSQLite opens dsn and migrates the products table
func OpenSQLite(dsn string) (*SQLiteRepository, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	return NewSQLiteRepository(db)
}

// NewSQLiteRepository migrates the products table on db
func NewSQLiteRepository(db *gorm.DB) (*SQLiteRepository, error) {
	if err := db.AutoMigrate(&productRecord{}); err != nil {
		return nil, fmt.Errorf("migrating products: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Seed inserts products when the table is empty. It reports how many rows were written.
func (r *SQLiteRepository) Seed(ctx context.Context, products []domain.Product) (int, error) {
	if err := ValidateProducts(products); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&productRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	records := make([]productRecord, len(products))
	for i, p := range products {
		records[i] = toRecord(p, i)
	}
	if len(records) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).Create(&records).Error; err != nil {
		return 0, fmt.Errorf("seeding products: %w", err)
	}
	return len(records), nil
}

// List returns every product in insertion order
func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Product, error) {
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("position asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	products := make([]domain.Product, len(records))
	for i, rec := range records {
		products[i] = rec.toDomain()
	}
	return products, nil
}

// Get returns the product with id
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	var rec productRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading product %s: %w", id, err)
	}
	p := rec.toDomain()
	return &p, nil
}

// Close releases the underlying connection pool
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

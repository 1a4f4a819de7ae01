package database

import (
	"fmt"
	"strings"

	"catsync/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development and tests
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		// SQLite has no gen_random_uuid(), so the schema comes from the
		// models (uuids are generated in BeforeCreate hooks).
		err = db.AutoMigrate(
			&models.Category{},
			&models.Product{},
			&models.ProductImage{},
			&models.ProductAttribute{},
			&models.ProductVariation{},
			&models.ProductCategory{},
			&models.ProductTag{},
			&models.RelatedProduct{},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate tables: %w", err)
		}
		return &Database{DB: db}, nil
	}

	// PostgreSQL for production
	db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create tables manually with raw SQL
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		slug TEXT UNIQUE NOT NULL,
		description TEXT,
		image TEXT,
		product_count INTEGER DEFAULT 0,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		woo_id BIGINT,
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		description TEXT,
		short_description TEXT,
		sku TEXT,
		price DECIMAL(10,2) NOT NULL DEFAULT 0,
		regular_price DECIMAL(10,2),
		sale_price DECIMAL(10,2),
		on_sale BOOLEAN DEFAULT false,
		stock_quantity INTEGER,
		stock_status TEXT DEFAULT 'instock',
		manage_stock BOOLEAN DEFAULT false,
		weight TEXT,
		status TEXT DEFAULT 'publish',
		featured BOOLEAN DEFAULT false,
		product_type TEXT DEFAULT 'simple',
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS product_images (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(id),
		src TEXT NOT NULL,
		alt TEXT,
		position INTEGER DEFAULT 0,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS product_attributes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(id),
		name TEXT NOT NULL,
		value TEXT,
		position INTEGER DEFAULT 0,
		visible BOOLEAN DEFAULT true,
		variation BOOLEAN DEFAULT false
	);

	CREATE TABLE IF NOT EXISTS product_variations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(id),
		woo_id BIGINT,
		sku TEXT,
		price DECIMAL(10,2) NOT NULL DEFAULT 0,
		regular_price DECIMAL(10,2),
		sale_price DECIMAL(10,2),
		on_sale BOOLEAN DEFAULT false,
		stock_quantity INTEGER,
		stock_status TEXT DEFAULT 'instock',
		manage_stock BOOLEAN DEFAULT false,
		weight TEXT,
		length TEXT,
		width TEXT,
		height TEXT,
		image TEXT,
		attributes TEXT,
		position INTEGER DEFAULT 0,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS product_categories (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(id),
		category_id UUID NOT NULL REFERENCES categories(id),
		CONSTRAINT idx_product_category UNIQUE (product_id, category_id)
	);

	CREATE TABLE IF NOT EXISTS product_tags (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(id),
		name TEXT NOT NULL,
		slug TEXT
	);

	CREATE TABLE IF NOT EXISTS related_products (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(id),
		related_id UUID NOT NULL REFERENCES products(id)
	);
	`

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package repository

import (
	"context"
	"strings"

	"go-stock-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ProductFilter narrows FindAll. Empty fields match everything.
type ProductFilter struct {
	Search   string // case-insensitive substring of name or SKU
	Category string
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	CreateBatch(ctx context.Context, products []model.Product) error
	FindAll(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindLowStock(ctx context.Context, threshold int) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID, deletedBy string) error
	DecrementQuantity(ctx context.Context, id uuid.UUID, qty int, updatedBy string) (int, error)
	Count(ctx context.Context) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(product).Error, "create product")
}

// CreateBatch inserts all products or none of them.
func (r *productRepo) CreateBatch(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range products {
			if err := tx.Create(&products[i]).Error; err != nil {
				return errors.Wrapf(err, "create product %s", products[i].SKU)
			}
		}
		return nil
	})
}

func (r *productRepo) FindAll(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	query := r.db.WithContext(ctx).Order("name ASC")
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	return products, nil
}

// FindByID always reads the row from the database; callers that need the
// authoritative quantity rely on this.
func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrap(err, "find product")
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrap(err, "find product by sku")
	}
	return &product, nil
}

// FindLowStock returns products whose quantity is strictly below threshold,
// lowest quantity first.
func (r *productRepo) FindLowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("quantity < ?", threshold).
		Order("quantity ASC, name ASC").
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "find low stock products")
	}
	return products, nil
}

func (r *productRepo) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category <> ''").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return categories, nil
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"sku":         product.SKU,
			"name":        product.Name,
			"category":    product.Category,
			"price":       product.Price,
			"quantity":    product.Quantity,
			"description": product.Description,
			"updated_by":  product.UpdatedBy,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "update product")
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
			return errors.Wrap(err, "mark product deleted_by")
		}
		result := tx.Delete(&model.Product{}, "id = ?", id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "delete product")
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}

// DecrementQuantity subtracts qty in a single conditional UPDATE and returns
// the quantity left afterwards. The WHERE clause guarantees the stored
// quantity never goes below zero; when it would, nothing is written and
// ErrStockConflict is returned.
func (r *productRepo) DecrementQuantity(ctx context.Context, id uuid.UUID, qty int, updatedBy string) (int, error) {
	var remaining int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Product{}).
			Where("id = ? AND quantity >= ?", id, qty).
			Updates(map[string]interface{}{
				"quantity":   gorm.Expr("quantity - ?", qty),
				"updated_by": updatedBy,
			})
		if result.Error != nil {
			return errors.Wrap(result.Error, "decrement quantity")
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return errors.Wrap(err, "check product after failed decrement")
			}
			if count == 0 {
				return ErrProductNotFound
			}
			return ErrStockConflict
		}
		return tx.Model(&model.Product{}).Select("quantity").Where("id = ?", id).Scan(&remaining).Error
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, errors.Wrap(err, "count products")
}

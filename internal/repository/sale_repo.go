package repository

import (
	"context"
	"time"

	"go-stock-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	FindAll(ctx context.Context) ([]model.Sale, error)
	FindRecent(ctx context.Context, limit int) ([]model.Sale, error)
	FindSince(ctx context.Context, since time.Time) ([]model.Sale, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	Delete(ctx context.Context, id uuid.UUID, deletedBy string) error
	GetSummary(ctx context.Context) (*SalesSummary, error)
}

// SalesSummary untuk header halaman sales
type SalesSummary struct {
	TotalSales    int64   `json:"total_sales"`
	TotalRevenue  float64 `json:"total_revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(ctx context.Context, sale *model.Sale) error {
	return errors.Wrap(r.db.WithContext(ctx).Omit("Product").Create(sale).Error, "create sale")
}

// productPreload keeps sales of soft-deleted products displayable.
func productPreload(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

func (r *saleRepo) FindAll(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Product", productPreload).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, errors.Wrap(err, "find sales")
}

func (r *saleRepo) FindRecent(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Product", productPreload).
		Order("created_at DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, errors.Wrap(err, "find recent sales")
}

// FindSince returns sales created at or after since, oldest first.
func (r *saleRepo) FindSince(ctx context.Context, since time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Product", productPreload).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, errors.Wrap(err, "find sales since")
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.WithContext(ctx).Preload("Product", productPreload).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, errors.Wrap(err, "find sale")
	}
	return &sale, nil
}

// Delete soft-deletes the sale only. Product quantity is left as it is.
func (r *saleRepo) Delete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Sale{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
			return errors.Wrap(err, "mark sale deleted_by")
		}
		result := tx.Delete(&model.Sale{}, "id = ?", id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "delete sale")
		}
		if result.RowsAffected == 0 {
			return ErrSaleNotFound
		}
		return nil
	})
}

func (r *saleRepo) GetSummary(ctx context.Context) (*SalesSummary, error) {
	var summary SalesSummary
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COUNT(*) AS total_sales, COALESCE(SUM(quantity * price), 0) AS total_revenue").
		Scan(&summary).Error
	if err != nil {
		return nil, errors.Wrap(err, "sales summary")
	}
	if summary.TotalSales > 0 {
		summary.AvgOrderValue = summary.TotalRevenue / float64(summary.TotalSales)
	}
	return &summary, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"go-stock-ledger/internal/analytics"
	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidRange = errors.New("range must be one of 6m, 12m")

// AnalyticsRanges maps the accepted ?range= values to a number of months.
var AnalyticsRanges = map[string]int{
	"6m":  6,
	"12m": 12,
}

type DashboardStats struct {
	TotalProducts      int64                   `json:"total_products"`
	TotalSales         int64                   `json:"total_sales"`
	TotalRevenue       float64                 `json:"total_revenue"`
	LowStockCount      int                     `json:"low_stock_count"`
	InventoryValuation float64                 `json:"inventory_valuation"`
	RecentSales        []model.Sale            `json:"recent_sales"`
	LowStock           []model.ProductResponse `json:"low_stock"`
}

type AnalyticsReport struct {
	Range             string                         `json:"range"`
	Monthly           []analytics.MonthlyRevenue     `json:"monthly"`
	TopProducts       []analytics.ProductPerformance `json:"top_products"`
	TotalRevenue      float64                        `json:"total_revenue"`
	TotalSales        int                            `json:"total_sales"`
	AverageOrderValue float64                        `json:"average_order_value"`
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetAnalytics(ctx context.Context, rangeKey string) (*AnalyticsReport, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	thresholds  Thresholds
	recentLimit int
	now         func() time.Time
}

func NewDashboardService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, thresholds Thresholds, recentLimit int) DashboardService {
	return &dashboardService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		thresholds:  thresholds,
		recentLimit: recentLimit,
		now:         time.Now,
	}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var (
		products []model.Product
		lowStock []model.Product
		recent   []model.Sale
		summary  *repository.SalesSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.productRepo.FindAll(gctx, repository.ProductFilter{})
		return err
	})
	g.Go(func() (err error) {
		lowStock, err = s.productRepo.FindLowStock(gctx, s.thresholds.Low)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.saleRepo.FindRecent(gctx, s.recentLimit)
		return err
	})
	g.Go(func() (err error) {
		summary, err = s.saleRepo.GetSummary(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	low := make([]model.ProductResponse, 0, len(lowStock))
	for i := range lowStock {
		low = append(low, lowStock[i].ToResponse(s.thresholds.Low, s.thresholds.Medium))
	}

	return &DashboardStats{
		TotalProducts:      int64(len(products)),
		TotalSales:         summary.TotalSales,
		TotalRevenue:       summary.TotalRevenue,
		LowStockCount:      len(lowStock),
		InventoryValuation: analytics.InventoryValuation(products),
		RecentSales:        recent,
		LowStock:           low,
	}, nil
}

func (s *dashboardService) GetAnalytics(ctx context.Context, rangeKey string) (*AnalyticsReport, error) {
	if rangeKey == "" {
		rangeKey = "6m"
	}
	months, ok := AnalyticsRanges[rangeKey]
	if !ok {
		return nil, ErrInvalidRange
	}

	now := s.now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	sales, err := s.saleRepo.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	return &AnalyticsReport{
		Range:             rangeKey,
		Monthly:           analytics.Monthly(sales, months, now),
		TopProducts:       analytics.TopProducts(sales, 5),
		TotalRevenue:      analytics.Revenue(sales),
		TotalSales:        len(sales),
		AverageOrderValue: analytics.AverageOrderValue(sales),
	}, nil
}

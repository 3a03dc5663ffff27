package service

import (
	"context"
	"errors"
	"fmt"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/ws"
	"go-stock-ledger/pkg/validator"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrSKUExists = errors.New("SKU already exists")

// ProductInput is the writable part of a product.
type ProductInput struct {
	SKU         string  `json:"sku" validate:"required,max=50"`
	Name        string  `json:"name" validate:"required,max=255"`
	Category    string  `json:"category" validate:"max=100"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Description string  `json:"description"`
}

type InventoryService interface {
	CreateProduct(ctx context.Context, in *ProductInput, actor Actor) (*model.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in *ProductInput, actor Actor) (*model.ProductResponse, error)
	DeleteProduct(ctx context.Context, id uuid.UUID, actor Actor) error
	GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductResponse, error)
	GetAllProducts(ctx context.Context, filter repository.ProductFilter) ([]model.ProductResponse, error)
	GetCategories(ctx context.Context) ([]string, error)
	GetLowStock(ctx context.Context) ([]model.ProductResponse, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	notifier    Notifier
	thresholds  Thresholds
}

func NewInventoryService(pRepo repository.ProductRepository, notifier Notifier, thresholds Thresholds) InventoryService {
	return &inventoryService{
		productRepo: pRepo,
		notifier:    notifier,
		thresholds:  thresholds,
	}
}

func (s *inventoryService) respond(p *model.Product) *model.ProductResponse {
	resp := p.ToResponse(s.thresholds.Low, s.thresholds.Medium)
	return &resp
}

func (s *inventoryService) respondAll(products []model.Product) []model.ProductResponse {
	out := make([]model.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, products[i].ToResponse(s.thresholds.Low, s.thresholds.Medium))
	}
	return out
}

func (s *inventoryService) CreateProduct(ctx context.Context, in *ProductInput, actor Actor) (*model.ProductResponse, error) {
	// 1. Validasi Struct Dasar
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	// 2. Cek Duplikasi SKU
	if _, err := s.productRepo.FindBySKU(ctx, in.SKU); err == nil {
		return nil, ErrSKUExists
	} else if !errors.Is(err, repository.ErrProductNotFound) {
		return nil, err
	}

	product := &model.Product{
		SKU:         in.SKU,
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: in.Description,
	}
	product.CreatedBy = actor.ID
	product.UpdatedBy = actor.ID

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"product_id": product.ID, "sku": product.SKU, "user_id": actor.ID}).Info("product created")
	s.notifier.Publish(ws.Event{
		Type:    ws.EventStockUpdate,
		Action:  "product_created",
		Message: fmt.Sprintf("%s created product '%s'", actor.displayName(), product.Name),
		Data:    productEventData(product),
		User:    actor.event(),
	})
	return s.respond(product), nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, id uuid.UUID, in *ProductInput, actor Actor) (*model.ProductResponse, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.SKU != existing.SKU {
		if other, err := s.productRepo.FindBySKU(ctx, in.SKU); err == nil && other.ID != id {
			return nil, ErrSKUExists
		} else if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
	}

	oldQuantity := existing.Quantity
	existing.SKU = in.SKU
	existing.Name = in.Name
	existing.Category = in.Category
	existing.Price = in.Price
	existing.Quantity = in.Quantity
	existing.Description = in.Description
	existing.UpdatedBy = actor.ID

	if err := s.productRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	data := productEventData(existing)
	data["old_quantity"] = oldQuantity
	s.notifier.Publish(ws.Event{
		Type:    ws.EventStockUpdate,
		Action:  "product_updated",
		Message: fmt.Sprintf("%s updated product '%s'", actor.displayName(), existing.Name),
		Data:    data,
		User:    actor.event(),
	})
	return s.respond(existing), nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, id uuid.UUID, actor Actor) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id, actor.ID); err != nil {
		return err
	}

	log.WithFields(log.Fields{"product_id": id, "user_id": actor.ID}).Info("product deleted")
	s.notifier.Publish(ws.Event{
		Type:    ws.EventStockUpdate,
		Action:  "product_deleted",
		Message: fmt.Sprintf("%s deleted product '%s'", actor.displayName(), product.Name),
		Data:    map[string]interface{}{"id": id},
		User:    actor.event(),
	})
	return nil
}

func (s *inventoryService) GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(product), nil
}

func (s *inventoryService) GetAllProducts(ctx context.Context, filter repository.ProductFilter) ([]model.ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.respondAll(products), nil
}

func (s *inventoryService) GetCategories(ctx context.Context) ([]string, error) {
	return s.productRepo.Categories(ctx)
}

func (s *inventoryService) GetLowStock(ctx context.Context) ([]model.ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx, s.thresholds.Low)
	if err != nil {
		return nil, err
	}
	return s.respondAll(products), nil
}

func productEventData(p *model.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":       p.ID,
		"sku":      p.SKU,
		"name":     p.Name,
		"quantity": p.Quantity,
		"price":    p.Price,
	}
}

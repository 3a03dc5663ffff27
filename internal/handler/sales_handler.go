package handler

import (
	"encoding/json"
	"errors"

	"go-stock-ledger/internal/ledger"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/service"
	"go-stock-ledger/pkg/validator"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// CreateSaleRequest is the POST /sales body. Numbers stay as json.Number so
// "5.0" or "1e3" for quantity is rejected instead of silently truncated.
type CreateSaleRequest struct {
	ProductID     string      `json:"product_id" validate:"required"`
	Quantity      json.Number `json:"quantity" validate:"required"`
	Price         json.Number `json:"price" validate:"required"`
	CustomerName  string      `json:"customer_name" validate:"max=255"`
	PaymentMethod string      `json:"payment_method" validate:"max=20"`
}

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	var body CreateSaleRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := validator.Validate(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	req, err := ledger.ParseSaleRequest(body.ProductID, body.Quantity.String(), body.Price.String())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	req.CustomerName = body.CustomerName
	req.PaymentMethod = body.PaymentMethod

	out, err := h.service.RecordSale(c.UserContext(), req, actorFrom(c))
	if err == nil {
		return c.Status(201).JSON(fiber.Map{
			"message": "Sale recorded",
			"data":    out.Sale,
			"product": out.Product,
		})
	}
	return saleError(c, out, err)
}

// saleError translates a non-committed ledger outcome into a response.
func saleError(c *fiber.Ctx, out *ledger.Outcome, err error) error {
	kind, _ := ledger.KindOf(err)
	switch kind {
	case ledger.UpdateFailure:
		return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
			"warning": ledger.ErrPartialCommit.Error() + "; please adjust the product quantity manually",
			"sale":    out.Sale,
		})
	case ledger.ValidationFailure:
		if errors.Is(err, ledger.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":     err.Error(),
				"available": out.PreviousQuantity,
			})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case ledger.FetchFailure:
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		}
		log.WithError(err).Error("sale fetch failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to fetch product"})
	default:
		log.WithError(err).Error("sale insert failed")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record sale"})
	}
}

func (h *SalesHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAllSales(c.UserContext())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

func (h *SalesHandler) GetSale(c *fiber.Ctx) error {
	saleID, err := parseUUID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.GetSale(c.UserContext(), saleID)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sale)
}

// DeleteSale removes the sale record only. Stock is not restored.
func (h *SalesHandler) DeleteSale(c *fiber.Ctx) error {
	saleID, err := parseUUID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.service.DeleteSale(c.UserContext(), saleID, actorFrom(c)); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
		}
		log.WithError(err).WithField("sale_id", saleID).Error("delete sale failed")
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"message": "Sale deleted"})
}

func (h *SalesHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetSummary(c.UserContext())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sales summary"})
	}
	return c.JSON(summary)
}

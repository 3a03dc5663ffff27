package handler

import (
	"errors"

	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/service"
	"go-stock-ledger/pkg/validator"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// productError maps catalog errors to a status code.
func productError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	case errors.Is(err, service.ErrSKUExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case validator.IsValidationError(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		log.WithError(err).WithField("path", c.Path()).Error("product request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(c.UserContext(), &input, actorFrom(c))
	if err != nil {
		return productError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(c.UserContext(), productID, &input, actorFrom(c))
	if err != nil {
		return productError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(c.UserContext(), productID, actorFrom(c)); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		}
		log.WithError(err).WithField("product_id", productID).Error("delete product failed")
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// GetProducts supports ?q= (name or SKU) and ?category=.
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext(), repository.ProductFilter{
		Search:   c.Query("q"),
		Category: c.Query("category"),
	})
	if err != nil {
		log.WithError(err).Error("list products failed")
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(c.UserContext(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(product)
}

func (h *InventoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories(c.UserContext())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(categories)
}

func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.service.GetLowStock(c.UserContext())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch low stock alerts"})
	}
	return c.JSON(fiber.Map{
		"count": len(products),
		"data":  products,
	})
}

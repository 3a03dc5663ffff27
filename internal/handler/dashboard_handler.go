package handler

import (
	"errors"

	"go-stock-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.UserContext())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(stats)
}

// GetAnalytics returns monthly revenue and top products
// Query params: range (6m | 12m, default 6m)
func (h *DashboardHandler) GetAnalytics(c *fiber.Ctx) error {
	report, err := h.service.GetAnalytics(c.UserContext(), c.Query("range", "6m"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch analytics"})
	}

	return c.JSON(report)
}

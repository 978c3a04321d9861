package handlers

import (
	"log"
	"time"

	"github.com/Manzzzx/cafe-pos/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles HTTP requests for sales reports.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Get("/daily", h.HandleDailyReport)
}

// HandleDailyReport returns the sales summary for one day. The day defaults
// to today and can be overridden with ?date=YYYY-MM-DD.
func (h *ReportHandler) HandleDailyReport(c *fiber.Ctx) error {
	day := time.Now()
	if dateParam := c.Query("date"); dateParam != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateParam, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid date, expected YYYY-MM-DD",
				"error":   err.Error(),
			})
		}
		day = parsed
	}

	report, err := h.service.DailySummary(day)
	if err != nil {
		log.Printf("Error building daily report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build report",
			"error":   err.Error(),
		})
	}
	return c.JSON(report)
}

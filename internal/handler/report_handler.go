package handler

import (
	"time"

	"go-saristore-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service  service.ReportService
	activity service.ActivityLogger
}

func NewReportHandler(s service.ReportService, activity service.ActivityLogger) *ReportHandler {
	return &ReportHandler{service: s, activity: activity}
}

func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	stats, err := h.service.Dashboard()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	now := time.Now()
	var start, end time.Time

	if rawStart, rawEnd := c.Query("start_date"), c.Query("end_date"); rawStart != "" && rawEnd != "" {
		var errStart, errEnd error
		start, errStart = time.Parse("2006-01-02", rawStart)
		end, errEnd = time.Parse("2006-01-02", rawEnd)
		if errStart != nil || errEnd != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date range"})
		}
		end = end.AddDate(0, 0, 1)
	} else {
		switch c.Query("period", "week") {
		case "today":
			start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		case "month":
			start = now.AddDate(0, -1, 0)
		case "year":
			start = now.AddDate(-1, 0, 0)
		default: // week
			start = now.AddDate(0, 0, -7)
		}
		end = now
	}

	report, err := h.service.Sales(start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func (h *ReportHandler) GetRecentActivity(c *fiber.Ctx) error {
	entries, err := h.activity.Recent(c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

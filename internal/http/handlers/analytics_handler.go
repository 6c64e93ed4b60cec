package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pathlab-audit/backend/internal/http/dto"
	"github.com/pathlab-audit/backend/internal/services"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	log              *zap.Logger
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, log: log}
}

func dateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	from, err := parseDateParam(c, "dateFrom")
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDateParam(c, "dateTo")
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func (h *AnalyticsHandler) Stats(c *fiber.Ctx) error {
	tenantID, err := resolveTenant(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	stats, err := h.analyticsService.Stats(c.Context(), tenantID, from, to, c.Query("period"))
	if err != nil {
		h.log.Error("stats query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: stats})
}

func (h *AnalyticsHandler) ComplianceReport(c *fiber.Ctx) error {
	standard := c.Query("standard")
	if standard == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "standard is required"})
	}

	tenantID, err := resolveTenant(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	report, err := h.analyticsService.ComplianceReport(c.Context(), tenantID, standard, from, to)
	if err != nil {
		h.log.Error("compliance report failed", zap.Error(err), zap.String("standard", standard))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: report})
}

func (h *AnalyticsHandler) RiskAnalysis(c *fiber.Ctx) error {
	tenantID, err := resolveTenant(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	analysis, err := h.analyticsService.RiskAnalysis(c.Context(), tenantID, from, to)
	if err != nil {
		h.log.Error("risk analysis failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: analysis})
}

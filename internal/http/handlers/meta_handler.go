package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/pathlab-audit/backend/internal/http/dto"
	"github.com/pathlab-audit/backend/internal/models"
)

// MetaHandler exposes the closed enum sets so clients can populate filter
// controls without hard-coding them.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

func (h *MetaHandler) GetActions(c *fiber.Ctx) error {
	actions := models.Actions()
	sort.Strings(actions)
	return c.JSON(dto.MetaResponse{OK: true, Data: actions})
}

func (h *MetaHandler) GetCategories(c *fiber.Ctx) error {
	categories := models.Categories()
	sort.Strings(categories)
	return c.JSON(dto.MetaResponse{OK: true, Data: categories})
}

func (h *MetaHandler) GetRiskLevels(c *fiber.Ctx) error {
	return c.JSON(dto.MetaResponse{OK: true, Data: []string{
		models.RiskLow, models.RiskMedium, models.RiskHigh, models.RiskCritical,
	}})
}

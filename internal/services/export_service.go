package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/pathlab-audit/backend/internal/config"
	"github.com/pathlab-audit/backend/internal/models"
	"github.com/pathlab-audit/backend/internal/repositories"
	"go.uber.org/zap"
)

// Export formats
const (
	ExportJSON = "json"
	ExportCSV  = "csv"
)

// exportColumns is the fixed column set of the tabular export.
var exportColumns = []string{
	"timestamp", "actor", "action", "resource", "target",
	"riskLevel", "outcome", "ipAddress", "description", "complianceRequired",
}

type ExportService struct {
	auditRepo *repositories.AuditRepo
	cfg       *config.Config
	log       *zap.Logger
}

func NewExportService(auditRepo *repositories.AuditRepo, cfg *config.Config, log *zap.Logger) *ExportService {
	return &ExportService{auditRepo: auditRepo, cfg: cfg, log: log}
}

// Export serializes the filtered event set, capped at the configured maximum
// row count, as JSON or CSV. Returns the payload and its content type.
func (s *ExportService) Export(ctx context.Context, f repositories.AuditFilter, format string) ([]byte, string, error) {
	events, err := s.auditRepo.ListAll(ctx, f, s.cfg.ExportMaxRows)
	if err != nil {
		return nil, "", err
	}

	switch format {
	case "", ExportJSON:
		if events == nil {
			events = []models.AuditEvent{}
		}
		data, err := json.Marshal(events)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	case ExportCSV:
		data, err := flattenCSV(events)
		if err != nil {
			return nil, "", err
		}
		return data, "text/csv", nil
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
}

func flattenCSV(events []models.AuditEvent) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}

	for i := range events {
		if err := w.Write(exportRow(&events[i])); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRow(e *models.AuditEvent) []string {
	actor := "system"
	ip := ""
	if e.Actor != nil {
		actor = e.Actor.Name
		if actor == "" {
			actor = e.Actor.ID.String()
		}
		ip = e.Actor.IPAddress
	}

	target := e.Target.Name
	if target == "" {
		target = e.Target.ID
	}

	complianceRequired := "no"
	if e.Compliance != nil && e.Compliance.Regulation != "" {
		complianceRequired = "yes"
	}

	return []string{
		e.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
		actor,
		e.Action,
		e.Target.Type,
		target,
		e.RiskLevel,
		e.Outcome,
		ip,
		e.Description,
		complianceRequired,
	}
}

package dto

import "github.com/pathlab-audit/backend/internal/models"

type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type ListResponse struct {
	OK         bool                `json:"ok"`
	Logs       []models.AuditEvent `json:"logs"`
	Pagination models.Pagination   `json:"pagination"`
}

type ArchiveResponse struct {
	OK       bool  `json:"ok"`
	Archived int64 `json:"archived"`
}

type MetaResponse struct {
	OK   bool     `json:"ok"`
	Data []string `json:"data"`
}

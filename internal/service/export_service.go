package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gymadmin/gym-api/internal/models"
	appErrors "github.com/gymadmin/gym-api/pkg/errors"
	"github.com/gymadmin/gym-api/pkg/export"
)

type clientLister interface {
	List(ctx context.Context) ([]models.ClientRecord, error)
}

var rosterHeaders = []string{"Name", "DNI", "Phone", "Email", "Membership", "Price", "Registered", "Expires"}

// ExportService renders the client roster, with computed expiration dates,
// as CSV or PDF.
type ExportService struct {
	clients clientLister
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(clients clientLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		clients: clients,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

// ClientRoster renders every client in the requested format and returns the
// document bytes along with their content type. A client whose membership
// type cannot be classified fails the whole export; expiration is never
// silently skipped.
func (s *ExportService) ClientRoster(ctx context.Context, format string) ([]byte, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "csv" && format != "pdf" {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format: "+format)
	}

	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list clients")
	}

	data := export.Dataset{Headers: rosterHeaders, Rows: make([]map[string]string, 0, len(clients))}
	for _, client := range clients {
		if client.MembershipType == nil {
			return nil, "", appErrors.Wrap(fmt.Errorf("client %s has no membership", client.ID), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve membership")
		}
		expires, resolveErr := ResolveExpiration(*client.MembershipType, client.RegisteredAt)
		if resolveErr != nil {
			return nil, "", resolveErr
		}
		price := ""
		if client.MembershipPrice != nil {
			price = fmt.Sprintf("%.2f", *client.MembershipPrice)
		}
		data.Rows = append(data.Rows, map[string]string{
			"Name":       client.FullName,
			"DNI":        client.DNI,
			"Phone":      client.Phone,
			"Email":      client.Email,
			"Membership": *client.MembershipType,
			"Price":      price,
			"Registered": FormatDate(client.RegisteredAt),
			"Expires":    FormatDate(expires),
		})
	}

	if format == "csv" {
		payload, renderErr := s.csv.Render(data)
		if renderErr != nil {
			return nil, "", appErrors.Wrap(renderErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	}

	payload, renderErr := s.pdf.Render(data, "Client Roster")
	if renderErr != nil {
		return nil, "", appErrors.Wrap(renderErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, "application/pdf", nil
}

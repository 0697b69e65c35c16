// Package export writes closed shifts to a Google Sheet
package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
	"motoboy-backend/internal/models"
)

// RowAppender appends one row at the end of the export sheet
type RowAppender interface {
	AppendRow(ctx context.Context, row []interface{}) error
}

// Header names the columns written by ShiftRow
var Header = []interface{}{"Data", "Usuário", "Rótulo", "Início", "Fim", "Ganhos", "Gastos", "Lucro"}

type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ RowAppender = (*SheetsExporter)(nil)

// NewSheetsExporter authenticates with base64-encoded service account credentials
func NewSheetsExporter(ctx context.Context, credentialsBase64, spreadsheetID, sheetName string) (*SheetsExporter, error) {
	credentialsJSON, err := base64.StdEncoding.DecodeString(strings.TrimSpace(credentialsBase64))
	if err != nil {
		return nil, fmt.Errorf("decode base64 credentials: %w", err)
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	log.Printf("✅ Google Sheets exporter ready (spreadsheet=%s, sheet=%s)", spreadsheetID, sheetName)
	return &SheetsExporter{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func (e *SheetsExporter) AppendRow(ctx context.Context, row []interface{}) error {
	rng := fmt.Sprintf("%s!A:%c", e.sheetName, 'A'+len(row)-1)
	vr := &gsheet.ValueRange{Values: [][]interface{}{row}}
	_, err := e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", rng, err)
	}
	return nil
}

// ShiftRow renders a closed shift as date, user, label, start, end,
// earnings, expenses and profit in the rider's time zone
func ShiftRow(shift *models.Shift, loc *time.Location) []interface{} {
	start := time.Unix(shift.StartTime, 0).In(loc)
	end := ""
	if shift.EndTime != nil {
		end = time.Unix(*shift.EndTime, 0).In(loc).Format("15:04")
	}
	label := ""
	if shift.Label != nil {
		label = *shift.Label
	}
	return []interface{}{
		start.Format("02/01/2006"),
		shift.UserID,
		label,
		start.Format("15:04"),
		end,
		money(shift.EarningsTotal),
		money(shift.ExpensesTotal),
		money(shift.ProfitTotal),
	}
}

func money(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

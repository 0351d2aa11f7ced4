package services

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/example/merchstore/internal/export"
	"github.com/example/merchstore/internal/orders"
)

const defaultSheetsRange = "A1"

// SheetsAppender appends order rows straight to a spreadsheet through the
// Sheets API. The row matches what the web-app webhook writes: the export
// columns followed by status and creation time.
type SheetsAppender struct {
	client        *sheets.Service
	spreadsheetID string
	writeRange    string
	now           func() time.Time
}

// NewSheetsAppender creates a SheetsAppender. opts usually carries
// option.WithCredentialsFile for a service account.
func NewSheetsAppender(ctx context.Context, spreadsheetID, writeRange string, now func() time.Time, opts ...option.ClientOption) (*SheetsAppender, error) {
	client, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	if writeRange == "" {
		writeRange = defaultSheetsRange
	}
	if now == nil {
		now = time.Now
	}

	return &SheetsAppender{
		client:        client,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
		now:           now,
	}, nil
}

// Name identifies the sink in checkout receipts.
func (a *SheetsAppender) Name() string { return "sheets_api" }

// SheetRow returns the spreadsheet row for rec created at createdAt.
func SheetRow(rec orders.Record, createdAt time.Time) []interface{} {
	cols := export.Row(rec)
	row := make([]interface{}, 0, len(cols)+2)
	for _, col := range cols {
		row = append(row, col)
	}
	return append(row, webhookStatusNew, createdAt.Format(orders.DateLayout+", "+orders.TimeLayout))
}

// Submit appends one row for rec.
func (a *SheetsAppender) Submit(ctx context.Context, rec orders.Record) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{SheetRow(rec, a.now())},
	}

	_, err := a.client.Spreadsheets.Values.
		Append(a.spreadsheetID, a.writeRange, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append order %s: %w", rec.OrderNumber, err)
	}
	return nil
}

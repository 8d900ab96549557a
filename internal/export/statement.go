// Package export renders bank account statements as CSV and XLSX
// downloads. All amounts are formatted from integer cents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"setflow/internal/domain"
)

// BOM is the UTF-8 byte order mark, prepended for Excel compatibility
// on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the statement header row.
var columns = []string{
	"Date",
	"Description",
	"Supplier",
	"Project",
	"Amount",
	"Running Balance",
	"Currency",
}

// StatementRow is one rendered line of an account statement.
type StatementRow struct {
	Date        time.Time
	Description string
	Supplier    string
	Project     string
	Amount      domain.Cents
	Balance     domain.Cents
	Currency    string
}

// BuildStatement converts transactions, oldest first, into statement
// rows with a running balance. Supplier and project names are resolved
// through the lookup maps; missing entries render blank.
func BuildStatement(
	account *domain.BankAccount,
	txns []domain.Transaction,
	supplierNames map[string]string,
	projectNames map[string]string,
) []StatementRow {
	rows := make([]StatementRow, 0, len(txns))
	var balance domain.Cents
	for _, txn := range txns {
		balance += txn.AmountCents
		row := StatementRow{
			Date:        txn.OccurredAt,
			Description: txn.Description,
			Amount:      txn.AmountCents,
			Balance:     balance,
			Currency:    account.Currency,
		}
		if txn.SupplierID != nil {
			row.Supplier = supplierNames[txn.SupplierID.String()]
		}
		if txn.ProjectID != nil {
			row.Project = projectNames[txn.ProjectID.String()]
		}
		rows = append(rows, row)
	}
	return rows
}

func rowStrings(r *StatementRow) []string {
	return []string{
		r.Date.Format("2006-01-02"),
		r.Description,
		r.Supplier,
		r.Project,
		r.Amount.String(),
		r.Balance.String(),
		r.Currency,
	}
}

// Writer wraps csv.Writer for exporting statements as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows writes a batch of statement rows.
func (w *Writer) WriteRows(rows []StatementRow) error {
	for i := range rows {
		if err := w.csv.Write(rowStrings(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteXLSX renders the statement as a single-sheet workbook.
func WriteXLSX(w io.Writer, accountName string, rows []StatementRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Statement"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for ri := range rows {
		values := rowStrings(&rows[ri])
		for ci, v := range values {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", ri, err)
			}
		}
	}

	if accountName != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: accountName + " statement"}); err != nil {
			return fmt.Errorf("setting doc properties: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an account name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses
// consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition.
// Format: {sanitized_account_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(accountName, ext string) string {
	sanitized := SanitizeFilename(accountName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}

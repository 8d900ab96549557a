package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"setflow/internal/domain"
	"setflow/internal/export"
)

func TestBuildStatement_RunningBalance(t *testing.T) {
	account := &domain.BankAccount{Name: "Conta Principal", Currency: "BRL"}
	supplierID := uuid.New()
	projectID := uuid.New()

	txns := []domain.Transaction{
		{
			Description: "Client payment",
			ProjectID:   &projectID,
			AmountCents: 150_000,
			OccurredAt:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			Description: "Equipment rental",
			SupplierID:  &supplierID,
			AmountCents: -20_000,
			OccurredAt:  time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			Description: "Catering",
			AmountCents: -5_000,
			OccurredAt:  time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		},
	}
	supplierNames := map[string]string{supplierID.String(): "LocAll Equipamentos"}
	projectNames := map[string]string{projectID.String(): "Duarte Campaign"}

	rows := export.BuildStatement(account, txns, supplierNames, projectNames)

	require.Len(t, rows, 3)
	assert.Equal(t, domain.Cents(150_000), rows[0].Balance)
	assert.Equal(t, domain.Cents(130_000), rows[1].Balance)
	assert.Equal(t, domain.Cents(125_000), rows[2].Balance)
	assert.Equal(t, "Duarte Campaign", rows[0].Project)
	assert.Equal(t, "LocAll Equipamentos", rows[1].Supplier)
	assert.Empty(t, rows[2].Supplier)
	assert.Equal(t, "BRL", rows[2].Currency)
}

func TestBuildStatement_UnresolvedNamesRenderBlank(t *testing.T) {
	account := &domain.BankAccount{Name: "Reserve", Currency: "BRL"}
	supplierID := uuid.New()

	txns := []domain.Transaction{
		{Description: "Mystery payout", SupplierID: &supplierID, AmountCents: -1_000},
	}

	rows := export.BuildStatement(account, txns, map[string]string{}, map[string]string{})

	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Supplier)
}

func TestWriter_CSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := export.NewWriter(&buf)

	rows := []export.StatementRow{
		{
			Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Description: "Client payment",
			Amount:      150_000,
			Balance:     150_000,
			Currency:    "BRL",
		},
	}

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRows(rows))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Date", "Description", "Supplier", "Project", "Amount", "Running Balance", "Currency"}, records[0])
	assert.Equal(t, "2025-03-10", records[1][0])
	assert.Equal(t, "1500.00", records[1][4])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer

	rows := []export.StatementRow{
		{
			Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Description: "Client payment",
			Amount:      150_000,
			Balance:     150_000,
			Currency:    "BRL",
		},
	}

	require.NoError(t, export.WriteXLSX(&buf, "Conta Principal", rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetCellValue("Statement", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Client payment", got)
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Conta Principal", "Conta_Principal"},
		{"Conta  Corrente / BRL", "Conta_Corrente_BRL"},
		{"__edge__", "edge"},
		{"já-ok", "j_-ok"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, export.SanitizeFilename(tc.in), "input %q", tc.in)
	}

	long := export.SanitizeFilename(strings.Repeat("a", 150))
	assert.Len(t, long, 100)
}

func TestBuildFilename(t *testing.T) {
	name := export.BuildFilename("Conta Principal", "csv")
	assert.True(t, strings.HasPrefix(name, "Conta_Principal_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}

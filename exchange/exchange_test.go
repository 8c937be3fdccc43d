package exchange_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/exchange"
	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/report"
	"github.com/xraph/daftar/supplier"
	"github.com/xraph/daftar/types"
)

func sampleWorkbook() exchange.Workbook {
	facility := &client.Client{
		ID:   id.NewClientID(),
		Name: "شركة البناء",
		Type: client.TypeFacility,
		FacilityInfo: &client.FacilityInfo{
			CommercialRegister: "1010101010",
			VATNumber:          "300000000000003",
		},
	}
	person := &client.Client{
		ID:    id.NewClientID(),
		Name:  "أحمد",
		Type:  client.TypeIndividual,
		Phone: "0500000000",
	}
	vendor := &supplier.Supplier{
		ID:       id.NewSupplierID(),
		Name:     "مؤسسة التوريد",
		Type:     supplier.TypeCompany,
		Category: []string{"مواد", "معدات"},
	}
	inv := &invoice.Invoice{
		ID:       id.NewInvoiceID(),
		Number:   "INV-000001",
		ClientID: facility.ID,
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Subtotal: types.SAR(100000),
		VATTotal: types.SAR(15000),
		Total:    types.SAR(115000),
		Status:   invoice.StatusIssued,
	}
	return exchange.Workbook{
		Clients:   []*client.Client{facility, person},
		Suppliers: []*supplier.Supplier{vendor},
		Invoices:  []*invoice.Invoice{inv},
		Summary:   &report.FinancialSummary{TotalInvoiced: types.SAR(115000)},
	}
}

func TestExportSheets(t *testing.T) {
	var buf bytes.Buffer
	if err := exchange.Export(&buf, sampleWorkbook()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	want := []string{
		exchange.SheetClients, exchange.SheetSuppliers, exchange.SheetInvoices,
		exchange.SheetReceipts, exchange.SheetNotes, exchange.SheetSummary,
		exchange.SheetMonthly, exchange.SheetByClient,
	}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, got[i], want[i])
		}
	}

	total, err := f.GetCellValue(exchange.SheetInvoices, "G2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if total != "1150" {
		t.Errorf("invoice total cell = %q, want 1150", total)
	}
}

func TestExportWithoutSummary(t *testing.T) {
	wb := sampleWorkbook()
	wb.Summary = nil

	var buf bytes.Buffer
	if err := exchange.Export(&buf, wb); err != nil {
		t.Fatalf("Export: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	if n := len(f.GetSheetList()); n != 5 {
		t.Errorf("sheet count = %d, want 5", n)
	}
}

func TestImportRoundTrip(t *testing.T) {
	wb := sampleWorkbook()
	var buf bytes.Buffer
	if err := exchange.Export(&buf, wb); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, err := exchange.Import(&buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(got.Clients) != 2 {
		t.Fatalf("clients = %d, want 2", len(got.Clients))
	}
	if len(got.Suppliers) != 1 {
		t.Fatalf("suppliers = %d, want 1", len(got.Suppliers))
	}

	facility := got.Clients[0]
	if facility.ID != wb.Clients[0].ID {
		t.Errorf("client ID = %v, want %v", facility.ID, wb.Clients[0].ID)
	}
	if facility.Type != client.TypeFacility {
		t.Errorf("client type = %q, want facility", facility.Type)
	}
	if facility.VATNumber() != "300000000000003" {
		t.Errorf("VAT number = %q", facility.VATNumber())
	}
	if got.Clients[1].Type != client.TypeIndividual || got.Clients[1].FacilityInfo != nil {
		t.Errorf("individual client imported as %q", got.Clients[1].Type)
	}

	vendor := got.Suppliers[0]
	if vendor.Type != supplier.TypeCompany {
		t.Errorf("supplier type = %q, want company", vendor.Type)
	}
	if len(vendor.Category) != 2 || vendor.Category[0] != "مواد" || vendor.Category[1] != "معدات" {
		t.Errorf("supplier categories = %v", vendor.Category)
	}
}

func TestImportSkipsNamelessRows(t *testing.T) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(exchange.SheetClients); err != nil {
		t.Fatal(err)
	}
	rows := [][]any{
		{"الاسم", "الرقم الضريبي"},
		{"منشأة", "300000000000003"},
		{"", "123"},
		{"محمد", ""},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(exchange.SheetClients, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	got, err := exchange.Import(&buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", got.Skipped)
	}
	if len(got.Clients) != 2 {
		t.Fatalf("clients = %d, want 2", len(got.Clients))
	}
	if got.Clients[0].Type != client.TypeFacility {
		t.Errorf("row with VAT number imported as %q", got.Clients[0].Type)
	}
	if !got.Clients[0].ID.IsNil() {
		t.Error("row without ID column should have no ID")
	}
	if got.Clients[1].Type != client.TypeIndividual {
		t.Errorf("row without registration imported as %q", got.Clients[1].Type)
	}
}

func TestImportNoSheets(t *testing.T) {
	f := excelize.NewFile()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	_, err := exchange.Import(&buf)
	if !errors.Is(err, exchange.ErrNoSheets) {
		t.Errorf("err = %v, want ErrNoSheets", err)
	}
}

// Package exchange moves ledger data in and out of xlsx workbooks.
//
// Export writes one sheet per document kind plus the financial summary
// sheets. Import reads the client and supplier sheets back; it is best
// effort and ignores every other sheet.
package exchange

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/report"
	"github.com/xraph/daftar/supplier"
	"github.com/xraph/daftar/types"
)

// Sheet names.
const (
	SheetClients   = "العملاء"
	SheetSuppliers = "الموردين"
	SheetInvoices  = "الفواتير"
	SheetReceipts  = "السندات"
	SheetNotes     = "سندات لأمر"
	SheetSummary   = "الملخص"
	SheetMonthly   = "البيانات الشهرية"
	SheetByClient  = "إحصائيات العملاء"
)

// Column headers shared by export and import.
const (
	colID       = "المعرف"
	colName     = "الاسم"
	colType     = "النوع"
	colEmail    = "البريد الإلكتروني"
	colPhone    = "الجوال"
	colAddress  = "العنوان"
	colRegister = "السجل التجاري"
	colVAT      = "الرقم الضريبي"
	colCategory = "التصنيفات"
	colNotes    = "ملاحظات"
)

const dateLayout = "2006-01-02"

// ErrNoSheets is returned by Import when the workbook has neither a
// client nor a supplier sheet.
var ErrNoSheets = errors.New("exchange: workbook has no client or supplier sheet")

// Workbook is everything Export writes. Summary is optional.
type Workbook struct {
	Clients   []*client.Client
	Suppliers []*supplier.Supplier
	Invoices  []*invoice.Invoice
	Receipts  []*receipt.Receipt
	Notes     []*promissory.Note
	Summary   *report.FinancialSummary
}

var (
	clientTypeLabels = map[client.Type]string{
		client.TypeIndividual: "فرد",
		client.TypeFacility:   "منشأة",
	}
	supplierTypeLabels = map[supplier.Type]string{
		supplier.TypeIndividual: "فرد",
		supplier.TypeCompany:    "شركة",
	}
	invoiceStatusLabels = map[invoice.Status]string{
		invoice.StatusDraft:     "مسودة",
		invoice.StatusIssued:    "صادرة",
		invoice.StatusPaid:      "مدفوعة",
		invoice.StatusCancelled: "ملغاة",
	}
	noteStatusLabels = map[promissory.Status]string{
		promissory.StatusActive:    "نشط",
		promissory.StatusPaid:      "مدفوع",
		promissory.StatusCancelled: "ملغي",
	}
	receiptTypeLabels = map[receipt.Type]string{
		receipt.TypePayment: "سند قبض",
		receipt.TypeExpense: "سند صرف",
	}
)

func label[K ~string](labels map[K]string, k K) string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

type sheet struct {
	name string
	rows [][]any
}

// Export writes wb to w as an xlsx document.
func Export(w io.Writer, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	names := make(map[id.ClientID]string, len(wb.Clients))
	for _, c := range wb.Clients {
		names[c.ID] = c.Name
	}
	suppliers := make(map[id.SupplierID]string, len(wb.Suppliers))
	for _, s := range wb.Suppliers {
		suppliers[s.ID] = s.Name
	}
	invoices := make(map[id.InvoiceID]string, len(wb.Invoices))
	for _, inv := range wb.Invoices {
		invoices[inv.ID] = inv.Number
	}

	sheets := []sheet{
		{SheetClients, clientRows(wb.Clients)},
		{SheetSuppliers, supplierRows(wb.Suppliers)},
		{SheetInvoices, invoiceRows(wb.Invoices, names)},
		{SheetReceipts, receiptRows(wb.Receipts, names, suppliers, invoices)},
		{SheetNotes, noteRows(wb.Notes, names)},
	}
	if wb.Summary != nil {
		sheets = append(sheets,
			sheet{SheetSummary, summaryRows(wb.Summary)},
			sheet{SheetMonthly, monthlyRows(wb.Summary)},
			sheet{SheetByClient, clientStatRows(wb.Summary)},
		)
	}

	for i, s := range sheets {
		idx, err := f.NewSheet(s.name)
		if err != nil {
			return fmt.Errorf("exchange: create sheet %s: %w", s.name, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		if err := writeRows(f, s.name, s.rows); err != nil {
			return err
		}
		rtl := true
		if err := f.SetSheetView(s.name, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return fmt.Errorf("exchange: sheet view %s: %w", s.name, err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("exchange: drop default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("exchange: write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("exchange: write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func money(m types.Money) float64 { return m.Decimal().InexactFloat64() }

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func clientRows(clients []*client.Client) [][]any {
	rows := [][]any{{colID, colName, colType, colEmail, colPhone, colAddress, colRegister, colVAT, colNotes}}
	for _, c := range clients {
		var register string
		if c.FacilityInfo != nil {
			register = c.FacilityInfo.CommercialRegister
		}
		rows = append(rows, []any{
			c.ID.String(), c.Name, label(clientTypeLabels, c.Type), c.Email, c.Phone,
			c.Address, register, c.VATNumber(), c.Notes,
		})
	}
	return rows
}

func supplierRows(suppliers []*supplier.Supplier) [][]any {
	rows := [][]any{{colID, colName, colType, colEmail, colPhone, colAddress, colRegister, colVAT, colCategory, colNotes}}
	for _, s := range suppliers {
		rows = append(rows, []any{
			s.ID.String(), s.Name, label(supplierTypeLabels, s.Type), s.Email, s.Phone,
			s.Address, s.CommercialRegister, s.VATNumber, strings.Join(s.Category, ", "), s.Notes,
		})
	}
	return rows
}

func invoiceRows(invoices []*invoice.Invoice, clients map[id.ClientID]string) [][]any {
	rows := [][]any{{"رقم الفاتورة", "العميل", "التاريخ", "تاريخ الاستحقاق", "المبلغ قبل الضريبة", "الضريبة", "الإجمالي", "الحالة"}}
	for _, inv := range invoices {
		rows = append(rows, []any{
			inv.Number, clients[inv.ClientID], date(inv.Date), date(inv.DueDate),
			money(inv.Subtotal), money(inv.VATTotal), money(inv.Total),
			label(invoiceStatusLabels, inv.Status),
		})
	}
	return rows
}

func receiptRows(receipts []*receipt.Receipt, clients map[id.ClientID]string, suppliers map[id.SupplierID]string, invoices map[id.InvoiceID]string) [][]any {
	rows := [][]any{{"رقم السند", "النوع", "التاريخ", "الطرف", "المبلغ", "طريقة الدفع", "الفاتورة", "البيان"}}
	for _, r := range receipts {
		party := r.Beneficiary
		switch {
		case !r.ClientID.IsNil():
			party = clients[r.ClientID]
		case !r.SupplierID.IsNil():
			party = suppliers[r.SupplierID]
		}
		rows = append(rows, []any{
			r.Number, label(receiptTypeLabels, r.Type), date(r.Date), party, money(r.Amount),
			receipt.MethodOrCash(r.Method).Type.Label(), invoices[r.InvoiceID], r.Notes,
		})
	}
	return rows
}

func noteRows(notes []*promissory.Note, clients map[id.ClientID]string) [][]any {
	rows := [][]any{{"رقم السند", "العميل", "التاريخ", "تاريخ الاستحقاق", "المبلغ", "الحالة"}}
	for _, n := range notes {
		rows = append(rows, []any{
			n.Number, clients[n.ClientID], date(n.Date), date(n.DueDate), money(n.Amount),
			label(noteStatusLabels, n.Status),
		})
	}
	return rows
}

func summaryRows(s *report.FinancialSummary) [][]any {
	rows := [][]any{
		{"الملخص المالي", ""},
		{"من", date(s.Start)},
		{"إلى", date(s.End)},
		{"إجمالي الفواتير", money(s.TotalInvoiced)},
		{"إجمالي المدفوعات", money(s.TotalPaid)},
		{"إجمالي الضريبة", money(s.TotalVAT)},
		{"الرصيد المستحق", money(s.Outstanding)},
		{"", ""},
		{"طرق الدفع", ""},
	}
	for _, m := range s.PaymentMethods {
		rows = append(rows, []any{m.Label, money(m.Amount)})
	}
	return rows
}

func monthlyRows(s *report.FinancialSummary) [][]any {
	rows := [][]any{{"الشهر", "الفواتير", "المدفوعات", "الضريبة"}}
	for _, m := range s.Monthly {
		rows = append(rows, []any{m.Label, money(m.Invoiced), money(m.Paid), money(m.VAT)})
	}
	return rows
}

func clientStatRows(s *report.FinancialSummary) [][]any {
	rows := [][]any{{"العميل", "الفواتير", "المدفوعات", "الرصيد"}}
	for _, c := range s.Clients {
		rows = append(rows, []any{c.Name, money(c.Invoiced), money(c.Paid), money(c.Balance)})
	}
	return rows
}

// Imported is the result of reading a workbook. IDs are kept when the
// workbook carries a valid one so that re-importing an export is
// idempotent for the caller.
type Imported struct {
	Clients   []*client.Client
	Suppliers []*supplier.Supplier
	// Skipped counts rows without a name.
	Skipped int
}

// Import reads the client and supplier sheets of an xlsx document.
func Import(r io.Reader) (*Imported, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("exchange: open workbook: %w", err)
	}
	defer f.Close()

	out := &Imported{}
	found := false
	for _, name := range f.GetSheetList() {
		switch name {
		case SheetClients:
			found = true
			rows, err := f.GetRows(name)
			if err != nil {
				return nil, fmt.Errorf("exchange: read %s: %w", name, err)
			}
			for _, rec := range records(rows) {
				c := clientFromRecord(rec)
				if c == nil {
					out.Skipped++
					continue
				}
				out.Clients = append(out.Clients, c)
			}
		case SheetSuppliers:
			found = true
			rows, err := f.GetRows(name)
			if err != nil {
				return nil, fmt.Errorf("exchange: read %s: %w", name, err)
			}
			for _, rec := range records(rows) {
				s := supplierFromRecord(rec)
				if s == nil {
					out.Skipped++
					continue
				}
				out.Suppliers = append(out.Suppliers, s)
			}
		}
	}
	if !found {
		return nil, ErrNoSheets
	}
	return out, nil
}

// record maps a header to the trimmed cell below it.
type record map[string]string

func records(rows [][]string) []record {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	out := make([]record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(record, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[strings.TrimSpace(h)] = strings.TrimSpace(row[i])
			}
		}
		out = append(out, rec)
	}
	return out
}

func clientType(v string, facility bool) client.Type {
	switch v {
	case string(client.TypeFacility), clientTypeLabels[client.TypeFacility]:
		return client.TypeFacility
	case string(client.TypeIndividual), clientTypeLabels[client.TypeIndividual]:
		return client.TypeIndividual
	}
	if facility {
		return client.TypeFacility
	}
	return client.TypeIndividual
}

func clientFromRecord(rec record) *client.Client {
	if rec[colName] == "" {
		return nil
	}
	c := &client.Client{
		Name:    rec[colName],
		Email:   rec[colEmail],
		Phone:   rec[colPhone],
		Address: rec[colAddress],
		Notes:   rec[colNotes],
	}
	if cid, err := id.ParseClientID(rec[colID]); err == nil {
		c.ID = cid
	}
	c.Type = clientType(rec[colType], rec[colRegister] != "" || rec[colVAT] != "")
	if c.Type == client.TypeFacility {
		c.FacilityInfo = &client.FacilityInfo{
			CommercialRegister: rec[colRegister],
			VATNumber:          rec[colVAT],
		}
	} else {
		c.RegistrationType = client.RegistrationDirect
	}
	return c
}

func supplierFromRecord(rec record) *supplier.Supplier {
	if rec[colName] == "" {
		return nil
	}
	s := &supplier.Supplier{
		Name:               rec[colName],
		Email:              rec[colEmail],
		Phone:              rec[colPhone],
		Address:            rec[colAddress],
		CommercialRegister: rec[colRegister],
		VATNumber:          rec[colVAT],
		Notes:              rec[colNotes],
		Type:               supplier.TypeIndividual,
	}
	if sid, err := id.ParseSupplierID(rec[colID]); err == nil {
		s.ID = sid
	}
	switch rec[colType] {
	case string(supplier.TypeCompany), supplierTypeLabels[supplier.TypeCompany]:
		s.Type = supplier.TypeCompany
	}
	for _, cat := range strings.Split(rec[colCategory], ",") {
		if cat = strings.TrimSpace(cat); cat != "" {
			s.Category = append(s.Category, cat)
		}
	}
	return s
}

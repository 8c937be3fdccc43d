// Package daftar is the bookkeeping engine of an engineering consultancy
// office: clients and suppliers, projects with dependent tasks, VAT
// invoices carrying a ZATCA QR code, payment and expense receipts, and
// promissory notes paid in installments.
//
// Daftar is a library. Import it into your program and give it a store:
//
//   - store/memory for tests and the single-file CLI snapshot
//   - store/postgres and store/sqlite through grove
//   - store/mongo through the grove mongo driver
//
// # Quick Start
//
//	d := daftar.New(memory.New(),
//	    daftar.WithSeller("مكتب الهندسة", "300000000000003"),
//	)
//	if err := d.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer d.Stop()
//
//	c := &client.Client{Name: "أحمد", Type: client.TypeIndividual}
//	if err := d.RegisterClient(ctx, c); err != nil {
//	    log.Fatal(err)
//	}
//
//	inv, err := d.CreateInvoice(ctx, invoice.Input{
//	    ClientID: c.ID,
//	    DueDate:  time.Now().AddDate(0, 0, 30),
//	    Items: []invoice.ItemInput{
//	        {Description: "تصميم معماري", Quantity: 1, UnitPrice: types.SAR(500000)},
//	    },
//	})
//
// # Core Concepts
//
// Amounts are integer halalas in types.Money. VAT is computed per line
// with shopspring/decimal and rounded half away from zero; the default
// rate is 15%.
//
// Invoices start as drafts, are issued with ActivateInvoice and become
// paid once linked payment receipts reach the total. Draft and issued
// invoices can be cancelled. Balances are never stored; ClientBalance and
// SupplierBalance derive them from invoices and receipts on every call.
//
// Document numbers have the form PREFIX-YEAR-NNNNNN and come from
// independent series: INV for invoices, RCP for payment receipts, EXP for
// expense receipts and PRM for promissory notes.
//
// # Identifiers
//
// Every record uses a TypeID with a prefix naming its kind:
//
//	cli   client        sup   supplier
//	proj  project       task  task
//	tpl   template      inv   invoice
//	li    line item     rcpt  receipt
//	prm   promissory note
//
// # Extensions
//
// Plugins implement any of the hook interfaces in package plugin and are
// registered with WithPlugin. observability exports counters and
// histograms; audit_hook forwards events to an audit recorder.
package daftar

// Package sqlite implements store.Store on SQLite through grove.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	_ "github.com/xraph/grove/drivers/sqlitedriver/sqlitemigrate"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/daftar"
	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/project"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/sequence"
	daftarstore "github.com/xraph/daftar/store"
	"github.com/xraph/daftar/store/sqlmodel"
	"github.com/xraph/daftar/supplier"
)

// compile-time interface check
var _ daftarstore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("daftar/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("%w: sqlite: %w", daftar.ErrMigrationFailed, err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Client Store ====================

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	m, err := sqlmodel.FromClient(c)
	if err != nil {
		return err
	}
	_, err = s.sdb.NewInsert(m).Exec(ctx)
	return insertErr(err)
}

func (s *Store) GetClient(ctx context.Context, clientID id.ClientID) (*client.Client, error) {
	m := new(sqlmodel.Client)
	err := s.sdb.NewSelect(m).
		Where("id = ?", clientID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, daftar.ErrClientNotFound
		}
		return nil, err
	}
	return m.Decode()
}

func (s *Store) ListClients(ctx context.Context, opts client.ListOpts) ([]*client.Client, error) {
	var models []sqlmodel.Client
	q := s.sdb.NewSelect(&models)

	if opts.Type != "" {
		q = q.Where("type = ?", string(opts.Type))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*client.Client, len(models))
	for i := range models {
		c, err := models[i].Decode()
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	m, err := sqlmodel.FromClient(c)
	if err != nil {
		return err
	}
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return checkAffected(res, daftar.ErrClientNotFound)
}

func (s *Store) DeleteClient(ctx context.Context, clientID id.ClientID) error {
	res, err := s.sdb.NewDelete((*sqlmodel.Client)(nil)).
		Where("id = ?", clientID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	return checkAffected(res, daftar.ErrClientNotFound)
}

// ==================== Supplier Store ====================

func (s *Store) CreateSupplier(ctx context.Context, sup *supplier.Supplier) error {
	m, err := sqlmodel.FromSupplier(sup)
	if err != nil {
		return err
	}
	_, err = s.sdb.NewInsert(m).Exec(ctx)
	return insertErr(err)
}

func (s *Store) GetSupplier(ctx context.Context, supplierID id.SupplierID) (*supplier.Supplier, error) {
	m := new(sqlmodel.Supplier)
	err := s.sdb.NewSelect(m).
		Where("id = ?", supplierID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, daftar.ErrSupplierNotFound
		}
		return nil, err
	}
	return m.Decode()
}

func (s *Store) ListSuppliers(ctx context.Context, opts supplier.ListOpts) ([]*supplier.Supplier, error) {
	var models []sqlmodel.Supplier
	q := s.sdb.NewSelect(&models)

	if opts.Type != "" {
		q = q.Where("type = ?", string(opts.Type))
	}
	if opts.Category != "" {
		q = q.Where("categories LIKE ?", sqlmodel.CategoryPattern(opts.Category))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*supplier.Supplier, len(models))
	for i := range models {
		sup, err := models[i].Decode()
		if err != nil {
			return nil, err
		}
		result[i] = sup
	}
	return result, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, sup *supplier.Supplier) error {
	m, err := sqlmodel.FromSupplier(sup)
	if err != nil {
		return err
	}
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return checkAffected(res, daftar.ErrSupplierNotFound)
}

func (s *Store) DeleteSupplier(ctx context.Context, supplierID id.SupplierID) error {
	res, err := s.sdb.NewDelete((*sqlmodel.Supplier)(nil)).
		Where("id = ?", supplierID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	return checkAffected(res, daftar.ErrSupplierNotFound)
}

// ==================== Project Store ====================

func (s *Store) CreateProject(ctx context.Context, p *project.Project) error {
	m, err := sqlmodel.FromProject(p)
	if err != nil {
		return err
	}
	_, err = s.sdb.NewInsert(m).Exec(ctx)
	return insertErr(err)
}

func (s *Store) GetProject(ctx context.Context, projectID id.ProjectID) (*project.Project, error) {
	m := new(sqlmodel.Project)
	err := s.sdb.NewSelect(m).
		Where("id = ?", projectID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, daftar.ErrProjectNotFound
		}
		return nil, err
	}
	return m.Decode()
}

func (s *Store) ListProjects(ctx context.Context, opts project.ListOpts) ([]*project.Project, error) {
	var models []sqlmodel.Project
	q := s.sdb.NewSelect(&models)

	if !opts.ClientID.IsNil() {
		q = q.Where("client_id = ?", opts.ClientID.String())
	}
	if opts.Status != "" {
		q = q.Where("status = ?", string(opts.Status))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*project.Project, len(models))
	for i := range models {
		p, err := models[i].Decode()
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) UpdateProject(ctx context.Context, p *project.Project) error {
	m, err := sqlmodel.FromProject(p)
	if err != nil {
		return err
	}
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return checkAffected(res, daftar.ErrProjectNotFound)
}

func (s *Store) DeleteProject(ctx context.Context, projectID id.ProjectID) error {
	res, err := s.sdb.NewDelete((*sqlmodel.Project)(nil)).
		Where("id = ?", projectID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	return checkAffected(res, daftar.ErrProjectNotFound)
}

func (s *Store) CreateTask(ctx context.Context, t *project.Task) error {
	m, err := sqlmodel.FromTask(t)
	if err != nil {
		return err
	}
	_, err = s.sdb.NewInsert(m).Exec(ctx)
	return insertErr(err)
}

func (s *Store) GetTask(ctx context.Context, taskID id.TaskID) (*project.Task, error) {
	m := new(sqlmodel.Task)
	err := s.sdb.NewSelect(m).
		Where("id = ?", taskID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, daftar.ErrTaskNotFound
		}
		return nil, err
	}
	return m.Decode()
}

func (s *Store) ListTasks(ctx context.Context, projectID id.ProjectID) ([]*project.Task, error) {
	var models []sqlmodel.Task
	err := s.sdb.NewSelect(&models).
		Where("project_id = ?", projectID.String()).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*project.Task, len(models))
	for i := range models {
		t, err := models[i].Decode()
		if err != nil {
			return nil, err
		}
		result[i] = t
	}
	return result, nil
}

func (s *Store) UpdateTask(ctx context.Context, t *project.Task) error {
	m, err := sqlmodel.FromTask(t)
	if err != nil {
		return err
	}
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return checkAffected(res, daftar.ErrTaskNotFound)
}

func (s *Store) DeleteTask(ctx context.Context, taskID id.TaskID) error {
	res, err := s.sdb.NewDelete((*sqlmodel.Task)(nil)).
		Where("id = ?", taskID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	return checkAffected(res, daftar.ErrTaskNotFound)
}

func (s *Store) CreateTemplate(ctx context.Context, t *project.Template) error {
	m, err := sqlmodel.FromTemplate(t)
	if err != nil {
		return err
	}
	_, err = s.sdb.NewInsert(m).Exec(ctx)
	return insertErr(err)
}

func (s *Store) GetTemplate(ctx context.Context, templateID id.TemplateID) (*project.Template, error) {
	m := new(sqlmodel.Template)
	err := s.sdb.NewSelect(m).
		Where("id = ?", templateID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, daftar.ErrTemplateNotFound
		}
		return nil, err
	}
	return m.Decode()
}

func (s *Store) ListTemplates(ctx context.Context) ([]*project.Template, error) {
	var models []sqlmodel.Template
	if err := s.sdb.NewSelect(&models).OrderExpr("created_at ASC, id ASC").Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*project.Template, len(models))
	for i := range models {
		t, err := models[i].Decode()
		if err != nil {
			return nil, err
		}
		result[i] = t
	}
	return result, nil
}

func (s *Store) DeleteTemplate(ctx context.Context, templateID id.TemplateID) error {
	res, err := s.sdb.NewDelete((*sqlmodel.Template)(nil)).
		Where("id = ?", templateID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	return checkAffected(res, daftar.ErrTemplateNotFound)
}

// ==================== Invoice Store ====================

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	m, err := sqlmodel.FromInvoice(inv)
	if err != nil {
		return err
	}
	_, err = s.sdb.NewInsert(m).Exec(ctx)
	return insertErr(err)
}

func (s *Store) GetInvoice(ctx context.Context, invID id.InvoiceID) (*invoice.Invoice, error) {
	return s.getInvoice(ctx, "id = ?", invID.String())
}

func (s *Store) GetInvoiceByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	return s.getInvoice(ctx, "number = ?", number)
}

func (s *Store) getInvoice(ctx context.Context, where string, arg any) (*invoice.Invoice, error) {
	m := new(sqlmodel.Invoice)
	if err := s.sdb.NewSelect(m).Where(where, arg).Scan(ctx); err != nil {
		if isNoRows(err) {
			return nil, daftar.ErrInvoiceNotFound
		}
		return nil, err
	}
	return m.Decode()
}

func (s *Store) ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	var models []sqlmodel.Invoice
	q := s.sdb.NewSelect(&models)

	if !opts.ClientID.IsNil() {
		q = q.Where("client_id = ?", opts.ClientID.String())
	}
	if opts.Status != "" {
		q = q.Where("status = ?", string(opts.Status))
	}
	if !opts.Start.IsZero() {
		q = q.Where("date >= ?", opts.Start.UTC())
	}
	if !opts.End.IsZero() {
		q = q.Where("date < ?", opts.End.UTC())
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*invoice.Invoice, len(models))
	for i := range models {
		inv, err := models[i].Decode()
		if err != nil {
			return nil, err
		}
		result[i] = inv
	}
	return result, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	m, err := sqlmodel.FromInvoice(inv)
	if err != nil {
		return err
	}
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return checkAffected(res, daftar.ErrInvoiceNotFound)
}

// ==================== Receipt Store ====================

func (s *Store) CreateReceipt(ctx context.Context, r *receipt.Receipt) error {
	m, err := sqlmodel.FromReceipt(r)
	if err != nil {
		return err
	}
	_, err = s.sdb.NewInsert(m).Exec(ctx)
	return insertErr(err)
}

func (s *Store) GetReceipt(ctx context.Context, receiptID id.ReceiptID) (*receipt.Receipt, error) {
	m := new(sqlmodel.Receipt)
	err := s.sdb.NewSelect(m).
		Where("id = ?", receiptID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, daftar.ErrReceiptNotFound
		}
		return nil, err
	}
	return m.Decode()
}

func (s *Store) ListReceipts(ctx context.Context, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	var models []sqlmodel.Receipt
	q := s.sdb.NewSelect(&models)

	where := func(cond string, arg any) {
		q = q.Where(cond, arg)
	}
	if opts.Type != "" {
		where("type = ?", string(opts.Type))
	}
	if !opts.ClientID.IsNil() {
		where("client_id = ?", opts.ClientID.String())
	}
	if !opts.SupplierID.IsNil() {
		where("supplier_id = ?", opts.SupplierID.String())
	}
	if !opts.InvoiceID.IsNil() {
		where("invoice_id = ?", opts.InvoiceID.String())
	}
	if !opts.Start.IsZero() {
		where("date >= ?", opts.Start.UTC())
	}
	if !opts.End.IsZero() {
		where("date < ?", opts.End.UTC())
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*receipt.Receipt, len(models))
	for i := range models {
		r, err := models[i].Decode()
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

// ==================== Promissory Note Store ====================

func (s *Store) CreateNote(ctx context.Context, n *promissory.Note) error {
	m, err := sqlmodel.FromNote(n)
	if err != nil {
		return err
	}
	_, err = s.sdb.NewInsert(m).Exec(ctx)
	return insertErr(err)
}

func (s *Store) GetNote(ctx context.Context, noteID id.NoteID) (*promissory.Note, error) {
	m := new(sqlmodel.Note)
	err := s.sdb.NewSelect(m).
		Where("id = ?", noteID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, daftar.ErrNoteNotFound
		}
		return nil, err
	}
	return m.Decode()
}

func (s *Store) ListNotes(ctx context.Context, opts promissory.ListOpts) ([]*promissory.Note, error) {
	var models []sqlmodel.Note
	q := s.sdb.NewSelect(&models)

	if !opts.ClientID.IsNil() {
		q = q.Where("client_id = ?", opts.ClientID.String())
	}
	if opts.Status != "" {
		q = q.Where("status = ?", string(opts.Status))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*promissory.Note, len(models))
	for i := range models {
		n, err := models[i].Decode()
		if err != nil {
			return nil, err
		}
		result[i] = n
	}
	return result, nil
}

func (s *Store) UpdateNote(ctx context.Context, n *promissory.Note) error {
	m, err := sqlmodel.FromNote(n)
	if err != nil {
		return err
	}
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	return checkAffected(res, daftar.ErrNoteNotFound)
}

// ==================== Sequence Store ====================

// NextSequence increments the counter in a single upsert, so concurrent
// processes never draw the same value.
func (s *Store) NextSequence(ctx context.Context, series sequence.Series, scope int) (int64, error) {
	var value int64
	err := s.sdb.NewRaw(`
		INSERT INTO daftar_sequences (series, scope, value) VALUES (?, ?, 1)
		ON CONFLICT (series, scope) DO UPDATE SET value = daftar_sequences.value + 1
		RETURNING value
	`, string(series), scope).Scan(ctx, &value)
	if err != nil {
		return 0, fmt.Errorf("daftar/sqlite: next %s sequence: %w", series, err)
	}
	return value, nil
}

func (s *Store) SeedSequence(ctx context.Context, series sequence.Series, scope int, value int64) error {
	var current int64
	err := s.sdb.NewRaw(`
		INSERT INTO daftar_sequences (series, scope, value) VALUES (?, ?, ?)
		ON CONFLICT (series, scope) DO UPDATE SET value = MAX(daftar_sequences.value, excluded.value)
		RETURNING value
	`, string(series), scope, value).Scan(ctx, &current)
	if err != nil {
		return fmt.Errorf("daftar/sqlite: seed %s sequence: %w", series, err)
	}
	return nil
}

// ==================== Helpers ====================

// insertErr maps unique violations to daftar.ErrAlreadyExists.
func insertErr(err error) error {
	if sqlmodel.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %w", daftar.ErrAlreadyExists, err)
	}
	return err
}

// checkAffected returns notFound when a write matched no row.
func checkAffected(res interface{ RowsAffected() (int64, error) }, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

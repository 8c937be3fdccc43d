// Package mongo implements store.Store on MongoDB through grove.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/daftar"
	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/project"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/sequence"
	daftarstore "github.com/xraph/daftar/store"
	"github.com/xraph/daftar/supplier"
)

// Collection name constants.
const (
	colClients   = "daftar_clients"
	colSuppliers = "daftar_suppliers"
	colProjects  = "daftar_projects"
	colTasks     = "daftar_tasks"
	colTemplates = "daftar_templates"
	colInvoices  = "daftar_invoices"
	colReceipts  = "daftar_receipts"
	colNotes     = "daftar_notes"
	colSequences = "daftar_sequences"
)

// compile-time interface check
var _ daftarstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all daftar collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("%w: mongo %s indexes: %w", daftar.ErrMigrationFailed, col, err)
		}
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
	m, err := toClientModel(c)
	if err != nil {
		return err
	}
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return insertErr("create client", err)
	}
	return nil
}

func (s *Store) GetClient(ctx context.Context, clientID id.ClientID) (*client.Client, error) {
	var m clientModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": clientID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, daftar.ErrClientNotFound
		}
		return nil, fmt.Errorf("daftar/mongo: get client: %w", err)
	}
	return fromClientModel(&m)
}

func (s *Store) ListClients(ctx context.Context, opts client.ListOpts) ([]*client.Client, error) {
	var models []clientModel

	filter := bson.M{}
	if opts.Type != "" {
		filter["type"] = string(opts.Type)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(creationOrder)
	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("daftar/mongo: list clients: %w", err)
	}

	result := make([]*client.Client, len(models))
	for i := range models {
		c, err := fromClientModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	m, err := toClientModel(c)
	if err != nil {
		return err
	}
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("daftar/mongo: update client: %w", err)
	}
	if res.MatchedCount() == 0 {
		return daftar.ErrClientNotFound
	}
	return nil
}

func (s *Store) DeleteClient(ctx context.Context, clientID id.ClientID) error {
	res, err := s.mdb.NewDelete((*clientModel)(nil)).
		Filter(bson.M{"_id": clientID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("daftar/mongo: delete client: %w", err)
	}
	if res.DeletedCount() == 0 {
		return daftar.ErrClientNotFound
	}
	return nil
}

// ==================== Supplier Store ====================

func (s *Store) CreateSupplier(ctx context.Context, sup *supplier.Supplier) error {
	m, err := toSupplierModel(sup)
	if err != nil {
		return err
	}
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return insertErr("create supplier", err)
	}
	return nil
}

func (s *Store) GetSupplier(ctx context.Context, supplierID id.SupplierID) (*supplier.Supplier, error) {
	var m supplierModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": supplierID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, daftar.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("daftar/mongo: get supplier: %w", err)
	}
	return fromSupplierModel(&m)
}

func (s *Store) ListSuppliers(ctx context.Context, opts supplier.ListOpts) ([]*supplier.Supplier, error) {
	var models []supplierModel

	filter := bson.M{}
	if opts.Type != "" {
		filter["type"] = string(opts.Type)
	}
	if opts.Category != "" {
		// Equality on an array field matches any element.
		filter["categories"] = opts.Category
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(creationOrder)
	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("daftar/mongo: list suppliers: %w", err)
	}

	result := make([]*supplier.Supplier, len(models))
	for i := range models {
		sup, err := fromSupplierModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = sup
	}
	return result, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, sup *supplier.Supplier) error {
	m, err := toSupplierModel(sup)
	if err != nil {
		return err
	}
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("daftar/mongo: update supplier: %w", err)
	}
	if res.MatchedCount() == 0 {
		return daftar.ErrSupplierNotFound
	}
	return nil
}

func (s *Store) DeleteSupplier(ctx context.Context, supplierID id.SupplierID) error {
	res, err := s.mdb.NewDelete((*supplierModel)(nil)).
		Filter(bson.M{"_id": supplierID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("daftar/mongo: delete supplier: %w", err)
	}
	if res.DeletedCount() == 0 {
		return daftar.ErrSupplierNotFound
	}
	return nil
}

// ==================== Project Store ====================

func (s *Store) CreateProject(ctx context.Context, p *project.Project) error {
	m, err := toProjectModel(p)
	if err != nil {
		return err
	}
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return insertErr("create project", err)
	}
	return nil
}

func (s *Store) GetProject(ctx context.Context, projectID id.ProjectID) (*project.Project, error) {
	var m projectModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": projectID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, daftar.ErrProjectNotFound
		}
		return nil, fmt.Errorf("daftar/mongo: get project: %w", err)
	}
	return fromProjectModel(&m)
}

func (s *Store) ListProjects(ctx context.Context, opts project.ListOpts) ([]*project.Project, error) {
	var models []projectModel

	filter := bson.M{}
	if !opts.ClientID.IsNil() {
		filter["client_id"] = opts.ClientID.String()
	}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(creationOrder)
	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("daftar/mongo: list projects: %w", err)
	}

	result := make([]*project.Project, len(models))
	for i := range models {
		p, err := fromProjectModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) UpdateProject(ctx context.Context, p *project.Project) error {
	m, err := toProjectModel(p)
	if err != nil {
		return err
	}
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("daftar/mongo: update project: %w", err)
	}
	if res.MatchedCount() == 0 {
		return daftar.ErrProjectNotFound
	}
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, projectID id.ProjectID) error {
	res, err := s.mdb.NewDelete((*projectModel)(nil)).
		Filter(bson.M{"_id": projectID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("daftar/mongo: delete project: %w", err)
	}
	if res.DeletedCount() == 0 {
		return daftar.ErrProjectNotFound
	}
	return nil
}

func (s *Store) CreateTask(ctx context.Context, t *project.Task) error {
	m, err := toTaskModel(t)
	if err != nil {
		return err
	}
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return insertErr("create task", err)
	}
	return nil
}

func (s *Store) GetTask(ctx context.Context, taskID id.TaskID) (*project.Task, error) {
	var m taskModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": taskID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, daftar.ErrTaskNotFound
		}
		return nil, fmt.Errorf("daftar/mongo: get task: %w", err)
	}
	return fromTaskModel(&m)
}

func (s *Store) ListTasks(ctx context.Context, projectID id.ProjectID) ([]*project.Task, error) {
	var models []taskModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{"project_id": projectID.String()}).
		Sort(creationOrder).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("daftar/mongo: list tasks: %w", err)
	}

	result := make([]*project.Task, len(models))
	for i := range models {
		t, err := fromTaskModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = t
	}
	return result, nil
}

func (s *Store) UpdateTask(ctx context.Context, t *project.Task) error {
	m, err := toTaskModel(t)
	if err != nil {
		return err
	}
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("daftar/mongo: update task: %w", err)
	}
	if res.MatchedCount() == 0 {
		return daftar.ErrTaskNotFound
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, taskID id.TaskID) error {
	res, err := s.mdb.NewDelete((*taskModel)(nil)).
		Filter(bson.M{"_id": taskID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("daftar/mongo: delete task: %w", err)
	}
	if res.DeletedCount() == 0 {
		return daftar.ErrTaskNotFound
	}
	return nil
}

func (s *Store) CreateTemplate(ctx context.Context, t *project.Template) error {
	m, err := toTemplateModel(t)
	if err != nil {
		return err
	}
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return insertErr("create template", err)
	}
	return nil
}

func (s *Store) GetTemplate(ctx context.Context, templateID id.TemplateID) (*project.Template, error) {
	var m templateModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": templateID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, daftar.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("daftar/mongo: get template: %w", err)
	}
	return fromTemplateModel(&m)
}

func (s *Store) ListTemplates(ctx context.Context) ([]*project.Template, error) {
	var models []templateModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{}).
		Sort(creationOrder).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("daftar/mongo: list templates: %w", err)
	}

	result := make([]*project.Template, len(models))
	for i := range models {
		t, err := fromTemplateModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = t
	}
	return result, nil
}

func (s *Store) DeleteTemplate(ctx context.Context, templateID id.TemplateID) error {
	res, err := s.mdb.NewDelete((*templateModel)(nil)).
		Filter(bson.M{"_id": templateID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("daftar/mongo: delete template: %w", err)
	}
	if res.DeletedCount() == 0 {
		return daftar.ErrTemplateNotFound
	}
	return nil
}

// ==================== Invoice Store ====================

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	m, err := toInvoiceModel(inv)
	if err != nil {
		return err
	}
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return insertErr("create invoice", err)
	}
	return nil
}

func (s *Store) GetInvoice(ctx context.Context, invID id.InvoiceID) (*invoice.Invoice, error) {
	return s.findInvoice(ctx, bson.M{"_id": invID.String()})
}

func (s *Store) GetInvoiceByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	return s.findInvoice(ctx, bson.M{"number": number})
}

func (s *Store) findInvoice(ctx context.Context, filter bson.M) (*invoice.Invoice, error) {
	var m invoiceModel
	if err := s.mdb.NewFind(&m).Filter(filter).Scan(ctx); err != nil {
		if isNoDocuments(err) {
			return nil, daftar.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("daftar/mongo: get invoice: %w", err)
	}
	return fromInvoiceModel(&m)
}

func (s *Store) ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	var models []invoiceModel

	filter := bson.M{}
	if !opts.ClientID.IsNil() {
		filter["client_id"] = opts.ClientID.String()
	}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}
	if r := dateRange(opts.Start, opts.End); r != nil {
		filter["date"] = r
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(creationOrder)
	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("daftar/mongo: list invoices: %w", err)
	}

	result := make([]*invoice.Invoice, len(models))
	for i := range models {
		inv, err := fromInvoiceModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = inv
	}
	return result, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	m, err := toInvoiceModel(inv)
	if err != nil {
		return err
	}
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("daftar/mongo: update invoice: %w", err)
	}
	if res.MatchedCount() == 0 {
		return daftar.ErrInvoiceNotFound
	}
	return nil
}

// ==================== Receipt Store ====================

func (s *Store) CreateReceipt(ctx context.Context, r *receipt.Receipt) error {
	m, err := toReceiptModel(r)
	if err != nil {
		return err
	}
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return insertErr("create receipt", err)
	}
	return nil
}

func (s *Store) GetReceipt(ctx context.Context, receiptID id.ReceiptID) (*receipt.Receipt, error) {
	var m receiptModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": receiptID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, daftar.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("daftar/mongo: get receipt: %w", err)
	}
	return fromReceiptModel(&m)
}

func (s *Store) ListReceipts(ctx context.Context, opts receipt.ListOpts) ([]*receipt.Receipt, error) {
	var models []receiptModel

	filter := bson.M{}
	if opts.Type != "" {
		filter["type"] = string(opts.Type)
	}
	if !opts.ClientID.IsNil() {
		filter["client_id"] = opts.ClientID.String()
	}
	if !opts.SupplierID.IsNil() {
		filter["supplier_id"] = opts.SupplierID.String()
	}
	if !opts.InvoiceID.IsNil() {
		filter["invoice_id"] = opts.InvoiceID.String()
	}
	if r := dateRange(opts.Start, opts.End); r != nil {
		filter["date"] = r
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(creationOrder)
	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("daftar/mongo: list receipts: %w", err)
	}

	result := make([]*receipt.Receipt, len(models))
	for i := range models {
		r, err := fromReceiptModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

// ==================== Promissory Note Store ====================

func (s *Store) CreateNote(ctx context.Context, n *promissory.Note) error {
	m, err := toNoteModel(n)
	if err != nil {
		return err
	}
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return insertErr("create note", err)
	}
	return nil
}

func (s *Store) GetNote(ctx context.Context, noteID id.NoteID) (*promissory.Note, error) {
	var m noteModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": noteID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, daftar.ErrNoteNotFound
		}
		return nil, fmt.Errorf("daftar/mongo: get note: %w", err)
	}
	return fromNoteModel(&m)
}

func (s *Store) ListNotes(ctx context.Context, opts promissory.ListOpts) ([]*promissory.Note, error) {
	var models []noteModel

	filter := bson.M{}
	if !opts.ClientID.IsNil() {
		filter["client_id"] = opts.ClientID.String()
	}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(creationOrder)
	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("daftar/mongo: list notes: %w", err)
	}

	result := make([]*promissory.Note, len(models))
	for i := range models {
		n, err := fromNoteModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = n
	}
	return result, nil
}

func (s *Store) UpdateNote(ctx context.Context, n *promissory.Note) error {
	m, err := toNoteModel(n)
	if err != nil {
		return err
	}
	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("daftar/mongo: update note: %w", err)
	}
	if res.MatchedCount() == 0 {
		return daftar.ErrNoteNotFound
	}
	return nil
}

// ==================== Sequence Store ====================

func sequenceKey(series sequence.Series, scope int) string {
	return fmt.Sprintf("%s/%d", series, scope)
}

// NextSequence increments the counter with an upserting $inc, which MongoDB
// applies atomically to the single counter document.
func (s *Store) NextSequence(ctx context.Context, series sequence.Series, scope int) (int64, error) {
	filter := bson.M{"_id": sequenceKey(series, scope)}
	update := bson.M{
		"$inc":         bson.M{"value": int64(1)},
		"$setOnInsert": bson.M{"series": string(series), "scope": scope},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var m sequenceModel
	err := s.mdb.Collection(colSequences).FindOneAndUpdate(ctx, filter, update, opts).Decode(&m)
	if err != nil {
		return 0, fmt.Errorf("daftar/mongo: next %s sequence: %w", series, err)
	}
	return m.Value, nil
}

func (s *Store) SeedSequence(ctx context.Context, series sequence.Series, scope int, value int64) error {
	filter := bson.M{"_id": sequenceKey(series, scope)}
	update := bson.M{
		"$max":         bson.M{"value": value},
		"$setOnInsert": bson.M{"series": string(series), "scope": scope},
	}
	_, err := s.mdb.Collection(colSequences).UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("daftar/mongo: seed %s sequence: %w", series, err)
	}
	return nil
}

// ==================== Helpers ====================

var creationOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// dateRange builds a [start, end) filter, or nil when both bounds are open.
func dateRange(start, end time.Time) bson.M {
	r := bson.M{}
	if !start.IsZero() {
		r["$gte"] = start.UTC()
	}
	if !end.IsZero() {
		r["$lt"] = end.UTC()
	}
	if len(r) == 0 {
		return nil
	}
	return r
}

func insertErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: daftar/mongo: %s: %w", daftar.ErrAlreadyExists, op, err)
	}
	return fmt.Errorf("daftar/mongo: %s: %w", op, err)
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all daftar collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)
	return map[string][]mongo.IndexModel{
		colClients: {
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colSuppliers: {
			{Keys: bson.D{{Key: "categories", Value: 1}}},
		},
		colProjects: {
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		colTasks: {
			{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colTemplates: {},
		colInvoices: {
			{Keys: bson.D{{Key: "number", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: 1}}},
		},
		colReceipts: {
			{Keys: bson.D{{Key: "number", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "type", Value: 1}}},
			{Keys: bson.D{{Key: "supplier_id", Value: 1}}},
			{Keys: bson.D{{Key: "invoice_id", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: 1}}},
		},
		colNotes: {
			{Keys: bson.D{{Key: "number", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: 1}}},
		},
	}
}

package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the daftar store.
var Migrations = migrate.NewGroup("daftar")

func table(name, version, up, down string) *migrate.Migration {
	return &migrate.Migration{
		Name:    name,
		Version: version,
		Up: func(ctx context.Context, exec migrate.Executor) error {
			_, err := exec.Exec(ctx, up)
			return err
		},
		Down: func(ctx context.Context, exec migrate.Executor) error {
			_, err := exec.Exec(ctx, down)
			return err
		},
	}
}

func init() {
	Migrations.MustRegister(
		table("create_daftar_clients", "20240101000001", `
CREATE TABLE IF NOT EXISTS daftar_clients (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    type       TEXT NOT NULL DEFAULT 'individual',
    data       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_daftar_clients_type ON daftar_clients (type, created_at);
`, `DROP TABLE IF EXISTS daftar_clients`),

		table("create_daftar_suppliers", "20240101000002", `
CREATE TABLE IF NOT EXISTS daftar_suppliers (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    type       TEXT NOT NULL DEFAULT 'company',
    categories TEXT NOT NULL DEFAULT '',
    data       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`, `DROP TABLE IF EXISTS daftar_suppliers`),

		table("create_daftar_projects", "20240101000003", `
CREATE TABLE IF NOT EXISTS daftar_projects (
    id         TEXT PRIMARY KEY,
    client_id  TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'active',
    data       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_daftar_projects_client ON daftar_projects (client_id, status);

CREATE TABLE IF NOT EXISTS daftar_tasks (
    id         TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'pending',
    data       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_daftar_tasks_project ON daftar_tasks (project_id);

CREATE TABLE IF NOT EXISTS daftar_templates (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL DEFAULT '',
    data       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`, `DROP TABLE IF EXISTS daftar_templates; DROP TABLE IF EXISTS daftar_tasks; DROP TABLE IF EXISTS daftar_projects`),

		table("create_daftar_invoices", "20240101000004", `
CREATE TABLE IF NOT EXISTS daftar_invoices (
    id         TEXT PRIMARY KEY,
    number     TEXT NOT NULL,
    client_id  TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'draft',
    date       TIMESTAMPTZ NOT NULL,
    total      BIGINT NOT NULL DEFAULT 0,
    data       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_daftar_invoices_number ON daftar_invoices (number);
CREATE INDEX IF NOT EXISTS idx_daftar_invoices_client ON daftar_invoices (client_id, status);
CREATE INDEX IF NOT EXISTS idx_daftar_invoices_date ON daftar_invoices (date);
`, `DROP TABLE IF EXISTS daftar_invoices`),

		table("create_daftar_receipts", "20240101000005", `
CREATE TABLE IF NOT EXISTS daftar_receipts (
    id          TEXT PRIMARY KEY,
    number      TEXT NOT NULL,
    type        TEXT NOT NULL,
    client_id   TEXT NOT NULL DEFAULT '',
    supplier_id TEXT NOT NULL DEFAULT '',
    invoice_id  TEXT NOT NULL DEFAULT '',
    note_id     TEXT NOT NULL DEFAULT '',
    amount      BIGINT NOT NULL,
    method      TEXT NOT NULL DEFAULT 'cash',
    date        TIMESTAMPTZ NOT NULL,
    data        TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_daftar_receipts_number ON daftar_receipts (number);
CREATE INDEX IF NOT EXISTS idx_daftar_receipts_client ON daftar_receipts (client_id, type);
CREATE INDEX IF NOT EXISTS idx_daftar_receipts_supplier ON daftar_receipts (supplier_id);
CREATE INDEX IF NOT EXISTS idx_daftar_receipts_invoice ON daftar_receipts (invoice_id);
CREATE INDEX IF NOT EXISTS idx_daftar_receipts_date ON daftar_receipts (date);
`, `DROP TABLE IF EXISTS daftar_receipts`),

		table("create_daftar_notes", "20240101000006", `
CREATE TABLE IF NOT EXISTS daftar_notes (
    id         TEXT PRIMARY KEY,
    number     TEXT NOT NULL,
    client_id  TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'active',
    due_date   TIMESTAMPTZ NOT NULL,
    data       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_daftar_notes_number ON daftar_notes (number);
CREATE INDEX IF NOT EXISTS idx_daftar_notes_client ON daftar_notes (client_id, status);
CREATE INDEX IF NOT EXISTS idx_daftar_notes_due ON daftar_notes (status, due_date);
`, `DROP TABLE IF EXISTS daftar_notes`),

		table("create_daftar_sequences", "20240101000007", `
CREATE TABLE IF NOT EXISTS daftar_sequences (
    series TEXT NOT NULL,
    scope  INT NOT NULL DEFAULT 0,
    value  BIGINT NOT NULL DEFAULT 0,
    PRIMARY KEY (series, scope)
);
`, `DROP TABLE IF EXISTS daftar_sequences`),
	)
}

package memory

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/project"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/sequence"
	"github.com/xraph/daftar/supplier"
	"github.com/xraph/daftar/types"
)

// SnapshotVersion is written into every snapshot.
const SnapshotVersion = 1

// Counter is a persisted sequence counter.
type Counter struct {
	Series sequence.Series `json:"series"`
	Scope  int             `json:"scope"`
	Value  int64           `json:"value"`
}

// Snapshot is the full content of a Store.
type Snapshot struct {
	Version   int                  `json:"version"`
	Clients   []*client.Client     `json:"clients"`
	Suppliers []*supplier.Supplier `json:"suppliers"`
	Projects  []*project.Project   `json:"projects"`
	Tasks     []*project.Task      `json:"tasks"`
	Templates []*project.Template  `json:"templates"`
	Invoices  []*invoice.Invoice   `json:"invoices"`
	Receipts  []*receipt.Receipt   `json:"receipts"`
	Notes     []*promissory.Note   `json:"notes"`
	Counters  []Counter            `json:"counters"`
}

// Snapshot copies the store content, records ordered by creation.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{Version: SnapshotVersion}
	for _, c := range s.clients {
		snap.Clients = append(snap.Clients, c.Clone())
	}
	for _, sup := range s.suppliers {
		snap.Suppliers = append(snap.Suppliers, sup.Clone())
	}
	for _, p := range s.projects {
		snap.Projects = append(snap.Projects, cloneProject(p))
	}
	for _, t := range s.tasks {
		snap.Tasks = append(snap.Tasks, t.Clone())
	}
	for _, t := range s.templates {
		snap.Templates = append(snap.Templates, t.Clone())
	}
	for _, inv := range s.invoices {
		snap.Invoices = append(snap.Invoices, inv.Clone())
	}
	for _, r := range s.receipts {
		snap.Receipts = append(snap.Receipts, cloneReceipt(r))
	}
	for _, n := range s.notes {
		snap.Notes = append(snap.Notes, n.Clone())
	}
	for k, v := range s.sequences {
		snap.Counters = append(snap.Counters, Counter{Series: k.series, Scope: k.scope, Value: v})
	}

	byCreation(snap.Clients, func(c *client.Client) (types.Entity, string) { return c.Entity, c.ID.String() })
	byCreation(snap.Suppliers, func(sup *supplier.Supplier) (types.Entity, string) { return sup.Entity, sup.ID.String() })
	byCreation(snap.Projects, func(p *project.Project) (types.Entity, string) { return p.Entity, p.ID.String() })
	byCreation(snap.Tasks, func(t *project.Task) (types.Entity, string) { return t.Entity, t.ID.String() })
	byCreation(snap.Templates, func(t *project.Template) (types.Entity, string) { return t.Entity, t.ID.String() })
	byCreation(snap.Invoices, func(inv *invoice.Invoice) (types.Entity, string) { return inv.Entity, inv.ID.String() })
	byCreation(snap.Receipts, func(r *receipt.Receipt) (types.Entity, string) { return r.Entity, r.ID.String() })
	byCreation(snap.Notes, func(n *promissory.Note) (types.Entity, string) { return n.Entity, n.ID.String() })
	slices.SortFunc(snap.Counters, func(a, b Counter) int {
		return cmp.Or(cmp.Compare(a.Series, b.Series), cmp.Compare(a.Scope, b.Scope))
	})
	return snap
}

// Restore replaces the store content with snap.
//
// Counters are raised to the highest document number found in snap, so a
// snapshot edited by hand or written by an older version never reissues a
// number.
func (s *Store) Restore(snap *Snapshot) error {
	if snap.Version > SnapshotVersion {
		return fmt.Errorf("memory: snapshot version %d is newer than %d", snap.Version, SnapshotVersion)
	}

	fresh := New()
	for _, c := range snap.Clients {
		fresh.clients[c.ID.String()] = c.Clone()
	}
	for _, sup := range snap.Suppliers {
		fresh.suppliers[sup.ID.String()] = sup.Clone()
	}
	for _, p := range snap.Projects {
		fresh.projects[p.ID.String()] = cloneProject(p)
	}
	for _, t := range snap.Tasks {
		fresh.tasks[t.ID.String()] = t.Clone()
	}
	for _, t := range snap.Templates {
		fresh.templates[t.ID.String()] = t.Clone()
	}
	for _, inv := range snap.Invoices {
		fresh.invoices[inv.ID.String()] = inv.Clone()
		fresh.raise(sequence.SeriesInvoice, inv.Number)
	}
	for _, r := range snap.Receipts {
		fresh.receipts[r.ID.String()] = cloneReceipt(r)
		series := sequence.SeriesReceipt
		if r.Type == receipt.TypeExpense {
			series = sequence.SeriesExpense
		}
		fresh.raise(series, r.Number)
	}
	for _, n := range snap.Notes {
		fresh.notes[n.ID.String()] = n.Clone()
		fresh.raise(sequence.SeriesNote, n.Number)
	}
	for _, c := range snap.Counters {
		k := seqKey{c.Series, c.Scope}
		if c.Value > fresh.sequences[k] {
			fresh.sequences[k] = c.Value
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients, s.suppliers = fresh.clients, fresh.suppliers
	s.projects, s.tasks, s.templates = fresh.projects, fresh.tasks, fresh.templates
	s.invoices, s.receipts, s.notes = fresh.invoices, fresh.receipts, fresh.notes
	s.sequences = fresh.sequences
	return nil
}

// raise lifts both the global and the yearly counter of series to the
// suffix of number.
func (s *Store) raise(series sequence.Series, number string) {
	n := sequence.Suffix(number)
	if n == 0 {
		return
	}
	for _, scope := range []int{sequence.GlobalScope, sequence.Year(number)} {
		k := seqKey{series, scope}
		if n > s.sequences[k] {
			s.sequences[k] = n
		}
	}
}

// LoadFile restores the store from a JSON snapshot at path. A missing file
// leaves the store empty.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("memory: read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("memory: decode snapshot %s: %w", path, err)
	}
	return s.Restore(&snap)
}

// SaveFile writes a JSON snapshot to path. The file is written next to
// path first and renamed into place.
func (s *Store) SaveFile(path string) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("memory: encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".daftar-*.json")
	if err != nil {
		return fmt.Errorf("memory: write snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("memory: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("memory: write snapshot: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

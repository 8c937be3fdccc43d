package daftar

import (
	"context"
	"strings"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/invoice"
	"github.com/xraph/daftar/project"
	"github.com/xraph/daftar/promissory"
	"github.com/xraph/daftar/receipt"
	"github.com/xraph/daftar/types"
)

// ──────────────────────────────────────────────────
// Client registry
// ──────────────────────────────────────────────────

func validateClient(c *client.Client) error {
	var errs MultiError
	if strings.TrimSpace(c.Name) == "" {
		errs.Add(invalid("name", "is required"))
	}
	switch c.Type {
	case client.TypeIndividual:
		if c.FacilityInfo != nil {
			errs.Add(invalid("facility_info", "not allowed for individual clients"))
		}
		if c.RegistrationType == client.RegistrationAgent && c.Agent == nil {
			errs.Add(invalid("agent", "is required for agent registrations"))
		}
	case client.TypeFacility:
		if c.FacilityInfo == nil {
			errs.Add(invalid("facility_info", "is required for facility clients"))
		}
		if c.DirectInfo != nil || c.Agent != nil {
			errs.Add(invalid("direct_info", "not allowed for facility clients"))
		}
	default:
		errs.Add(invalid("type", "must be individual or facility, got %q", c.Type))
	}
	return errs.ErrorOrNil()
}

// RegisterClient validates and stores a new client.
func (d *Daftar) RegisterClient(ctx context.Context, c *client.Client) error {
	if c.ID.IsNil() {
		c.ID = id.NewClientID()
	}
	if err := validateClient(c); err != nil {
		return err
	}
	c.Entity = types.NewEntityAt(d.now())

	d.mu.Lock()
	err := d.store.CreateClient(ctx, c)
	d.mu.Unlock()
	if err != nil {
		return err
	}

	d.logger.Debug("client registered", "client_id", c.ID.String(), "type", c.Type)
	d.plugins.EmitClientRegistered(ctx, c)
	return nil
}

// GetClient retrieves a client by ID.
func (d *Daftar) GetClient(ctx context.Context, clientID id.ClientID) (*client.Client, error) {
	return d.store.GetClient(ctx, clientID)
}

// ListClients lists clients.
func (d *Daftar) ListClients(ctx context.Context, opts client.ListOpts) ([]*client.Client, error) {
	return d.store.ListClients(ctx, opts)
}

// UpdateClient applies fn to a copy of the stored client and saves the
// result. ID, project references and the creation time cannot be changed
// through fn.
func (d *Daftar) UpdateClient(ctx context.Context, clientID id.ClientID, fn func(*client.Client)) (*client.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, err := d.store.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	fn(next)
	next.ID = current.ID
	next.Projects = current.Projects
	next.CreatedAt = current.CreatedAt
	next.TouchAt(d.now())

	if err := validateClient(next); err != nil {
		return nil, err
	}
	if err := d.store.UpdateClient(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// DeleteClient removes a client together with its projects and their
// tasks. Clients referenced by any invoice, receipt or promissory note
// cannot be deleted.
func (d *Daftar) DeleteClient(ctx context.Context, clientID id.ClientID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.store.GetClient(ctx, clientID); err != nil {
		return err
	}

	invs, err := d.store.ListInvoices(ctx, invoice.ListOpts{ClientID: clientID, Limit: 1})
	if err != nil {
		return err
	}
	rcpts, err := d.store.ListReceipts(ctx, receipt.ListOpts{ClientID: clientID, Limit: 1})
	if err != nil {
		return err
	}
	notes, err := d.store.ListNotes(ctx, promissory.ListOpts{ClientID: clientID, Limit: 1})
	if err != nil {
		return err
	}
	if len(invs)+len(rcpts)+len(notes) > 0 {
		return ErrClientInUse
	}

	projects, err := d.store.ListProjects(ctx, project.ListOpts{ClientID: clientID})
	if err != nil {
		return err
	}
	for _, p := range projects {
		if err := d.deleteProjectTree(ctx, p.ID); err != nil {
			return err
		}
	}

	if err := d.store.DeleteClient(ctx, clientID); err != nil {
		return err
	}
	d.logger.Info("client deleted", "client_id", clientID.String(), "projects", len(projects))
	return nil
}

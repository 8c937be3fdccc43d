package promissory

import (
	"context"

	"github.com/xraph/daftar/id"
)

type Store interface {
	CreateNote(ctx context.Context, n *Note) error
	GetNote(ctx context.Context, noteID id.NoteID) (*Note, error)
	ListNotes(ctx context.Context, opts ListOpts) ([]*Note, error)
	UpdateNote(ctx context.Context, n *Note) error
}

type ListOpts struct {
	ClientID id.ClientID
	Status   Status
	Limit    int
	Offset   int
}

package daftar

import "github.com/xraph/daftar/id"

// ID is the primary identifier type for all daftar records.
type ID = id.ID

// Prefix identifies the record kind encoded in a TypeID.
type Prefix = id.Prefix

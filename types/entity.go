package types

import "time"

// Entity carries the bookkeeping timestamps embedded in every record.
type Entity struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEntity creates a new Entity with current timestamps.
func NewEntity() Entity {
	return NewEntityAt(time.Now())
}

// NewEntityAt creates a new Entity stamped with t.
func NewEntityAt(t time.Time) Entity {
	t = t.UTC()
	return Entity{
		CreatedAt: t,
		UpdatedAt: t,
	}
}

// Touch updates the UpdatedAt timestamp to now.
func (e *Entity) Touch() {
	e.TouchAt(time.Now())
}

// TouchAt updates the UpdatedAt timestamp to t.
func (e *Entity) TouchAt(t time.Time) {
	e.UpdatedAt = t.UTC()
}

package client_test

import (
	"testing"
	"time"

	"github.com/xraph/daftar/client"
	"github.com/xraph/daftar/id"
)

func TestAge(t *testing.T) {
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		info client.DirectInfo
		asOf time.Time
		want int
	}{
		{"before birthday", client.DirectInfo{BirthDate: &birth}, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 33},
		{"after birthday", client.DirectInfo{BirthDate: &birth}, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 34},
		{"unknown", client.DirectInfo{}, time.Now(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Age(tt.asOf); got != tt.want {
				t.Errorf("Age: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProjects(t *testing.T) {
	c := &client.Client{ID: id.NewClientID()}
	p1, p2 := id.NewProjectID(), id.NewProjectID()

	c.AddProject(p1)
	c.AddProject(p2)
	c.AddProject(p1)
	if len(c.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(c.Projects))
	}

	c.RemoveProject(p1)
	if len(c.Projects) != 1 || c.Projects[0] != p2 {
		t.Errorf("unexpected projects after remove: %v", c.Projects)
	}
}

func TestCloneIsDeep(t *testing.T) {
	c := &client.Client{
		ID:           id.NewClientID(),
		Type:         client.TypeFacility,
		FacilityInfo: &client.FacilityInfo{VATNumber: "300000000000003", AuthorizedPerson: &client.AuthorizedPerson{Name: "a"}},
		Projects:     []id.ProjectID{id.NewProjectID()},
	}

	cp := c.Clone()
	cp.FacilityInfo.VATNumber = "x"
	cp.FacilityInfo.AuthorizedPerson.Name = "b"
	cp.Projects[0] = id.NewProjectID()

	if c.VATNumber() != "300000000000003" {
		t.Error("clone shares FacilityInfo")
	}
	if c.FacilityInfo.AuthorizedPerson.Name != "a" {
		t.Error("clone shares AuthorizedPerson")
	}
	if c.Projects[0] == cp.Projects[0] {
		t.Error("clone shares Projects")
	}
}

// Package project models client projects, their tasks and reusable
// project templates. Invoice line items may point at a project for
// description purposes only.
package project

import (
	"slices"
	"time"

	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/types"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

type Project struct {
	types.Entity
	ID          id.ProjectID `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	ClientID    id.ClientID  `json:"client_id"`
	Status      Status       `json:"status"`
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	return s == TaskPending || s == TaskInProgress || s == TaskCompleted
}

// Role flags the caller of a task status change. Only managers may reopen
// completed work.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

type Task struct {
	types.Entity
	ID          id.TaskID    `json:"id"`
	ProjectID   id.ProjectID `json:"project_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	AssignedTo  []string     `json:"assigned_to,omitempty"`
	DependsOn   []id.TaskID  `json:"depends_on,omitempty"`
	Status      TaskStatus   `json:"status"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	out := *t
	out.AssignedTo = slices.Clone(t.AssignedTo)
	out.DependsOn = slices.Clone(t.DependsOn)
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	return &out
}

// Blocked reports whether any dependency of t is not completed. Unknown
// dependencies count as incomplete.
func (t *Task) Blocked(byID map[string]*Task) bool {
	for _, dep := range t.DependsOn {
		d, ok := byID[dep.String()]
		if !ok || d.Status != TaskCompleted {
			return true
		}
	}
	return false
}

// AllCompleted reports whether every task is completed. An empty set is
// not considered complete.
func AllCompleted(tasks []*Task) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if t.Status != TaskCompleted {
			return false
		}
	}
	return true
}

// TaskTemplate is one step of a Template. DependsOn holds indexes of
// earlier steps in the same template.
type TaskTemplate struct {
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	AssignedTo    []string `json:"assigned_to,omitempty"`
	DependsOn     []int    `json:"depends_on,omitempty"`
	EstimatedDays int      `json:"estimated_days,omitempty"`
}

type Template struct {
	types.Entity
	ID          id.TemplateID  `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Tasks       []TaskTemplate `json:"tasks"`
}

// Clone returns a deep copy of t.
func (t *Template) Clone() *Template {
	out := *t
	out.Tasks = make([]TaskTemplate, len(t.Tasks))
	for i, tt := range t.Tasks {
		tt.AssignedTo = slices.Clone(tt.AssignedTo)
		tt.DependsOn = slices.Clone(tt.DependsOn)
		out.Tasks[i] = tt
	}
	return &out
}

// Instantiate expands the template into tasks for projectID. Index based
// dependencies become task id references; due dates are start plus the
// estimated duration of each step.
func (t *Template) Instantiate(projectID id.ProjectID, start time.Time) []*Task {
	ids := make([]id.TaskID, len(t.Tasks))
	for i := range t.Tasks {
		ids[i] = id.NewTaskID()
	}

	tasks := make([]*Task, 0, len(t.Tasks))
	for i, step := range t.Tasks {
		task := &Task{
			Entity:      types.NewEntityAt(start),
			ID:          ids[i],
			ProjectID:   projectID,
			Title:       step.Title,
			Description: step.Description,
			AssignedTo:  slices.Clone(step.AssignedTo),
			Status:      TaskPending,
		}
		for _, dep := range step.DependsOn {
			if dep >= 0 && dep < len(ids) && dep != i {
				task.DependsOn = append(task.DependsOn, ids[dep])
			}
		}
		if step.EstimatedDays > 0 {
			due := start.AddDate(0, 0, step.EstimatedDays)
			task.DueDate = &due
		}
		tasks = append(tasks, task)
	}
	return tasks
}

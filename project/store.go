package project

import (
	"context"

	"github.com/xraph/daftar/id"
)

type Store interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, projectID id.ProjectID) (*Project, error)
	ListProjects(ctx context.Context, opts ListOpts) ([]*Project, error)
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, projectID id.ProjectID) error

	CreateTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, taskID id.TaskID) (*Task, error)
	ListTasks(ctx context.Context, projectID id.ProjectID) ([]*Task, error)
	UpdateTask(ctx context.Context, t *Task) error
	DeleteTask(ctx context.Context, taskID id.TaskID) error

	CreateTemplate(ctx context.Context, t *Template) error
	GetTemplate(ctx context.Context, templateID id.TemplateID) (*Template, error)
	ListTemplates(ctx context.Context) ([]*Template, error)
	DeleteTemplate(ctx context.Context, templateID id.TemplateID) error
}

type ListOpts struct {
	ClientID id.ClientID
	Status   Status
	Limit    int
	Offset   int
}

package daftar

import (
	"context"
	"strings"

	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/project"
	"github.com/xraph/daftar/types"
)

// ──────────────────────────────────────────────────
// Projects
// ──────────────────────────────────────────────────

// CreateProject stores a project and links it to its client.
func (d *Daftar) CreateProject(ctx context.Context, p *project.Project) error {
	if strings.TrimSpace(p.Title) == "" {
		return invalid("title", "is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.createProject(ctx, p)
}

func (d *Daftar) createProject(ctx context.Context, p *project.Project) error {
	c, err := d.store.GetClient(ctx, p.ClientID)
	if err != nil {
		return err
	}

	if p.ID.IsNil() {
		p.ID = id.NewProjectID()
	}
	if p.Status == "" {
		p.Status = project.StatusActive
	}
	p.Entity = types.NewEntityAt(d.now())

	if err := d.store.CreateProject(ctx, p); err != nil {
		return err
	}

	c.AddProject(p.ID)
	c.TouchAt(d.now())
	return d.store.UpdateClient(ctx, c)
}

// GetProject retrieves a project by ID.
func (d *Daftar) GetProject(ctx context.Context, projectID id.ProjectID) (*project.Project, error) {
	return d.store.GetProject(ctx, projectID)
}

// ListProjects lists projects.
func (d *Daftar) ListProjects(ctx context.Context, opts project.ListOpts) ([]*project.Project, error) {
	return d.store.ListProjects(ctx, opts)
}

// UpdateProject edits the title and description of a project.
func (d *Daftar) UpdateProject(ctx context.Context, projectID id.ProjectID, title, description string) (*project.Project, error) {
	if strings.TrimSpace(title) == "" {
		return nil, invalid("title", "is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	p.Title = title
	p.Description = description
	p.TouchAt(d.now())
	if err := d.store.UpdateProject(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProject removes a project and its tasks and unlinks it from the client.
func (d *Daftar) DeleteProject(ctx context.Context, projectID id.ProjectID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if err := d.deleteProjectTree(ctx, projectID); err != nil {
		return err
	}

	c, err := d.store.GetClient(ctx, p.ClientID)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}
	c.RemoveProject(projectID)
	c.TouchAt(d.now())
	return d.store.UpdateClient(ctx, c)
}

func (d *Daftar) deleteProjectTree(ctx context.Context, projectID id.ProjectID) error {
	tasks, err := d.store.ListTasks(ctx, projectID)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if err := d.store.DeleteTask(ctx, t.ID); err != nil {
			return err
		}
	}
	return d.store.DeleteProject(ctx, projectID)
}

// ──────────────────────────────────────────────────
// Tasks
// ──────────────────────────────────────────────────

// AddTask stores a new pending task. Dependencies must be tasks of the
// same project.
func (d *Daftar) AddTask(ctx context.Context, t *project.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return invalid("title", "is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.store.GetProject(ctx, t.ProjectID); err != nil {
		return err
	}
	for _, dep := range t.DependsOn {
		dt, err := d.store.GetTask(ctx, dep)
		if err != nil {
			return err
		}
		if dt.ProjectID != t.ProjectID {
			return invalid("depends_on", "task %s belongs to another project", dep)
		}
	}

	if t.ID.IsNil() {
		t.ID = id.NewTaskID()
	}
	t.Status = project.TaskPending
	t.Entity = types.NewEntityAt(d.now())
	if err := d.store.CreateTask(ctx, t); err != nil {
		return err
	}
	return d.refreshProjectStatus(ctx, t.ProjectID)
}

// GetTask retrieves a task by ID.
func (d *Daftar) GetTask(ctx context.Context, taskID id.TaskID) (*project.Task, error) {
	return d.store.GetTask(ctx, taskID)
}

// ListTasks lists the tasks of a project.
func (d *Daftar) ListTasks(ctx context.Context, projectID id.ProjectID) ([]*project.Task, error) {
	return d.store.ListTasks(ctx, projectID)
}

// UpdateTaskStatus moves a task to status on behalf of role.
//
// A task whose dependencies are not all completed stays pending
// (ErrTaskLocked). Reopening a completed task is reserved for managers
// (ErrForbidden). After the change the project is marked completed when
// all of its tasks are, and active again otherwise.
func (d *Daftar) UpdateTaskStatus(ctx context.Context, taskID id.TaskID, status project.TaskStatus, role project.Role) (*project.Task, error) {
	if !status.Valid() {
		return nil, invalid("status", "unknown task status %q", status)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	t, err := d.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.Status == status {
		return t, nil
	}

	if t.Status == project.TaskCompleted && role != project.RoleManager {
		return nil, ErrForbidden
	}

	if status != project.TaskPending {
		siblings, err := d.store.ListTasks(ctx, t.ProjectID)
		if err != nil {
			return nil, err
		}
		if t.Blocked(indexTasks(siblings)) {
			return nil, ErrTaskLocked
		}
	}

	t.Status = status
	t.TouchAt(d.now())
	if err := d.store.UpdateTask(ctx, t); err != nil {
		return nil, err
	}
	if err := d.refreshProjectStatus(ctx, t.ProjectID); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTask removes a task and drops it from the dependencies of its siblings.
func (d *Daftar) DeleteTask(ctx context.Context, taskID id.TaskID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, err := d.store.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := d.store.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	siblings, err := d.store.ListTasks(ctx, t.ProjectID)
	if err != nil {
		return err
	}
	for _, s := range siblings {
		kept := s.DependsOn[:0]
		for _, dep := range s.DependsOn {
			if dep != taskID {
				kept = append(kept, dep)
			}
		}
		if len(kept) != len(s.DependsOn) {
			s.DependsOn = kept
			s.TouchAt(d.now())
			if err := d.store.UpdateTask(ctx, s); err != nil {
				return err
			}
		}
	}
	return d.refreshProjectStatus(ctx, t.ProjectID)
}

func (d *Daftar) refreshProjectStatus(ctx context.Context, projectID id.ProjectID) error {
	p, err := d.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	tasks, err := d.store.ListTasks(ctx, projectID)
	if err != nil {
		return err
	}

	want := project.StatusActive
	if project.AllCompleted(tasks) {
		want = project.StatusCompleted
	}
	if p.Status == want {
		return nil
	}
	p.Status = want
	p.TouchAt(d.now())
	d.logger.Debug("project status changed", "project_id", projectID.String(), "status", want)
	return d.store.UpdateProject(ctx, p)
}

func indexTasks(tasks []*project.Task) map[string]*project.Task {
	m := make(map[string]*project.Task, len(tasks))
	for _, t := range tasks {
		m[t.ID.String()] = t
	}
	return m
}

// ──────────────────────────────────────────────────
// Templates
// ──────────────────────────────────────────────────

// CreateTemplate stores a project template.
func (d *Daftar) CreateTemplate(ctx context.Context, t *project.Template) error {
	if strings.TrimSpace(t.Title) == "" {
		return invalid("title", "is required")
	}
	for i, step := range t.Tasks {
		for _, dep := range step.DependsOn {
			if dep < 0 || dep >= len(t.Tasks) || dep == i {
				return invalid("tasks", "step %d depends on invalid step %d", i, dep)
			}
		}
	}
	if t.ID.IsNil() {
		t.ID = id.NewTemplateID()
	}
	t.Entity = types.NewEntityAt(d.now())

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.CreateTemplate(ctx, t)
}

// GetTemplate retrieves a template by ID.
func (d *Daftar) GetTemplate(ctx context.Context, templateID id.TemplateID) (*project.Template, error) {
	return d.store.GetTemplate(ctx, templateID)
}

// ListTemplates lists all templates.
func (d *Daftar) ListTemplates(ctx context.Context) ([]*project.Template, error) {
	return d.store.ListTemplates(ctx)
}

// DeleteTemplate removes a template. Projects created from it are unaffected.
func (d *Daftar) DeleteTemplate(ctx context.Context, templateID id.TemplateID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.DeleteTemplate(ctx, templateID)
}

// CreateProjectFromTemplate creates a project for clientID with one task
// per template step.
func (d *Daftar) CreateProjectFromTemplate(ctx context.Context, templateID id.TemplateID, clientID id.ClientID, title string) (*project.Project, []*project.Task, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	tpl, err := d.store.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = tpl.Title
	}

	p := &project.Project{Title: title, Description: tpl.Description, ClientID: clientID}
	if err := d.createProject(ctx, p); err != nil {
		return nil, nil, err
	}

	tasks := tpl.Instantiate(p.ID, d.now())
	for _, t := range tasks {
		if err := d.store.CreateTask(ctx, t); err != nil {
			return nil, nil, err
		}
	}
	return p, tasks, nil
}

package project_test

import (
	"testing"
	"time"

	"github.com/xraph/daftar/id"
	"github.com/xraph/daftar/project"
)

func TestBlocked(t *testing.T) {
	done := &project.Task{ID: id.NewTaskID(), Status: project.TaskCompleted}
	open := &project.Task{ID: id.NewTaskID(), Status: project.TaskInProgress}
	byID := map[string]*project.Task{done.ID.String(): done, open.ID.String(): open}

	tests := []struct {
		name string
		deps []id.TaskID
		want bool
	}{
		{"no deps", nil, false},
		{"completed dep", []id.TaskID{done.ID}, false},
		{"open dep", []id.TaskID{done.ID, open.ID}, true},
		{"missing dep", []id.TaskID{id.NewTaskID()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &project.Task{DependsOn: tt.deps}
			if got := task.Blocked(byID); got != tt.want {
				t.Errorf("Blocked: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllCompleted(t *testing.T) {
	if project.AllCompleted(nil) {
		t.Error("empty task set must not count as completed")
	}
	tasks := []*project.Task{{Status: project.TaskCompleted}, {Status: project.TaskCompleted}}
	if !project.AllCompleted(tasks) {
		t.Error("expected completed")
	}
	tasks = append(tasks, &project.Task{Status: project.TaskPending})
	if project.AllCompleted(tasks) {
		t.Error("expected not completed")
	}
}

func TestInstantiate(t *testing.T) {
	tpl := &project.Template{
		Title: "villa design",
		Tasks: []project.TaskTemplate{
			{Title: "survey", EstimatedDays: 3},
			{Title: "drawings", DependsOn: []int{0}, EstimatedDays: 10},
			{Title: "permit", DependsOn: []int{0, 1, 7, 2}},
		},
	}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	pid := id.NewProjectID()

	tasks := tpl.Instantiate(pid, start)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.ProjectID != pid || task.Status != project.TaskPending {
			t.Errorf("task %q not initialized: %+v", task.Title, task)
		}
	}
	if len(tasks[1].DependsOn) != 1 || tasks[1].DependsOn[0] != tasks[0].ID {
		t.Errorf("drawings deps: %v", tasks[1].DependsOn)
	}
	// Out of range and self references are dropped.
	if len(tasks[2].DependsOn) != 2 {
		t.Errorf("permit deps: got %d, want 2", len(tasks[2].DependsOn))
	}
	if tasks[0].DueDate == nil || !tasks[0].DueDate.Equal(start.AddDate(0, 0, 3)) {
		t.Errorf("survey due: %v", tasks[0].DueDate)
	}
	if tasks[2].DueDate != nil {
		t.Errorf("permit has no estimate, got due %v", tasks[2].DueDate)
	}
}

package model

// Domain model for the task list. The whole application state is one tree,
// serialized wholesale; JSON keys stay compatible with backups produced by
// earlier versions of the app.

// Task is a single tracked to-do entry. Category and Status are foreign keys
// into the taxonomy lists but are allowed to dangle: deleting a category or
// status leaves referencing tasks untouched.
type Task struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Status    string   `json:"status"`
	Stage     string   `json:"stage"`
	StartDate string   `json:"startDate"`
	Notes     string   `json:"notes"`
	Assignee  string   `json:"assignee"`
	Priority  Priority `json:"priority,omitempty"`
	CreatedAt int64    `json:"createdAt,omitempty"` // epoch millis
}

// Priority is the fixed three-level scale used by priority-sort mode.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for sorting: high first, unknown values last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Category is a user-defined grouping label.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"` // hex, e.g. "#3b82f6"
}

// StatusOption is a user-customizable workflow status.
type StatusOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// StatusDone is the status id that marks a task completed.
const StatusDone = "done"

type Settings struct {
	DarkMode      bool `json:"darkMode"`
	ShowCompleted bool `json:"showCompleted"`
}

// State is the whole application tree: tasks, taxonomy, settings, and the
// sync credentials. The token is stored in the clear; treat the state file
// accordingly.
type State struct {
	Tasks      []Task         `json:"tasks"`
	Categories []Category     `json:"categories"`
	Statuses   []StatusOption `json:"statuses"`
	Stages     []string       `json:"stages"`
	Settings   Settings       `json:"settings"`
	Token      string         `json:"githubToken,omitempty"`
	GistID     string         `json:"gistId,omitempty"`
}

func DefaultCategories() []Category {
	return []Category{
		{ID: "personal", Name: "Personal", Color: "#3b82f6"},
		{ID: "work", Name: "Work", Color: "#f59e0b"},
		{ID: "shopping", Name: "Shopping", Color: "#22c55e"},
		{ID: "health", Name: "Health", Color: "#ef4444"},
	}
}

func DefaultStatuses() []StatusOption {
	return []StatusOption{
		{ID: "in-progress", Name: "In progress", Color: "#8b5cf6"},
		{ID: "blocked", Name: "Blocked", Color: "#ef4444"},
		{ID: StatusDone, Name: "Done", Color: "#22c55e"},
		{ID: "later", Name: "Later", Color: "#f59e0b"},
	}
}

func DefaultStages() []string {
	return []string{"In progress", "Planning", "Testing", "Parked", "Later"}
}

// Default returns a fresh state tree with seeded taxonomy and no tasks.
func Default() *State {
	return &State{
		Tasks:      []Task{},
		Categories: DefaultCategories(),
		Statuses:   DefaultStatuses(),
		Stages:     DefaultStages(),
		Settings:   Settings{DarkMode: false, ShowCompleted: true},
	}
}

// Normalize back-fills fields that older documents may be missing and resets
// any taxonomy list that came back empty, so the UI can never lock itself out
// of statuses or stages. One-way forward upgrade, not a migration system.
func (s *State) Normalize() {
	if len(s.Statuses) == 0 {
		s.Statuses = DefaultStatuses()
	}
	if len(s.Stages) == 0 {
		s.Stages = DefaultStages()
	}
	if len(s.Categories) == 0 {
		s.Categories = DefaultCategories()
	}
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.Status == "" {
			t.Status = s.Statuses[0].ID
		}
		if t.Stage == "" {
			t.Stage = s.Stages[0]
		}
		if t.Priority == "" {
			t.Priority = PriorityMedium
		}
	}
}

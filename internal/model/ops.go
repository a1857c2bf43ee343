package model

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Queries over the tree. All of these are read-only projections; mutations
// live further down and operate in place.

// Done reports whether a task counts as completed.
func (t Task) Done() bool { return t.Status == StatusDone }

// StatusInfo resolves a status id to its option. A dangling id falls back to
// the first configured status, or to a gray stub when the list itself is
// somehow empty.
func (s *State) StatusInfo(id string) StatusOption {
	for _, st := range s.Statuses {
		if st.ID == id {
			return st
		}
	}
	if len(s.Statuses) > 0 {
		return s.Statuses[0]
	}
	return StatusOption{ID: id, Name: id, Color: "#888888"}
}

// CategoryName resolves a category id to its display name. Dangling ids
// resolve to the empty string, not an error.
func (s *State) CategoryName(id string) string {
	for _, c := range s.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// PendingCounts returns the number of not-done tasks per category id.
func (s *State) PendingCounts() map[string]int {
	counts := make(map[string]int)
	for _, t := range s.Tasks {
		if !t.Done() {
			counts[t.Category]++
		}
	}
	return counts
}

// PendingTotal is the not-done count across all categories.
func (s *State) PendingTotal() int {
	n := 0
	for _, t := range s.Tasks {
		if !t.Done() {
			n++
		}
	}
	return n
}

// Stats returns done and total task counts for the stat line.
func (s *State) Stats() (done, total int) {
	for _, t := range s.Tasks {
		if t.Done() {
			done++
		}
	}
	return done, len(s.Tasks)
}

// SortMode selects the ordering applied to the task list.
type SortMode string

const (
	// SortByStatus orders by the status's index in the configured status
	// list; unknown statuses sort last.
	SortByStatus SortMode = "status"
	// SortByPriority orders not-done before done, then high > medium > low.
	SortByPriority SortMode = "priority"
)

// Visible returns the tasks to show for the given category filter (empty =
// all), honoring the show-completed setting, ordered per mode. The sort is
// stable: ties keep their insertion order. The input tree is not modified.
func (s *State) Visible(filter string, mode SortMode) []Task {
	out := make([]Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if filter != "" && t.Category != filter {
			continue
		}
		if !s.Settings.ShowCompleted && t.Done() {
			continue
		}
		out = append(out, t)
	}
	switch mode {
	case SortByPriority:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Done() != out[j].Done() {
				return !out[i].Done()
			}
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	default:
		order := make(map[string]int, len(s.Statuses))
		for i, st := range s.Statuses {
			order[st.ID] = i
		}
		rank := func(id string) int {
			if r, ok := order[id]; ok {
				return r
			}
			return len(s.Statuses) + 1
		}
		sort.SliceStable(out, func(i, j int) bool {
			return rank(out[i].Status) < rank(out[j].Status)
		})
	}
	return out
}

// Mutations. Callers persist and re-render after each one.

// AddTask appends a new task and returns it. Empty titles are the caller's
// problem to reject; ids are fresh uuids.
func (s *State) AddTask(title, category, status string, prio Priority) Task {
	if status == "" && len(s.Statuses) > 0 {
		status = s.Statuses[0].ID
	}
	if category == "" && len(s.Categories) > 0 {
		category = s.Categories[0].ID
	}
	stage := ""
	if len(s.Stages) > 0 {
		stage = s.Stages[0]
	}
	if prio == "" {
		prio = PriorityMedium
	}
	t := Task{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Category:  category,
		Status:    status,
		Stage:     stage,
		Priority:  prio,
		CreatedAt: time.Now().UnixMilli(),
	}
	s.Tasks = append(s.Tasks, t)
	return t
}

// FindTask returns a pointer into the tree for in-place edits, or nil.
func (s *State) FindTask(id string) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// ToggleTask flips a task between done and the first non-done status.
func (s *State) ToggleTask(id string) bool {
	t := s.FindTask(id)
	if t == nil {
		return false
	}
	if t.Done() {
		t.Status = s.firstActiveStatus()
	} else {
		t.Status = StatusDone
	}
	return true
}

func (s *State) firstActiveStatus() string {
	for _, st := range s.Statuses {
		if st.ID != StatusDone {
			return st.ID
		}
	}
	return "in-progress"
}

// RemoveTask filters the task out of the list. No soft delete.
func (s *State) RemoveTask(id string) bool {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

func (s *State) AddCategory(name, color string) Category {
	c := Category{ID: uuid.NewString(), Name: strings.TrimSpace(name), Color: color}
	s.Categories = append(s.Categories, c)
	return c
}

// RemoveCategory drops the category only; tasks referencing it keep their
// now-dangling id and render with an empty label.
func (s *State) RemoveCategory(id string) bool {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			s.Categories = append(s.Categories[:i], s.Categories[i+1:]...)
			return true
		}
	}
	return false
}

func (s *State) AddStatus(name, color string) StatusOption {
	st := StatusOption{ID: uuid.NewString(), Name: strings.TrimSpace(name), Color: color}
	s.Statuses = append(s.Statuses, st)
	return st
}

func (s *State) RemoveStatus(id string) bool {
	for i := range s.Statuses {
		if s.Statuses[i].ID == id {
			s.Statuses = append(s.Statuses[:i], s.Statuses[i+1:]...)
			return true
		}
	}
	return false
}

func (s *State) AddStage(name string) {
	s.Stages = append(s.Stages, strings.TrimSpace(name))
}

// RemoveStage removes by index; stages are bare ordered strings.
func (s *State) RemoveStage(index int) bool {
	if index < 0 || index >= len(s.Stages) {
		return false
	}
	s.Stages = append(s.Stages[:index], s.Stages[index+1:]...)
	return true
}

package gantt

import (
	"time"

	"github.com/existflow/irongantt/internal/logger"
	"github.com/existflow/irongantt/internal/model"
)

// Persister receives the full snapshot after every mutation.
// Implementations must not block the caller.
type Persister interface {
	Persist(snap model.Snapshot)
}

// PersisterFunc adapts a function to Persister
type PersisterFunc func(model.Snapshot)

// Persist calls f
func (f PersisterFunc) Persist(snap model.Snapshot) { f(snap) }

// Store is the ordered, authoritative task collection.
// It is owned by a single goroutine and is not safe for concurrent use.
type Store struct {
	tasks     []model.Task
	lastID    int64
	persister Persister
}

// NewStore creates an empty store. persister may be nil.
func NewStore(persister Persister) *Store {
	return &Store{persister: persister}
}

// Load replaces the contents with a persisted snapshot without persisting it again
func (s *Store) Load(snap model.Snapshot) {
	s.tasks = model.CloneTasks(snap.Tasks)
	for i := range s.tasks {
		s.tasks[i] = s.tasks[i].Neutral()
	}
	s.lastID = snap.LastID
	for _, t := range s.tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	logger.Debug("Store loaded", logger.F("tasks", len(s.tasks)), logger.F("last_id", s.lastID))
}

// Add appends a new task and returns it
func (s *Store) Add(name string, start, end time.Time, color string) (model.Task, error) {
	if start.After(end) {
		return model.Task{}, newValidation("dates", "start must not be after end")
	}

	s.lastID++
	task := model.NewTask(s.lastID, name, start, end, color)
	s.tasks = append(s.tasks, task)

	logger.Info("Task added", logger.F("id", task.ID), logger.F("name", task.Name))
	s.persist()
	return task, nil
}

// Rename changes a task's display name
func (s *Store) Rename(id int64, name string) error {
	i := s.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	s.tasks[i].Name = name

	logger.Info("Task renamed", logger.F("id", id), logger.F("name", name))
	s.persist()
	return nil
}

// Remove deletes a task. Remaining ids are kept as they are.
func (s *Store) Remove(id int64) error {
	i := s.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)

	logger.Info("Task removed", logger.F("id", id))
	s.persist()
	return nil
}

// Reschedule replaces both dates of a task, or neither
func (s *Store) Reschedule(id int64, start, end time.Time) error {
	if start.After(end) {
		return newValidation("dates", "start must not be after end")
	}
	i := s.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	s.tasks[i].StartDate = start
	s.tasks[i].EndDate = end

	logger.Info("Task rescheduled",
		logger.F("id", id),
		logger.F("start", start.Format(model.DateLayout)),
		logger.F("end", end.Format(model.DateLayout)))
	s.persist()
	return nil
}

// Shift moves a task by whole days, keeping its length
func (s *Store) Shift(id int64, days int) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	if days == 0 {
		return nil
	}
	moved := t.Shifted(days)
	return s.Reschedule(id, moved.StartDate, moved.EndDate)
}

// Resize moves only the end date by whole days
func (s *Store) Resize(id int64, days int) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	if days == 0 {
		return nil
	}
	return s.Reschedule(id, t.StartDate, t.EndDate.AddDate(0, 0, days))
}

// Get returns a copy of one task
func (s *Store) Get(id int64) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: id}
	}
	return s.tasks[i], nil
}

// Snapshot returns a copy of the ordered task list
func (s *Store) Snapshot() []model.Task {
	return model.CloneTasks(s.tasks)
}

// Document returns the persisted form of the store
func (s *Store) Document() model.Snapshot {
	return model.Snapshot{LastID: s.lastID, Tasks: s.Snapshot()}
}

// Len returns the number of tasks
func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	s.persister.Persist(s.Document())
}

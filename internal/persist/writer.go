package persist

import (
	"context"
	"sync"
	"time"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/logger"
	"github.com/existflow/irongantt/internal/model"
)

// Saver is what the writer hands snapshots to
type Saver interface {
	Save(ctx context.Context, snap model.Snapshot) error
}

// WriterStatus summarizes the writer for display
type WriterStatus struct {
	Pending    bool
	LastSaved  time.Time
	LastError  error
	Writes     int
	Superseded int
}

// Writer saves snapshots in the background. At most one snapshot waits
// behind the write in flight; a newer one replaces it.
type Writer struct {
	saver   Saver
	timeout time.Duration

	mu         sync.Mutex
	pending    *model.Snapshot
	running    bool
	closed     bool
	idle       chan struct{}
	lastSaved  time.Time
	lastErr    error
	writes     int
	superseded int
	onSaved    func(error) // Called after every write attempt
}

// NewWriter creates a writer for saver
func NewWriter(saver Saver) *Writer {
	return &Writer{
		saver:   saver,
		timeout: 30 * time.Second,
	}
}

// SetOnSaved sets a callback run on the writer goroutine after each write
func (w *Writer) SetOnSaved(callback func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onSaved = callback
}

// Persist queues snap and returns immediately
func (w *Writer) Persist(snap model.Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		logger.Warn("Snapshot dropped, writer closed", logger.F("tasks", len(snap.Tasks)))
		return
	}
	if w.pending != nil {
		w.superseded++
	}
	w.pending = &snap
	if !w.running {
		w.running = true
		w.idle = make(chan struct{})
		go w.drain(w.idle)
	}
}

func (w *Writer) drain(idle chan struct{}) {
	for {
		w.mu.Lock()
		snap := w.pending
		if snap == nil {
			w.running = false
			w.mu.Unlock()
			close(idle)
			return
		}
		w.pending = nil
		w.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		err := w.saver.Save(ctx, *snap)
		cancel()
		w.record(err)
	}
}

func (w *Writer) record(err error) {
	w.mu.Lock()
	w.writes++
	w.lastErr = err
	if err == nil {
		w.lastSaved = time.Now()
	}
	callback := w.onSaved
	w.mu.Unlock()

	if err != nil {
		if !gantt.IsPersistence(err) {
			err = &gantt.PersistenceError{Op: "save", Err: err}
		}
		logger.Error("Background save failed", logger.F("error", err))
	}
	if callback != nil {
		callback(err)
	}
}

// Flush waits until every queued snapshot has been written and
// returns the error of the last write
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		err := w.lastErr
		w.mu.Unlock()
		return err
	}
	idle := w.idle
	w.mu.Unlock()

	select {
	case <-idle:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Close flushes and rejects further snapshots
func (w *Writer) Close(ctx context.Context) error {
	err := w.Flush(ctx)
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	return err
}

// Status returns a copy of the writer's counters
func (w *Writer) Status() WriterStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return WriterStatus{
		Pending:    w.running,
		LastSaved:  w.lastSaved,
		LastError:  w.lastErr,
		Writes:     w.writes,
		Superseded: w.superseded,
	}
}

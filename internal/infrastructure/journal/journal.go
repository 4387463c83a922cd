// Package journal provides the append-only report journal.
package journal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/YanaYakovleva2018/exchange-chat-relay/internal/infrastructure/logger"
)

const entryTimeFormat = "02.01.2006 15:04:05"

// FileJournal appends rendered reports to a text file. Appends are
// serialized so concurrent writers never interleave within an entry, and the
// file handle is scoped to a single append.
type FileJournal struct {
	path   string
	mutex  sync.Mutex
	logger logger.Logger
	now    func() time.Time
}

// NewFileJournal creates a journal writing to the given path
func NewFileJournal(path string, log logger.Logger) *FileJournal {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &FileJournal{
		path:   path,
		logger: log,
		now:    time.Now,
	}
}

// Verify checks that the journal path is writable. Called at startup so a
// bad path aborts the process instead of silently losing entries later.
func (j *FileJournal) Verify() error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal %s: %w", j.path, err)
	}
	return f.Close()
}

// Append writes one timestamped entry. The returned error is informational;
// callers on the broadcast path log it and carry on.
func (j *FileJournal) Append(text string) error {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}

	_, writeErr := fmt.Fprintf(f, "%s:\n%s\n", j.now().Format(entryTimeFormat), text)
	closeErr := f.Close()

	if writeErr != nil {
		return fmt.Errorf("failed to write journal entry: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to flush journal entry: %w", closeErr)
	}

	return nil
}

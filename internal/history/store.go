// Package history provides a persistent record of verification runs so
// regressions in documentation snippets can be spotted across runs.
package history

import (
	"encoding/binary"
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"
)

const runsBucket = "runs"

// Entry summarizes one recorded verification run.
type Entry struct {
	ID            uint64    `json:"id"`
	RecordedAt    time.Time `json:"recorded_at"`
	SnippetsDir   string    `json:"snippets_dir"`
	Interpreter   string    `json:"interpreter"`
	TotalSnippets int       `json:"total_snippets"`
	TotalChecks   int       `json:"total_checks"`
	Passed        int       `json:"passed"`
	Failed        int       `json:"failed"`
	Skipped       int       `json:"skipped"`
	DurationMS    int64     `json:"duration_ms"`
	FailedChecks  []string  `json:"failed_checks,omitempty"`
}

// Store persists run entries in a bbolt database.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Append records a run entry, assigning it the next sequence ID.
func (s *Store) Append(e *Entry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(runsBucket))

		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		e.ID = id

		data, err := json.Marshal(e)
		if err != nil {
			return err
		}

		return b.Put(itob(id), data)
	})
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]*Entry, error) {
	var entries []*Entry

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(runsBucket))
		c := b.Cursor()

		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				continue
			}
			entries = append(entries, &e)
		}
		return nil
	})

	return entries, err
}

// Count returns the number of recorded runs.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(runsBucket))
		count = b.Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// itob returns an 8-byte big endian representation of v so keys sort in
// insertion order.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

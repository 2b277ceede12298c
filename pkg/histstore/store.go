// Package histstore persists command history for embedding hosts, so a
// session's history survives the process. It is backed by a bbolt database;
// multiple hosts may share one file, with each shell session tagged by a
// unique identifier.
package histstore

import (
	"errors"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// ErrNoMatchingCmd is returned when a NextCmd or PrevCmd query completes
// with no result.
var ErrNoMatchingCmd = errors.New("no matching command line")

// Cmd is an entry in the command history.
type Cmd struct {
	Text string
	Seq  int
	// Session identifies the shell session that recorded the entry.
	Session string
}

// Store is the interface satisfied by the history storage service.
type Store interface {
	NextCmdSeq() (int, error)
	AddCmd(text string) (int, error)
	DelCmd(seq int) error
	Cmd(seq int) (Cmd, error)
	CmdsWithSeq(from, upto int) ([]Cmd, error)
	IterateCmds(from, upto int, f func(Cmd)) error
	NextCmd(from int, prefix string) (Cmd, error)
	PrevCmd(upto int, prefix string) (Cmd, error)
	// SessionID returns the identifier new entries are tagged with.
	SessionID() string
	Close() error
}

const (
	bucketCmd     = "cmd"
	bucketSession = "cmdSession"
)

var initBuckets = []string{bucketCmd, bucketSession}

type dbStore struct {
	db      *bolt.DB
	session string
}

// NewStore opens (creating if needed) the history database at path and
// returns a Store tagged with a fresh session identifier.
func NewStore(path string) (Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreDB(db)
}

// NewStoreDB wraps an already-open bbolt database.
func NewStoreDB(db *bolt.DB) (Store, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range initBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &dbStore{db: db, session: uuid.NewString()}, nil
}

func (s *dbStore) SessionID() string { return s.session }

func (s *dbStore) Close() error { return s.db.Close() }

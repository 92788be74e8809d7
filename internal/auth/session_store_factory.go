// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package auth

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// SessionStoreType defines the type of session storage backend.
type SessionStoreType string

const (
	// SessionStoreMemory uses in-memory storage (default, not persistent).
	SessionStoreMemory SessionStoreType = "memory"

	// SessionStoreBadger uses BadgerDB for persistent session storage.
	SessionStoreBadger SessionStoreType = "badger"
)

// SessionStoreFactory opens the backing database, if any, and creates the
// store on top of it.
type SessionStoreFactory struct {
	db *badger.DB
}

// NewSessionStoreFactory opens a BadgerDB at path for the badger store type.
// The memory type opens nothing.
func NewSessionStoreFactory(storeType SessionStoreType, path string) (*SessionStoreFactory, error) {
	factory := &SessionStoreFactory{}

	switch storeType {
	case SessionStoreBadger:
		opts := badger.DefaultOptions(path)
		opts.Logger = nil

		db, err := badger.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("open badger db for sessions: %w", err)
		}
		factory.db = db
	case SessionStoreMemory, "":
	default:
		return nil, fmt.Errorf("unknown session store %q", storeType)
	}

	return factory, nil
}

// CreateStore returns the store for the configured backend.
func (f *SessionStoreFactory) CreateStore() SessionStore {
	if f.db != nil {
		return NewBadgerSessionStore(f.db)
	}
	return NewMemorySessionStore()
}

// RunValueLogGC reclaims space in the BadgerDB value log and returns how
// many log files were rewritten. The memory store has nothing to collect.
func (f *SessionStoreFactory) RunValueLogGC() (int, error) {
	if f.db == nil {
		return 0, nil
	}
	rewritten := 0
	for {
		err := f.db.RunValueLogGC(0.5)
		switch {
		case err == nil:
			rewritten++
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
			return rewritten, nil
		default:
			return rewritten, fmt.Errorf("badger value log gc: %w", err)
		}
	}
}

// Close closes the underlying BadgerDB if one was opened.
func (f *SessionStoreFactory) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}

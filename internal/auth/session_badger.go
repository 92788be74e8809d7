// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const sessionKeyPrefix = "session:"

// BadgerSessionStore keeps sessions in BadgerDB so readers stay logged in
// across restarts. Entries carry a TTL matching the session expiry, so
// Badger compaction drops them even if CleanupExpired never runs.
type BadgerSessionStore struct {
	db *badger.DB
}

// NewBadgerSessionStore wraps an open BadgerDB.
func NewBadgerSessionStore(db *badger.DB) *BadgerSessionStore {
	return &BadgerSessionStore{db: db}
}

func sessionKey(id string) []byte {
	return []byte(sessionKeyPrefix + id)
}

// setSession writes the session with a TTL of its remaining lifetime.
func setSession(txn *badger.Txn, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	entry := badger.NewEntry(sessionKey(session.ID), data)
	if ttl := time.Until(session.ExpiresAt); ttl > 0 {
		entry = entry.WithTTL(ttl)
	}
	return txn.SetEntry(entry)
}

func readSession(txn *badger.Txn, id string) (*Session, error) {
	item, err := txn.Get(sessionKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session Session
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &session)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Create stores a new session.
func (s *BadgerSessionStore) Create(_ context.Context, session *Session) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return setSession(txn, session)
	})
}

// Get retrieves a session by ID.
func (s *BadgerSessionStore) Get(_ context.Context, id string) (*Session, error) {
	var session *Session
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		session, err = readSession(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Update replaces an existing session.
func (s *BadgerSessionStore) Update(_ context.Context, session *Session) error {
	return s.db.Update(func(txn *badger.Txn) error {
		existing, err := readSession(txn, session.ID)
		if err != nil {
			return err
		}
		if existing.IsExpired() {
			return ErrSessionNotFound
		}
		return setSession(txn, session)
	})
}

// Delete removes a session by ID.
func (s *BadgerSessionStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(sessionKey(id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// CleanupExpired removes all expired sessions.
func (s *BadgerSessionStore) CleanupExpired(_ context.Context) (int, error) {
	var expired [][]byte

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			var session Session
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &session)
			}); err != nil {
				continue
			}
			if session.IsExpired() {
				expired = append(expired, item.KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range expired {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return len(expired), nil
}

// Count returns the number of stored sessions.
func (s *BadgerSessionStore) Count(_ context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

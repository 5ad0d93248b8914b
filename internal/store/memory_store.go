// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package store

import (
	"context"
	"slices"

	"github.com/ManuGH/lectrack/internal/lecture"
)

// MemoryStore keeps the list in process memory.
type MemoryStore struct {
	items []lecture.Lecture
	saves int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) ([]lecture.Lecture, error) {
	if s.items == nil {
		return []lecture.Lecture{}, nil
	}
	return slices.Clone(s.items), nil
}

func (s *MemoryStore) Save(_ context.Context, items []lecture.Lecture) error {
	// Copy to avoid aliasing the caller's slice
	s.items = slices.Clone(items)
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int { return s.saves }

func (s *MemoryStore) Close() error {
	s.items = nil
	return nil
}

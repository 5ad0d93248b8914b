// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ManuGH/lectrack/internal/lecture"
)

// fileRecord is the on-disk shape of a lecture. Pointer fields detect missing keys.
type fileRecord struct {
	Name          *string `json:"name"`
	Duration      *int    `json:"duration"`
	AmountWatched *int    `json:"amount_watched"`
	Deadline      *string `json:"deadline"`
	AmountDone    int     `json:"amount_done"`
	ActiveStatus  *int    `json:"active_status"`
	Index         int     `json:"index"`
}

// encodeLectures renders the list as an indented JSON array with DD-MM-YYYY deadlines.
func encodeLectures(items []lecture.Lecture) ([]byte, error) {
	if items == nil {
		items = []lecture.Lecture{}
	}
	b, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// decodeLectures parses a JSON array of records. Empty input is an empty list.
func decodeLectures(data []byte) ([]lecture.Lecture, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []lecture.Lecture{}, nil
	}

	var recs []fileRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	items := make([]lecture.Lecture, 0, len(recs))
	for i, rec := range recs {
		l, err := rec.toLecture()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedRecord, i+1, err)
		}
		items = append(items, l)
	}
	return items, nil
}

func (r fileRecord) toLecture() (lecture.Lecture, error) {
	switch {
	case r.Name == nil:
		return lecture.Lecture{}, fmt.Errorf("missing field %q", "name")
	case r.Duration == nil:
		return lecture.Lecture{}, fmt.Errorf("missing field %q", "duration")
	case r.AmountWatched == nil:
		return lecture.Lecture{}, fmt.Errorf("missing field %q", "amount_watched")
	case r.Deadline == nil:
		return lecture.Lecture{}, fmt.Errorf("missing field %q", "deadline")
	case r.ActiveStatus == nil:
		return lecture.Lecture{}, fmt.Errorf("missing field %q", "active_status")
	}

	var deadline lecture.Date
	if err := deadline.UnmarshalText([]byte(*r.Deadline)); err != nil {
		return lecture.Lecture{}, fmt.Errorf("field %q: %v", "deadline", err)
	}

	l := lecture.Lecture{
		Name:          *r.Name,
		Duration:      *r.Duration,
		AmountWatched: *r.AmountWatched,
		Deadline:      deadline,
		AmountDone:    r.AmountDone,
		Status:        lecture.Status(*r.ActiveStatus),
		Index:         r.Index,
	}
	return l, validate(l)
}

// validate rejects values no lecture operation can produce.
func validate(l lecture.Lecture) error {
	switch {
	case l.Duration < 0:
		return fmt.Errorf("field %q: negative value %d", "duration", l.Duration)
	case l.AmountWatched < 0:
		return fmt.Errorf("field %q: negative value %d", "amount_watched", l.AmountWatched)
	case !l.Status.Valid():
		return fmt.Errorf("field %q: expected 0 or 1, got %d", "active_status", int(l.Status))
	}
	return nil
}

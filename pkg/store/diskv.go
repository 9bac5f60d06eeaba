// Package store persists the small set of local records the timeline needs
// across sessions: per-day completion overrides, per-day notification
// markers, and the streak singleton. Event data itself is never persisted.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/nextup/pkg/streak"
	"tableflip.dev/nextup/pkg/timeline"
)

// Persistence is the persistence contract shared by every execution context.
// All writes are whole-record replacements and complete before returning.
type Persistence interface {
	// Overrides loads the completed-event ID set for a day-key. An absent
	// record is an empty set, never an error.
	Overrides(day string) (timeline.Set, error)
	// MarkComplete adds an event ID to the day's override set. Idempotent.
	MarkComplete(day, id string) error
	// UndoComplete removes an event ID from the day's override set. Idempotent.
	UndoComplete(day, id string) error

	// Streak loads the streak singleton; a zero Record when never written.
	Streak() (streak.Record, error)
	// SaveStreak replaces the streak singleton.
	SaveStreak(rec streak.Record) error

	// Notified reports whether the pre-event reminder already fired for the
	// event on the given day.
	Notified(day, id string) (bool, error)
	// MarkNotified records that the reminder fired. Idempotent.
	MarkNotified(day, id string) error
}

const (
	bucketOverrides = "overrides"
	bucketNotified  = "notified"
	streakKey       = "streak/record"
)

// Load creates a Persistence backed by diskv rooted at basePath.
func Load(basePath string) (Persistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      64 * 1024,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Overrides(day string) (timeline.Set, error) {
	ids, err := p.readIDs(dayKeyFor(bucketOverrides, day))
	if err != nil {
		return nil, err
	}
	return timeline.NewSet(ids), nil
}

func (p *persistence) MarkComplete(day, id string) error {
	return p.addID(dayKeyFor(bucketOverrides, day), id)
}

func (p *persistence) UndoComplete(day, id string) error {
	return p.removeID(dayKeyFor(bucketOverrides, day), id)
}

func (p *persistence) Streak() (streak.Record, error) {
	var rec streak.Record
	if !p.d.Has(streakKey) {
		return rec, nil
	}
	data, err := p.d.Read(streakKey)
	if err != nil {
		return rec, fmt.Errorf("store: read streak: %w", err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return streak.Record{}, fmt.Errorf("store: decode streak: %w", err)
	}
	return rec, nil
}

func (p *persistence) SaveStreak(rec streak.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := p.d.Write(streakKey, data); err != nil {
		return fmt.Errorf("store: write streak: %w", err)
	}
	return nil
}

func (p *persistence) Notified(day, id string) (bool, error) {
	ids, err := p.readIDs(dayKeyFor(bucketNotified, day))
	if err != nil {
		return false, err
	}
	for _, seen := range ids {
		if seen == id {
			return true, nil
		}
	}
	return false, nil
}

func (p *persistence) MarkNotified(day, id string) error {
	return p.addID(dayKeyFor(bucketNotified, day), id)
}

// readIDs loads a persisted ID list; an absent key is an empty list.
func (p *persistence) readIDs(key string) ([]string, error) {
	if !p.d.Has(key) {
		return nil, nil
	}
	data, err := p.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return ids, nil
}

func (p *persistence) writeIDs(key string, ids []string) error {
	sort.Strings(ids)
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) addID(key, id string) error {
	if id == "" {
		return errors.New("store: event id required")
	}
	ids, err := p.readIDs(key)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return p.writeIDs(key, append(ids, id))
}

func (p *persistence) removeID(key, id string) error {
	if id == "" {
		return errors.New("store: event id required")
	}
	ids, err := p.readIDs(key)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}
	return p.writeIDs(key, kept)
}

// Keys are "bucket/file" pairs, stored as one JSON file per day-key inside a
// bucket directory.
func dayKeyFor(bucket, day string) string {
	return bucket + "/" + day
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
}

package game

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/pixil98/go-peake/internal/storage"
)

// RecordStore is the persistence a PlayerDirectory needs.
type RecordStore interface {
	storage.Storer[*Record]
	Backup(dir string, now time.Time) (string, error)
}

// SortKey selects the ordering used by PlayerDirectory.Top.
type SortKey string

const (
	SortByLevel      SortKey = "level"
	SortByExperience SortKey = "experience"
	SortByCreated    SortKey = "created_at"
)

// PlayerDirectory maps usernames to stored character records. Lookups
// ignore case; records are keyed by the lowercased name.
type PlayerDirectory struct {
	store RecordStore
	now   func() time.Time
}

// NewPlayerDirectory creates a directory backed by store.
func NewPlayerDirectory(store RecordStore) *PlayerDirectory {
	return &PlayerDirectory{
		store: store,
		now:   time.Now,
	}
}

// Get returns the record for username or nil if there is none.
func (d *PlayerDirectory) Get(username string) *Record {
	return d.store.Get(NormalizeName(username))
}

// Exists reports whether a record exists for username.
func (d *PlayerDirectory) Exists(username string) bool {
	return d.store.Exists(NormalizeName(username))
}

// All returns every stored record keyed by lowercased name.
func (d *PlayerDirectory) All() map[string]*Record {
	return d.store.GetAll()
}

// Count returns the number of stored records.
func (d *PlayerDirectory) Count() int {
	return len(d.store.GetAll())
}

// Load decodes the stored character for username. Returns nil if there is
// no record.
func (d *PlayerDirectory) Load(username string) (*Character, error) {
	rec := d.Get(username)
	if rec == nil {
		return nil, nil
	}
	return CharacterFromRecord(rec, d.now())
}

// Save upserts the character and writes the directory to disk.
func (d *PlayerDirectory) Save(c *Character) error {
	rec := c.Record()
	rec.LastSaved = NewTimestamp(d.now())

	err := d.store.Save(rec.Id(), rec)
	if err != nil {
		slog.Error("saving player", "player", rec.Name, "error", err)
		return fmt.Errorf("saving player %s: %w", rec.Name, err)
	}
	slog.Info("player saved", "player", rec.Name)
	return nil
}

// Create stores a new character. Returns ErrPlayerExists if the name is taken.
func (d *PlayerDirectory) Create(c *Character) error {
	rec := c.Record()
	rec.LastSaved = NewTimestamp(d.now())

	err := d.store.Create(rec.Id(), rec)
	if errors.Is(err, storage.ErrExists) {
		return ErrPlayerExists
	}
	if err != nil {
		slog.Error("creating player", "player", rec.Name, "error", err)
		return fmt.Errorf("creating player %s: %w", rec.Name, err)
	}
	slog.Info("player created", "player", rec.Name)
	return nil
}

// Delete removes the record for username. Returns false if there was none.
func (d *PlayerDirectory) Delete(username string) (bool, error) {
	return d.store.Delete(NormalizeName(username))
}

// Backup copies the directory file into dir with a timestamped name.
func (d *PlayerDirectory) Backup(dir string) (string, error) {
	return d.store.Backup(dir, d.now())
}

// ByLevel returns the records whose level is within [minLevel, maxLevel],
// ordered by name. A zero bound is ignored.
func (d *PlayerDirectory) ByLevel(minLevel, maxLevel int) []*Record {
	var out []*Record
	for _, rec := range d.store.GetAll() {
		level := recordLevel(rec)
		if minLevel > 0 && level < minLevel {
			continue
		}
		if maxLevel > 0 && level > maxLevel {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Id() < out[j].Id()
	})
	return out
}

// Top returns up to limit records, highest first by the given key. Ties are
// ordered by name.
func (d *PlayerDirectory) Top(limit int, by SortKey) ([]*Record, error) {
	var less func(a, b *Record) bool
	switch by {
	case SortByLevel, "":
		less = func(a, b *Record) bool { return recordLevel(a) > recordLevel(b) }
	case SortByExperience:
		less = func(a, b *Record) bool { return intOr(a.Experience, 0) > intOr(b.Experience, 0) }
	case SortByCreated:
		less = func(a, b *Record) bool { return recordTime(a.CreatedAt).After(recordTime(b.CreatedAt)) }
	default:
		return nil, fmt.Errorf("unknown sort key %q", by)
	}

	all := d.store.GetAll()
	out := make([]*Record, 0, len(all))
	for _, rec := range all {
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Id() < out[j].Id()
	})
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PruneInactive deletes every record whose last login is more than days
// before now. Records that never logged in are kept. Returns the removed names.
func (d *PlayerDirectory) PruneInactive(days int) ([]string, error) {
	cutoff := d.now().AddDate(0, 0, -days)

	var removed []string
	for id, rec := range d.store.GetAll() {
		if rec.LastLogin == nil || rec.LastLogin.IsZero() {
			continue
		}
		if rec.LastLogin.Before(cutoff) {
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)

	for _, id := range removed {
		if _, err := d.store.Delete(id); err != nil {
			return nil, fmt.Errorf("deleting %s: %w", id, err)
		}
	}
	if len(removed) > 0 {
		slog.Info("removed inactive players", "count", len(removed))
	}
	return removed, nil
}

// DirectoryStats summarises the stored characters.
type DirectoryStats struct {
	Total             int            `json:"total_players" yaml:"total_players"`
	Races             map[string]int `json:"races" yaml:"races"`
	Classes           map[string]int `json:"classes" yaml:"classes"`
	LevelDistribution map[string]int `json:"level_distribution" yaml:"level_distribution"`
	AverageLevel      float64        `json:"average_level" yaml:"average_level"`
}

// Stats returns counts per race, class and five-level bracket.
func (d *PlayerDirectory) Stats() DirectoryStats {
	stats := DirectoryStats{
		Races:             map[string]int{},
		Classes:           map[string]int{},
		LevelDistribution: map[string]int{},
	}

	totalLevel := 0
	for _, rec := range d.store.GetAll() {
		stats.Total++
		stats.Races[orUnknown(rec.Race)]++
		stats.Classes[orUnknown(rec.Class)]++

		level := recordLevel(rec)
		totalLevel += level
		stats.LevelDistribution[LevelBracket(level)]++
	}
	if stats.Total > 0 {
		stats.AverageLevel = float64(totalLevel) / float64(stats.Total)
	}
	return stats
}

// LevelBracket returns the five-level range containing level, e.g. "6-10".
func LevelBracket(level int) string {
	low := (max(level, 1)-1)/5*5 + 1
	return fmt.Sprintf("%d-%d", low, low+4)
}

func recordLevel(r *Record) int {
	return intOr(r.Level, 1)
}

func recordTime(t *Timestamp) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.Time
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

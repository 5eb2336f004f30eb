package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

// legacyTimeLayout matches timestamps written without a zone offset.
const legacyTimeLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a time that also accepts zone-less ISO 8601 values.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		t.Time = parsed
		return nil
	}

	parsed, err = time.ParseInLocation(legacyTimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// Record is the persisted form of a character. Numeric fields are pointers
// so a missing value can be told apart from a zero.
type Record struct {
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
	Race         string `json:"race"`
	Class        string `json:"char_class"`

	Level      *int `json:"level,omitempty"`
	Experience *int `json:"experience,omitempty"`

	Strength     *int `json:"strength,omitempty"`
	Dexterity    *int `json:"dexterity,omitempty"`
	Constitution *int `json:"constitution,omitempty"`
	Intelligence *int `json:"intelligence,omitempty"`
	Wisdom       *int `json:"wisdom,omitempty"`
	Charisma     *int `json:"charisma,omitempty"`

	MaxHealth *int `json:"max_health,omitempty"`
	Health    *int `json:"health,omitempty"`
	MaxMana   *int `json:"max_mana,omitempty"`
	Mana      *int `json:"mana,omitempty"`

	Location  string     `json:"location,omitempty"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
	LastLogin *Timestamp `json:"last_login,omitempty"`
	LastSaved *Timestamp `json:"last_saved,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (r *Record) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if r.PasswordHash == "" {
		el.Add(fmt.Errorf("password_hash is required"))
	}
	if RaceByName(r.Race) == nil {
		el.Add(fmt.Errorf("unknown race %q", r.Race))
	}
	if ClassByName(r.Class) == nil {
		el.Add(fmt.Errorf("unknown class %q", r.Class))
	}
	if r.Level != nil && *r.Level < 1 {
		el.Add(fmt.Errorf("level must be at least 1"))
	}
	if r.Experience != nil && *r.Experience < 0 {
		el.Add(fmt.Errorf("experience must not be negative"))
	}

	return el.Err()
}

// Id returns the directory key for the record.
func (r *Record) Id() string {
	return NormalizeName(r.Name)
}

// attribute returns the record field holding a.
func (r *Record) attribute(a Attribute) **int {
	switch a {
	case Strength:
		return &r.Strength
	case Dexterity:
		return &r.Dexterity
	case Constitution:
		return &r.Constitution
	case Intelligence:
		return &r.Intelligence
	case Wisdom:
		return &r.Wisdom
	case Charisma:
		return &r.Charisma
	default:
		return nil
	}
}

// Record returns the persisted form of the character.
func (c *Character) Record() *Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.sheet
	r := &Record{
		Name:         s.Name,
		PasswordHash: c.passwordHash,
		Race:         s.Race,
		Class:        s.Class,
		Level:        intPtr(s.Level),
		Experience:   intPtr(s.Experience),
		MaxHealth:    intPtr(s.MaxHealth),
		Health:       intPtr(s.Health),
		MaxMana:      intPtr(s.MaxMana),
		Mana:         intPtr(s.Mana),
		Location:     s.Location,
		CreatedAt:    NewTimestamp(s.CreatedAt),
		LastLogin:    NewTimestamp(s.LastLogin),
	}
	for _, a := range AllAttributes() {
		*r.attribute(a) = intPtr(s.Attributes.Get(a))
	}
	return r
}

// CharacterFromRecord decodes a stored record. Every stored field is used
// as-is; fields missing from the record are derived from race and class the
// same way character creation does. The last login is set to now.
func CharacterFromRecord(r *Record, now time.Time) (*Character, error) {
	if r == nil {
		return nil, fmt.Errorf("record is nil")
	}
	race := RaceByName(r.Race)
	if race == nil {
		return nil, fmt.Errorf("unknown race %q", r.Race)
	}
	class := ClassByName(r.Class)
	if class == nil {
		return nil, fmt.Errorf("unknown class %q", r.Class)
	}

	s := Sheet{
		Name:       r.Name,
		Race:       race.Name,
		Class:      class.Name,
		Experience: max(0, intOr(r.Experience, 0)),
		Location:   r.Location,
		CreatedAt:  now,
		LastLogin:  now,
	}
	s.Level = max(1, intOr(r.Level, LevelForExp(s.Experience)))

	derived := DeriveAttributes(race, class)
	for _, a := range AllAttributes() {
		s.Attributes[a] = intOr(*r.attribute(a), derived[a])
	}

	s.MaxHealth = max(0, intOr(r.MaxHealth, MaxHealthFor(s.Attributes)))
	s.Health = clamp(intOr(r.Health, s.MaxHealth), 0, s.MaxHealth)
	s.MaxMana = max(0, intOr(r.MaxMana, MaxManaFor(s.Attributes)))
	s.Mana = clamp(intOr(r.Mana, s.MaxMana), 0, s.MaxMana)

	if s.Location == "" {
		s.Location = DefaultLocation
	}
	if r.CreatedAt != nil && !r.CreatedAt.IsZero() {
		s.CreatedAt = r.CreatedAt.Time
	}

	return &Character{
		passwordHash: r.PasswordHash,
		sheet:        s,
	}, nil
}

func intPtr(i int) *int {
	return &i
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Summary returns "Name (Level N Race Class)".
func (r *Record) Summary() string {
	return fmt.Sprintf("%s (Level %d %s %s)", r.Name, recordLevel(r), r.Race, r.Class)
}

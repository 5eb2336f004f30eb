package game

import (
	"fmt"
	"sync"
	"time"
)

// Sheet is a point-in-time copy of a character's state.
type Sheet struct {
	Name       string
	Race       string
	Class      string
	Level      int
	Experience int
	Attributes Attributes
	MaxHealth  int
	Health     int
	MaxMana    int
	Mana       int
	Location   string
	CreatedAt  time.Time
	LastLogin  time.Time
}

// Character represents a player character in the game. A character may be
// read by other sessions (who, broadcasts) while its owner mutates it, so
// all access goes through its methods.
type Character struct {
	mu sync.RWMutex

	// passwordHash is the hashed login credential
	passwordHash string
	sheet        Sheet
}

// MaxHealthFor returns the max health derived from attrs.
func MaxHealthFor(attrs Attributes) int {
	return attrs.Get(Constitution)*10 + 50
}

// MaxManaFor returns the max mana derived from attrs.
func MaxManaFor(attrs Attributes) int {
	return attrs.Get(Intelligence)*5 + attrs.Get(Wisdom)*5 + 25
}

// DeriveAttributes applies race and class bonuses on top of the base attributes.
func DeriveAttributes(race *Race, class *Class) Attributes {
	attrs := NewAttributes()
	if race != nil {
		attrs.Apply(race.StatBonuses)
	}
	if class != nil {
		attrs.Apply(class.StatBonuses)
	}
	return attrs
}

// NewCharacter creates a level 1 character with attributes derived from
// race and class and full health and mana.
func NewCharacter(name, passwordHash string, race *Race, class *Class, now time.Time) *Character {
	attrs := DeriveAttributes(race, class)

	sheet := Sheet{
		Name:       name,
		Level:      1,
		Attributes: attrs,
		MaxHealth:  MaxHealthFor(attrs),
		MaxMana:    MaxManaFor(attrs),
		Location:   DefaultLocation,
		CreatedAt:  now,
		LastLogin:  now,
	}
	if race != nil {
		sheet.Race = race.Name
	}
	if class != nil {
		sheet.Class = class.Name
	}
	sheet.Health = sheet.MaxHealth
	sheet.Mana = sheet.MaxMana

	return &Character{
		passwordHash: passwordHash,
		sheet:        sheet,
	}
}

// Name returns the character's display name.
func (c *Character) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sheet.Name
}

// Id returns the directory key for the character.
func (c *Character) Id() string {
	return NormalizeName(c.Name())
}

// Sheet returns a copy of the character's current state.
func (c *Character) Sheet() Sheet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sheet
}

// PasswordHash returns the stored credential hash.
func (c *Character) PasswordHash() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.passwordHash
}

// SetPasswordHash replaces the stored credential hash.
func (c *Character) SetPasswordHash(hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passwordHash = hash
}

// Touch records a login at now.
func (c *Character) Touch(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sheet.LastLogin = now
}

// GainExperience adds experience and levels the character up if a new
// level threshold was crossed. Crossing several thresholds at once grants
// the stat increase a single time. Returns true if the character leveled.
func (c *Character) GainExperience(amount int) (bool, error) {
	if amount < 0 {
		return false, ErrNegativeAmount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sheet.Experience += amount
	newLevel := LevelForExp(c.sheet.Experience)
	if newLevel <= c.sheet.Level {
		return false, nil
	}

	c.sheet.Level = newLevel
	c.sheet.MaxHealth += c.sheet.Attributes.Get(Constitution) * 2
	c.sheet.MaxMana += c.sheet.Attributes.Get(Intelligence) + c.sheet.Attributes.Get(Wisdom)
	c.sheet.Health = c.sheet.MaxHealth
	c.sheet.Mana = c.sheet.MaxMana
	return true, nil
}

// TakeDamage reduces health, never below zero. Returns true if health
// reached zero.
func (c *Character) TakeDamage(amount int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if amount > 0 {
		c.sheet.Health = max(0, c.sheet.Health-amount)
	}
	return c.sheet.Health <= 0
}

// Heal restores health up to the maximum. Negative amounts are ignored.
func (c *Character) Heal(amount int) {
	if amount <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sheet.Health = min(c.sheet.MaxHealth, c.sheet.Health+amount)
}

// UseMana spends amount mana. Returns false, spending nothing, if there
// isn't enough.
func (c *Character) UseMana(amount int) bool {
	if amount < 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if amount > c.sheet.Mana {
		return false
	}
	c.sheet.Mana -= amount
	return true
}

// RestoreMana restores mana up to the maximum. Negative amounts are ignored.
func (c *Character) RestoreMana(amount int) {
	if amount <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sheet.Mana = min(c.sheet.MaxMana, c.sheet.Mana+amount)
}

// String returns the short description used in player listings.
func (c *Character) String() string {
	s := c.Sheet()
	return s.Summary()
}

// Summary returns "Name (Level N Race Class)".
func (s Sheet) Summary() string {
	return fmt.Sprintf("%s (Level %d %s %s)", s.Name, s.Level, s.Race, s.Class)
}

// StatSections returns the character's stat display sections.
func (s Sheet) StatSections() []StatSection {
	attrs := StatSection{Header: "Attributes"}
	for _, a := range AllAttributes() {
		attrs.Lines = append(attrs.Lines, StatLine{
			Value: fmt.Sprintf("%-14s %3d", titleCase(a.String())+":", s.Attributes.Get(a)),
		})
	}

	return []StatSection{
		{
			Lines: []StatLine{
				{Value: s.Name, Center: true},
				{Value: fmt.Sprintf("Level %d %s %s", s.Level, s.Race, s.Class), Center: true},
			},
		},
		{
			Lines: []StatLine{
				{Value: fmt.Sprintf("Health: %d/%d", s.Health, s.MaxHealth)},
				{Value: fmt.Sprintf("Mana:   %d/%d", s.Mana, s.MaxMana)},
			},
		},
		attrs,
		{
			Lines: []StatLine{
				{Value: fmt.Sprintf("Experience: %d", s.Experience)},
				{Value: fmt.Sprintf("Next level: %d", ExpToNextLevel(s.Level, s.Experience))},
			},
		},
	}
}

// StatSection is a titled group of lines in a stat display.
type StatSection struct {
	Header string
	Lines  []StatLine
}

// StatLine is a single line of a stat display.
type StatLine struct {
	Value  string
	Center bool
}

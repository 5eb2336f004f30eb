package game

import (
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestCharacter(t *testing.T, name, race, class string) *Character {
	t.Helper()
	r := RaceByName(race)
	if r == nil {
		t.Fatalf("unknown race %q", race)
	}
	c := ClassByName(class)
	if c == nil {
		t.Fatalf("unknown class %q", class)
	}
	return NewCharacter(name, "hash", r, c, testNow)
}

func TestNewCharacter(t *testing.T) {
	tests := map[string]struct {
		race      string
		class     string
		expStr    int
		expInt    int
		expCon    int
		expHealth int
		expMana   int
	}{
		"human warrior": {
			race:      "Human",
			class:     "Warrior",
			expStr:    14,
			expInt:    10,
			expCon:    13,
			expHealth: 180,
			expMana:   130,
		},
		"elf mage": {
			race:      "Elf",
			class:     "Mage",
			expStr:    9,
			expInt:    16,
			expCon:    7,
			expHealth: 120,
			expMana:   175,
		},
		"dwarf barbarian": {
			race:      "Dwarf",
			class:     "Barbarian",
			expStr:    15,
			expInt:    8,
			expCon:    16,
			expHealth: 210,
			expMana:   115,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestCharacter(t, "Tester", tt.race, tt.class)
			s := c.Sheet()

			testutil.AssertEqual(t, "level", s.Level, 1)
			testutil.AssertEqual(t, "experience", s.Experience, 0)
			testutil.AssertEqual(t, "strength", s.Attributes.Get(Strength), tt.expStr)
			testutil.AssertEqual(t, "intelligence", s.Attributes.Get(Intelligence), tt.expInt)
			testutil.AssertEqual(t, "constitution", s.Attributes.Get(Constitution), tt.expCon)
			testutil.AssertEqual(t, "max health", s.MaxHealth, tt.expHealth)
			testutil.AssertEqual(t, "health", s.Health, tt.expHealth)
			testutil.AssertEqual(t, "max mana", s.MaxMana, tt.expMana)
			testutil.AssertEqual(t, "mana", s.Mana, tt.expMana)
			testutil.AssertEqual(t, "location", s.Location, DefaultLocation)
			testutil.AssertEqual(t, "created", s.CreatedAt, testNow)
		})
	}
}

func TestDeriveAttributes_Deterministic(t *testing.T) {
	for _, race := range Races() {
		for _, class := range Classes() {
			first := DeriveAttributes(race, class)
			second := DeriveAttributes(race, class)
			if first != second {
				t.Errorf("%s %s: derivation differs: %v vs %v", race.Name, class.Name, first, second)
			}

			exp := NewAttributes()
			for _, a := range AllAttributes() {
				exp[a] += race.StatBonuses[a] + class.StatBonuses[a]
			}
			if first != exp {
				t.Errorf("%s %s: got %v, expected %v", race.Name, class.Name, first, exp)
			}

			c := NewCharacter("Tester", "hash", race, class, testNow)
			s := c.Sheet()
			if s.MaxHealth != exp.Get(Constitution)*10+50 {
				t.Errorf("%s %s: max health %d", race.Name, class.Name, s.MaxHealth)
			}
			if s.MaxMana != exp.Get(Intelligence)*5+exp.Get(Wisdom)*5+25 {
				t.Errorf("%s %s: max mana %d", race.Name, class.Name, s.MaxMana)
			}
		}
	}
}

// Class health and mana multipliers are not part of the derived stats.
func TestNewCharacter_MultipliersNotApplied(t *testing.T) {
	barbarian := newTestCharacter(t, "Grog", "Human", "Barbarian").Sheet()
	testutil.AssertEqual(t, "max health", barbarian.MaxHealth, MaxHealthFor(barbarian.Attributes))
	testutil.AssertEqual(t, "max mana", barbarian.MaxMana, MaxManaFor(barbarian.Attributes))

	mage := newTestCharacter(t, "Merl", "Human", "Mage").Sheet()
	testutil.AssertEqual(t, "max mana", mage.MaxMana, MaxManaFor(mage.Attributes))
}

func TestAttributes_ApplyIgnoresUnknown(t *testing.T) {
	attrs := NewAttributes()
	attrs.Apply(Bonuses{
		Strength:      2,
		Attribute(-1): 5,
		Attribute(42): 5,
		numAttributes: 5,
	})

	exp := NewAttributes()
	exp[Strength] = 12
	testutil.AssertEqual(t, "attributes", attrs, exp)
}

func TestCharacter_GainExperience(t *testing.T) {
	tests := map[string]struct {
		amounts     []int
		expLevel    int
		expExp      int
		expLeveled  bool
		expMaxBonus bool
		expErr      error
	}{
		"below threshold": {
			amounts:  []int{999},
			expLevel: 1,
			expExp:   999,
		},
		"exactly one level": {
			amounts:     []int{1000},
			expLevel:    2,
			expExp:      1000,
			expLeveled:  true,
			expMaxBonus: true,
		},
		"accumulated": {
			amounts:     []int{600, 600},
			expLevel:    2,
			expExp:      1200,
			expLeveled:  true,
			expMaxBonus: true,
		},
		"multi level jump applies one increase": {
			amounts:     []int{5000},
			expLevel:    6,
			expExp:      5000,
			expLeveled:  true,
			expMaxBonus: true,
		},
		"negative rejected": {
			amounts:  []int{-10},
			expLevel: 1,
			expExp:   0,
			expErr:   ErrNegativeAmount,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestCharacter(t, "Tester", "Human", "Warrior")
			before := c.Sheet()
			c.TakeDamage(50)
			c.UseMana(20)

			var leveled bool
			var err error
			for _, amt := range tt.amounts {
				var l bool
				l, err = c.GainExperience(amt)
				leveled = leveled || l
			}
			if err != tt.expErr {
				t.Fatalf("error: got %v, expected %v", err, tt.expErr)
			}

			s := c.Sheet()
			testutil.AssertEqual(t, "level", s.Level, tt.expLevel)
			testutil.AssertEqual(t, "experience", s.Experience, tt.expExp)
			testutil.AssertEqual(t, "leveled", leveled, tt.expLeveled)

			if tt.expMaxBonus {
				con := before.Attributes.Get(Constitution)
				mana := before.Attributes.Get(Intelligence) + before.Attributes.Get(Wisdom)
				testutil.AssertEqual(t, "max health", s.MaxHealth, before.MaxHealth+con*2)
				testutil.AssertEqual(t, "max mana", s.MaxMana, before.MaxMana+mana)
				testutil.AssertEqual(t, "health", s.Health, s.MaxHealth)
				testutil.AssertEqual(t, "mana", s.Mana, s.MaxMana)
			} else {
				testutil.AssertEqual(t, "max health", s.MaxHealth, before.MaxHealth)
				testutil.AssertEqual(t, "health", s.Health, before.MaxHealth-50)
			}
		})
	}
}

func TestCharacter_TakeDamage(t *testing.T) {
	tests := map[string]struct {
		amount    int
		expHealth func(maxHP int) int
		expDead   bool
	}{
		"partial": {
			amount:    10,
			expHealth: func(m int) int { return m - 10 },
		},
		"exact": {
			amount:    180,
			expHealth: func(int) int { return 0 },
			expDead:   true,
		},
		"overkill floors at zero": {
			amount:    10000,
			expHealth: func(int) int { return 0 },
			expDead:   true,
		},
		"negative ignored": {
			amount:    -5,
			expHealth: func(m int) int { return m },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestCharacter(t, "Tester", "Human", "Warrior")
			maxHP := c.Sheet().MaxHealth

			dead := c.TakeDamage(tt.amount)

			testutil.AssertEqual(t, "dead", dead, tt.expDead)
			testutil.AssertEqual(t, "health", c.Sheet().Health, tt.expHealth(maxHP))
		})
	}
}

func TestCharacter_HealAndMana(t *testing.T) {
	c := newTestCharacter(t, "Tester", "Human", "Mage")
	s := c.Sheet()

	c.TakeDamage(30)
	c.Heal(10)
	testutil.AssertEqual(t, "partial heal", c.Sheet().Health, s.MaxHealth-20)
	c.Heal(1000)
	testutil.AssertEqual(t, "heal saturates", c.Sheet().Health, s.MaxHealth)
	c.Heal(-50)
	testutil.AssertEqual(t, "negative heal", c.Sheet().Health, s.MaxHealth)

	testutil.AssertEqual(t, "too much mana", c.UseMana(s.Mana+1), false)
	testutil.AssertEqual(t, "mana unchanged", c.Sheet().Mana, s.Mana)

	testutil.AssertEqual(t, "spend mana", c.UseMana(40), true)
	testutil.AssertEqual(t, "mana spent", c.Sheet().Mana, s.Mana-40)

	testutil.AssertEqual(t, "negative mana", c.UseMana(-1), false)

	c.RestoreMana(15)
	testutil.AssertEqual(t, "partial restore", c.Sheet().Mana, s.Mana-25)
	c.RestoreMana(1000)
	testutil.AssertEqual(t, "restore saturates", c.Sheet().Mana, s.MaxMana)

	testutil.AssertEqual(t, "spend all", c.UseMana(s.MaxMana), true)
	testutil.AssertEqual(t, "mana empty", c.Sheet().Mana, 0)
}

func TestExperienceCurve(t *testing.T) {
	tests := map[string]struct {
		exp      int
		level    int
		expLevel int
		expNext  int
	}{
		"zero":       {exp: 0, level: 1, expLevel: 1, expNext: 1000},
		"mid":        {exp: 1500, level: 2, expLevel: 2, expNext: 500},
		"boundary":   {exp: 2000, level: 3, expLevel: 3, expNext: 1000},
		"negative":   {exp: -5, level: 1, expLevel: 1, expNext: 1005},
		"behind cap": {exp: 5000, level: 2, expLevel: 6, expNext: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "level", LevelForExp(tt.exp), tt.expLevel)
			testutil.AssertEqual(t, "next", ExpToNextLevel(tt.level, tt.exp), tt.expNext)
		})
	}
}

func TestSheet_Summary(t *testing.T) {
	c := newTestCharacter(t, "Aria", "Elf", "Ranger")
	testutil.AssertEqual(t, "summary", c.String(), "Aria (Level 1 Elf Ranger)")
}

func TestNormalizeName(t *testing.T) {
	testutil.AssertEqual(t, "upper", NormalizeName("BOB"), "bob")
	testutil.AssertEqual(t, "mixed", NormalizeName("  BoB "), "bob")
}

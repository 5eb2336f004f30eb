package game

import (
	"strings"
)

// Class defines a playable character class.
//
// HealthMultiplier and ManaMultiplier are descriptive only; derived stats
// are computed from attributes alone.
type Class struct {
	Name             string
	Description      string
	PrimaryStat      Attribute
	StartingSkills   []string
	StatBonuses      Bonuses
	SpecialAbilities []string
	HealthMultiplier float64
	ManaMultiplier   float64
}

// Selector returns the label shown in selection menus.
func (c *Class) Selector() string {
	return c.Name
}

var classes = []*Class{
	{
		Name:           "Warrior",
		Description:    "Master of melee combat, high health and armor, devastating physical attacks.",
		PrimaryStat:    Strength,
		StartingSkills: []string{"Sword Mastery", "Shield Block", "Battle Cry"},
		StatBonuses: Bonuses{
			Strength:     3,
			Constitution: 2,
			Dexterity:    1,
			Intelligence: -1,
		},
		SpecialAbilities: []string{"Heavy Armor Mastery", "Weapon Expertise"},
		HealthMultiplier: 1.5,
		ManaMultiplier:   0.5,
	},
	{
		Name:           "Mage",
		Description:    "Master of arcane magic, powerful spells, but fragile in combat.",
		PrimaryStat:    Intelligence,
		StartingSkills: []string{"Fireball", "Magic Missile", "Mana Shield"},
		StatBonuses: Bonuses{
			Intelligence: 4,
			Wisdom:       2,
			Constitution: -2,
			Strength:     -1,
		},
		SpecialAbilities: []string{"Spell Mastery", "Mana Efficiency"},
		HealthMultiplier: 0.8,
		ManaMultiplier:   2.0,
	},
	{
		Name:           "Rogue",
		Description:    "Stealthy assassin, high damage from behind, lockpicking and trap detection.",
		PrimaryStat:    Dexterity,
		StartingSkills: []string{"Backstab", "Stealth", "Lockpicking"},
		StatBonuses: Bonuses{
			Dexterity:    4,
			Intelligence: 1,
			Charisma:     1,
			Strength:     -1,
			Constitution: -1,
		},
		SpecialAbilities: []string{"Sneak Attack", "Trap Detection"},
		HealthMultiplier: 1.0,
		ManaMultiplier:   0.8,
	},
	{
		Name:           "Cleric",
		Description:    "Divine spellcaster, healing magic, undead turning, moderate combat ability.",
		PrimaryStat:    Wisdom,
		StartingSkills: []string{"Heal", "Bless", "Turn Undead"},
		StatBonuses: Bonuses{
			Wisdom:       3,
			Charisma:     2,
			Constitution: 1,
			Dexterity:    -1,
		},
		SpecialAbilities: []string{"Divine Magic", "Healing Mastery"},
		HealthMultiplier: 1.2,
		ManaMultiplier:   1.5,
	},
	{
		Name:           "Ranger",
		Description:    "Nature's guardian, archery expertise, animal companions, tracking abilities.",
		PrimaryStat:    Dexterity,
		StartingSkills: []string{"Archery", "Track", "Animal Friend"},
		StatBonuses: Bonuses{
			Dexterity:    3,
			Wisdom:       2,
			Constitution: 1,
			Charisma:     -1,
		},
		SpecialAbilities: []string{"Archery Mastery", "Nature Lore"},
		HealthMultiplier: 1.1,
		ManaMultiplier:   1.0,
	},
	{
		Name:           "Paladin",
		Description:    "Holy warrior, divine magic, healing, protection of the innocent.",
		PrimaryStat:    Charisma,
		StartingSkills: []string{"Holy Strike", "Heal", "Divine Protection"},
		StatBonuses: Bonuses{
			Charisma:     3,
			Strength:     2,
			Wisdom:       1,
			Intelligence: -1,
		},
		SpecialAbilities: []string{"Divine Grace", "Undead Bane"},
		HealthMultiplier: 1.3,
		ManaMultiplier:   1.2,
	},
	{
		Name:           "Barbarian",
		Description:    "Primal warrior, berserker rage, incredible strength and endurance.",
		PrimaryStat:    Constitution,
		StartingSkills: []string{"Rage", "Intimidate", "Survival"},
		StatBonuses: Bonuses{
			Strength:     3,
			Constitution: 3,
			Wisdom:       -1,
			Intelligence: -2,
		},
		SpecialAbilities: []string{"Berserker Rage", "Damage Resistance"},
		HealthMultiplier: 1.6,
		ManaMultiplier:   0.3,
	},
	{
		Name:           "Bard",
		Description:    "Jack of all trades, inspiring songs, moderate magic and combat ability.",
		PrimaryStat:    Charisma,
		StartingSkills: []string{"Inspire", "Sleep Song", "Charm"},
		StatBonuses: Bonuses{
			Charisma:     3,
			Dexterity:    2,
			Intelligence: 1,
			Constitution: -1,
		},
		SpecialAbilities: []string{"Song Magic", "Jack of All Trades"},
		HealthMultiplier: 1.0,
		ManaMultiplier:   1.3,
	},
}

// Classes returns the playable classes in menu order.
func Classes() []*Class {
	out := make([]*Class, len(classes))
	copy(out, classes)
	return out
}

// ClassByName finds a class by name, ignoring case. Returns nil if not found.
func ClassByName(name string) *Class {
	for _, c := range classes {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

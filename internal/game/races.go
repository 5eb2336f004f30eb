package game

import (
	"strings"
)

// Race defines a playable race.
type Race struct {
	Name             string
	Description      string
	Features         []string
	StatBonuses      Bonuses
	SpecialAbilities []string
}

// Selector returns the label shown in selection menus.
func (r *Race) Selector() string {
	return r.Name
}

var races = []*Race{
	{
		Name:        "Human",
		Description: "Versatile and adaptable, humans are well-balanced in all aspects.",
		Features:    []string{"Balanced stats", "Quick learner", "Diplomatic"},
		StatBonuses: Bonuses{
			Strength:     1,
			Dexterity:    1,
			Constitution: 1,
			Intelligence: 1,
			Wisdom:       1,
			Charisma:     1,
		},
		SpecialAbilities: []string{"Extra experience gain"},
	},
	{
		Name:        "Elf",
		Description: "Graceful and wise, elves have a natural affinity for magic and archery.",
		Features:    []string{"High dexterity", "Magical affinity", "Keen senses"},
		StatBonuses: Bonuses{
			Dexterity:    3,
			Intelligence: 2,
			Wisdom:       2,
			Constitution: -1,
		},
		SpecialAbilities: []string{"Enhanced mana regeneration", "Archery expertise"},
	},
	{
		Name:        "Dwarf",
		Description: "Hardy mountain folk known for their strength, endurance, and craftsmanship.",
		Features:    []string{"High constitution", "Poison resistance", "Master craftsman"},
		StatBonuses: Bonuses{
			Strength:     2,
			Constitution: 3,
			Wisdom:       1,
			Dexterity:    -1,
			Charisma:     -1,
		},
		SpecialAbilities: []string{"Poison resistance", "Enhanced smithing"},
	},
	{
		Name:        "Halfling",
		Description: "Small but nimble folk with incredible luck and stealth abilities.",
		Features:    []string{"High dexterity", "Lucky", "Stealthy"},
		StatBonuses: Bonuses{
			Dexterity: 3,
			Charisma:  2,
			Wisdom:    1,
			Strength:  -2,
		},
		SpecialAbilities: []string{"Lucky escapes", "Enhanced stealth"},
	},
	{
		Name:        "Orc",
		Description: "Powerful and fierce warriors with natural combat prowess.",
		Features:    []string{"High strength", "Battle fury", "Intimidating presence"},
		StatBonuses: Bonuses{
			Strength:     4,
			Constitution: 2,
			Intelligence: -2,
			Charisma:     -1,
		},
		SpecialAbilities: []string{"Berserker rage", "Intimidation"},
	},
	{
		Name:        "Gnome",
		Description: "Small, intelligent beings with a natural aptitude for magic and tinkering.",
		Features:    []string{"High intelligence", "Magical aptitude", "Inventive"},
		StatBonuses: Bonuses{
			Intelligence: 3,
			Wisdom:       2,
			Dexterity:    1,
			Strength:     -2,
			Constitution: -1,
		},
		SpecialAbilities: []string{"Enhanced spell power", "Tinkering expertise"},
	},
}

// Races returns the playable races in menu order.
func Races() []*Race {
	out := make([]*Race, len(races))
	copy(out, races)
	return out
}

// RaceByName finds a race by name, ignoring case. Returns nil if not found.
func RaceByName(name string) *Race {
	for _, r := range races {
		if strings.EqualFold(r.Name, name) {
			return r
		}
	}
	return nil
}

package game

import (
	"fmt"
	"strings"
)

// DefaultLocation is where new characters start.
const DefaultLocation = "town_square"

// Room is a static location a character can stand in.
type Room struct {
	Name        string
	Description string
	Exits       map[string]string // direction -> description
}

var rooms = map[string]*Room{
	DefaultLocation: {
		Name: "Town Square",
		Description: "You are standing in the Town Square of Peake. " +
			"A bustling center of activity with merchants, adventurers, and townsfolk.",
		Exits: map[string]string{
			"north": "the Great Forest",
			"south": "the Rolling Hills",
			"east":  "the Adventurer's Guild",
		},
	},
}

// RoomById returns the room for a location tag, falling back to the
// default location for unknown tags.
func RoomById(id string) *Room {
	if r, ok := rooms[id]; ok {
		return r
	}
	return rooms[DefaultLocation]
}

// Describe returns the room text shown by look.
func (r *Room) Describe() string {
	var lines []string
	lines = append(lines, r.Name)
	lines = append(lines, r.Description)

	for _, dir := range []string{"north", "east", "south", "west"} {
		if dest, ok := r.Exits[dir]; ok {
			lines = append(lines, fmt.Sprintf("To the %s lies %s.", dir, dest))
		}
	}
	return strings.Join(lines, "\n")
}

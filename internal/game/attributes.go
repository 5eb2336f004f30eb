package game

import (
	"strings"
)

// BaseAttribute is the value every attribute starts at before bonuses.
const BaseAttribute = 10

// Attribute identifies one of the six character attributes.
type Attribute int

const (
	Strength Attribute = iota
	Dexterity
	Constitution
	Intelligence
	Wisdom
	Charisma

	numAttributes
)

var attributeNames = [numAttributes]string{
	Strength:     "strength",
	Dexterity:    "dexterity",
	Constitution: "constitution",
	Intelligence: "intelligence",
	Wisdom:       "wisdom",
	Charisma:     "charisma",
}

// AllAttributes returns every attribute in display order.
func AllAttributes() []Attribute {
	attrs := make([]Attribute, 0, numAttributes)
	for a := Attribute(0); a < numAttributes; a++ {
		attrs = append(attrs, a)
	}
	return attrs
}

// Valid reports whether a is one of the known attributes.
func (a Attribute) Valid() bool {
	return a >= 0 && a < numAttributes
}

func (a Attribute) String() string {
	if !a.Valid() {
		return "unknown"
	}
	return attributeNames[a]
}

// ParseAttribute looks up an attribute by its name, ignoring case.
func ParseAttribute(name string) (Attribute, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range attributeNames {
		if n == name {
			return Attribute(a), true
		}
	}
	return 0, false
}

// Attributes holds a value for every attribute, indexed by Attribute.
type Attributes [numAttributes]int

// NewAttributes returns a set of attributes all at BaseAttribute.
func NewAttributes() Attributes {
	var attrs Attributes
	for i := range attrs {
		attrs[i] = BaseAttribute
	}
	return attrs
}

// Get returns the value of a. Unknown attributes read as zero.
func (a Attributes) Get(attr Attribute) int {
	if !attr.Valid() {
		return 0
	}
	return a[attr]
}

// Apply adds every bonus to the matching attribute. Keys that are not
// known attributes are skipped.
func (a *Attributes) Apply(bonuses Bonuses) {
	for attr, delta := range bonuses {
		if !attr.Valid() {
			continue
		}
		a[attr] += delta
	}
}

// Bonuses maps attributes to a fixed delta.
type Bonuses map[Attribute]int

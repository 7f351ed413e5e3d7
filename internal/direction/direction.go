// Package direction maps direction names to unit movement vectors and back.
package direction

import (
	"sort"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownDirection is returned when a name, offset or value is not part of the set
	ErrUnknownDirection = errors.New("direction: unknown direction")

	// ErrInvalidDirection is returned when a set is built from conflicting entries
	ErrInvalidDirection = errors.New("direction: invalid direction entry")
)

// Offset is a unit displacement in the plane
type Offset struct {
	DX float64 `json:"dx" yaml:"dx"`
	DY float64 `json:"dy" yaml:"dy"`
}

// Direction associates a name and an ordinal value with an offset
type Direction struct {
	Name   string `json:"name" yaml:"name"`
	Value  int    `json:"value" yaml:"value"`
	Offset Offset `json:"offset" yaml:"offset"`
}

// Names of the cardinal directions
const (
	Left  = "left"
	Up    = "up"
	Right = "right"
	Down  = "down"
)

// cardinal uses screen coordinates: y grows downward, so "up" decreases y
var cardinal = []Direction{
	{Name: Left, Value: 1, Offset: Offset{DX: -1}},
	{Name: Up, Value: 2, Offset: Offset{DY: -1}},
	{Name: Right, Value: 3, Offset: Offset{DX: 1}},
	{Name: Down, Value: 4, Offset: Offset{DY: 1}},
}

// Set is an immutable, closed set of directions with lookups in both directions
type Set struct {
	ordered  []Direction
	byName   map[string]Direction
	byOffset map[Offset]string
	byValue  map[int]string
}

// Cardinal returns the left/up/right/down set
func Cardinal() *Set {
	set, _ := New(cardinal...)
	return set
}

// New builds a set from a fixed list of directions. Names, offsets and values
// must all be unique and no offset may be zero.
func New(entries ...Direction) (*Set, error) {
	if len(entries) == 0 {
		return nil, errors.Wrap(ErrInvalidDirection, "empty direction set")
	}

	set := &Set{
		ordered:  make([]Direction, 0, len(entries)),
		byName:   make(map[string]Direction, len(entries)),
		byOffset: make(map[Offset]string, len(entries)),
		byValue:  make(map[int]string, len(entries)),
	}

	for _, entry := range entries {
		if entry.Name == "" {
			return nil, errors.Wrap(ErrInvalidDirection, "direction without a name")
		}
		if entry.Offset == (Offset{}) {
			return nil, errors.Wrapf(ErrInvalidDirection, "%s has a zero offset", entry.Name)
		}
		if _, exists := set.byName[entry.Name]; exists {
			return nil, errors.Wrapf(ErrInvalidDirection, "duplicate name %s", entry.Name)
		}
		if other, exists := set.byOffset[entry.Offset]; exists {
			return nil, errors.Wrapf(ErrInvalidDirection, "%s repeats the offset of %s", entry.Name, other)
		}
		if other, exists := set.byValue[entry.Value]; exists {
			return nil, errors.Wrapf(ErrInvalidDirection, "%s repeats the value of %s", entry.Name, other)
		}

		set.ordered = append(set.ordered, entry)
		set.byName[entry.Name] = entry
		set.byOffset[entry.Offset] = entry.Name
		set.byValue[entry.Value] = entry.Name
	}

	return set, nil
}

// Resolve returns the offset for a direction name
func (s *Set) Resolve(name string) (Offset, error) {
	d, ok := s.byName[name]
	if !ok {
		return Offset{}, errors.Wrapf(ErrUnknownDirection, "%q", name)
	}
	return d.Offset, nil
}

// NameOf returns the name of the direction with the given offset
func (s *Set) NameOf(offset Offset) (string, error) {
	name, ok := s.byOffset[offset]
	if !ok {
		return "", errors.Wrapf(ErrUnknownDirection, "offset (%g, %g)", offset.DX, offset.DY)
	}
	return name, nil
}

// NameByValue returns the name of the direction with the given ordinal value
func (s *Set) NameByValue(value int) (string, error) {
	name, ok := s.byValue[value]
	if !ok {
		return "", errors.Wrapf(ErrUnknownDirection, "value %d", value)
	}
	return name, nil
}

// Directions returns the directions in the order they were declared
func (s *Set) Directions() []Direction {
	out := make([]Direction, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Names returns the direction names sorted alphabetically
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of directions in the set
func (s *Set) Len() int {
	return len(s.ordered)
}

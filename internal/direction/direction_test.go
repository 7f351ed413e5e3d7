package direction

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardinal_Resolve(t *testing.T) {
	set := Cardinal()

	tests := []struct {
		name string
		want Offset
	}{
		{name: Left, want: Offset{DX: -1}},
		{name: Up, want: Offset{DY: -1}},
		{name: Right, want: Offset{DX: 1}},
		{name: Down, want: Offset{DY: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := set.Resolve(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Reverse lookup returns the same name
			name, err := set.NameOf(got)
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestCardinal_UnknownName(t *testing.T) {
	_, err := Cardinal().Resolve("north")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDirection))
}

func TestCardinal_NameByValue(t *testing.T) {
	set := Cardinal()

	name, err := set.NameByValue(3)
	require.NoError(t, err)
	assert.Equal(t, Right, name)

	_, err = set.NameByValue(0)
	assert.True(t, errors.Is(err, ErrUnknownDirection))
}

func TestSet_NameOf_Unknown(t *testing.T) {
	_, err := Cardinal().NameOf(Offset{DX: 1, DY: 1})
	assert.True(t, errors.Is(err, ErrUnknownDirection))
}

func TestNew_Diagonals(t *testing.T) {
	set, err := New(
		Direction{Name: "north-east", Value: 1, Offset: Offset{DX: 1, DY: -1}},
		Direction{Name: "south-west", Value: 2, Offset: Offset{DX: -1, DY: 1}},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"north-east", "south-west"}, set.Names())

	offset, err := set.Resolve("south-west")
	require.NoError(t, err)
	assert.Equal(t, Offset{DX: -1, DY: 1}, offset)
}

func TestNew_RejectsConflicts(t *testing.T) {
	tests := []struct {
		name    string
		entries []Direction
	}{
		{name: "empty"},
		{name: "missing name", entries: []Direction{{Value: 1, Offset: Offset{DX: 1}}}},
		{name: "zero offset", entries: []Direction{{Name: "still", Value: 1}}},
		{
			name: "duplicate name",
			entries: []Direction{
				{Name: "a", Value: 1, Offset: Offset{DX: 1}},
				{Name: "a", Value: 2, Offset: Offset{DX: -1}},
			},
		},
		{
			name: "duplicate offset",
			entries: []Direction{
				{Name: "a", Value: 1, Offset: Offset{DX: 1}},
				{Name: "b", Value: 2, Offset: Offset{DX: 1}},
			},
		},
		{
			name: "duplicate value",
			entries: []Direction{
				{Name: "a", Value: 1, Offset: Offset{DX: 1}},
				{Name: "b", Value: 1, Offset: Offset{DX: -1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries...)
			assert.True(t, errors.Is(err, ErrInvalidDirection), "got %v", err)
		})
	}
}

func TestSet_Directions_PreservesDeclarationOrder(t *testing.T) {
	dirs := Cardinal().Directions()
	require.Len(t, dirs, 4)

	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.Name
	}
	assert.Equal(t, []string{Left, Up, Right, Down}, names)

	// Mutating the copy does not affect the set
	dirs[0].Name = "changed"
	assert.Equal(t, Left, Cardinal().Directions()[0].Name)
}

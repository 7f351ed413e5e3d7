package location

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_String(t *testing.T) {
	l := NewWeighted(5, 10, 17)

	assert.Equal(t, "5,10@17:", l.String())
	assert.Equal(t, "5,10:", l.PathString())
	assert.Equal(t, "2.5,-0.125@0:", New(2.5, -0.125).String())
}

func TestDecode_MultipleLocationsInOrder(t *testing.T) {
	got, err := Decode("5,10@17:7,11@21:")
	require.NoError(t, err)

	assert.Equal(t, []Location{
		{X: 5, Y: 10, W: 17},
		{X: 7, Y: 11, W: 21},
	}, got)
}

func TestDecode_MixedWeightedAndPlain(t *testing.T) {
	encoded := NewWeighted(5, 10, 17).PathString() + NewWeighted(7, 11, 21).String()

	got, err := Decode(encoded)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Location{X: 5, Y: 10, W: 0}, got[0])
	assert.Equal(t, Location{X: 7, Y: 11, W: 21}, got[1])
}

func TestDecode_RoundTrip(t *testing.T) {
	originals := []Location{
		NewWeighted(0, 0, 0),
		NewWeighted(10.0/3, -7.25, 1.5),
		NewWeighted(1e9, 1e-9, 123456.789),
	}

	for _, original := range originals {
		t.Run(original.String(), func(t *testing.T) {
			weighted, err := DecodeOne(original.String())
			require.NoError(t, err)
			assert.Equal(t, original, weighted)

			plain, err := DecodeOne(original.PathString())
			require.NoError(t, err)
			assert.Equal(t, original.X, plain.X)
			assert.Equal(t, original.Y, plain.Y)
			assert.Zero(t, plain.W, "weight-less encoding decodes with weight 0")
		})
	}
}

func TestDecode_WithoutTrailingSeparator(t *testing.T) {
	got, err := DecodeOne("3,4@2")
	require.NoError(t, err)
	assert.Equal(t, Location{X: 3, Y: 4, W: 2}, got)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []string{
		"",
		"abc,1:",
		"1,abc:",
		"1:",
		"1,2@heavy:",
		"1,2@-3:",
		"NaN,1:",
		"1,Inf:",
		"1,2:x,3:",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Decode(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedLocation), "got %v", err)
		})
	}
}

func TestDecodeOne_RejectsMultiple(t *testing.T) {
	_, err := DecodeOne("1,2:3,4:")
	assert.True(t, errors.Is(err, ErrMalformedLocation))
}

func TestDecodePath(t *testing.T) {
	path, err := DecodePath("0,0:5,0:10,0:")
	require.NoError(t, err)
	assert.Len(t, path, 3)
	assert.Equal(t, "0,0:5,0:10,0:", path.Signature())

	_, err = DecodePath("0,0:")
	assert.True(t, errors.Is(err, ErrMalformedLocation))
}

func TestPath_Signature_IgnoresWeights(t *testing.T) {
	a := Path{NewWeighted(0, 0, 1), NewWeighted(10, 0, 2)}
	b := Path{NewWeighted(0, 0, 9), NewWeighted(10, 0, 9)}
	c := Path{New(0, 0), New(5, 0), New(10, 0)}

	assert.Equal(t, a.Signature(), b.Signature())
	assert.NotEqual(t, a.Signature(), c.Signature())
	assert.NotEqual(t, a.String(), b.String())
}

func TestPath_Clone(t *testing.T) {
	p := Path{New(0, 0), New(1, 1)}
	c := p.Clone()
	c[0] = New(9, 9)

	assert.Equal(t, New(0, 0), p[0])
}

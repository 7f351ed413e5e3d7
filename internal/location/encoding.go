package location

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedLocation is returned when a serialized location cannot be parsed
var ErrMalformedLocation = errors.New("location: malformed location")

const (
	pointSeparator  = ":"
	coordSeparator  = ","
	weightSeparator = "@"
)

// Path is an ordered list of locations from a source to a destination
type Path []Location

// String serializes l including its weight, e.g. "5,10@17:"
func (l Location) String() string {
	return formatFloat(l.X) + coordSeparator + formatFloat(l.Y) + weightSeparator + formatFloat(l.W) + pointSeparator
}

// PathString serializes l without its weight, e.g. "5,10:"
func (l Location) PathString() string {
	return formatFloat(l.X) + coordSeparator + formatFloat(l.Y) + pointSeparator
}

// String serializes every location of the path including weights
func (p Path) String() string {
	var b strings.Builder
	for _, l := range p {
		b.WriteString(l.String())
	}
	return b.String()
}

// PathString serializes every location of the path without weights
func (p Path) PathString() string {
	var b strings.Builder
	for _, l := range p {
		b.WriteString(l.PathString())
	}
	return b.String()
}

// Signature identifies a path by its ordered coordinates. Weights are ignored,
// so two paths through the same points share a signature.
func (p Path) Signature() string {
	return p.PathString()
}

// Clone returns a copy of the path that does not share its backing array
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Decode parses one or more serialized locations, in the order they appear.
// A location serialized without a weight decodes with weight 0.
func Decode(serialized string) ([]Location, error) {
	parts := strings.Split(serialized, pointSeparator)
	// The terminating separator leaves an empty trailing part
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	locations := make([]Location, 0, len(parts))
	for _, part := range parts {
		l, err := decodeSingle(part)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}

	return locations, nil
}

// DecodeOne parses a string holding exactly one serialized location
func DecodeOne(serialized string) (Location, error) {
	locations, err := Decode(serialized)
	if err != nil {
		return Location{}, err
	}
	if len(locations) != 1 {
		return Location{}, errors.Wrapf(ErrMalformedLocation, "expected one location in %q, got %d", serialized, len(locations))
	}
	return locations[0], nil
}

// DecodePath parses a serialized path, which must hold at least two locations
func DecodePath(serialized string) (Path, error) {
	locations, err := Decode(serialized)
	if err != nil {
		return nil, err
	}
	if len(locations) < 2 {
		return nil, errors.Wrapf(ErrMalformedLocation, "path %q needs at least two locations", serialized)
	}
	return Path(locations), nil
}

func decodeSingle(single string) (Location, error) {
	single = strings.TrimSpace(single)

	coords, weightPart, hasWeight := strings.Cut(single, weightSeparator)
	xPart, yPart, ok := strings.Cut(coords, coordSeparator)
	if !ok {
		return Location{}, errors.Wrapf(ErrMalformedLocation, "missing %q in %q", coordSeparator, single)
	}

	x, err := parseFinite(xPart)
	if err != nil {
		return Location{}, errors.Wrapf(ErrMalformedLocation, "x coordinate %q", xPart)
	}
	y, err := parseFinite(yPart)
	if err != nil {
		return Location{}, errors.Wrapf(ErrMalformedLocation, "y coordinate %q", yPart)
	}

	if !hasWeight {
		return New(x, y), nil
	}

	w, err := parseFinite(weightPart)
	if err != nil || w < 0 {
		return Location{}, errors.Wrapf(ErrMalformedLocation, "weight %q", weightPart)
	}

	return Location{X: x, Y: y, W: w}, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("non-finite value %q", s)
	}
	return v, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package zone

import (
	"fmt"
	"strings"
)

// Kind is the closed set of zone types.
type Kind int

const (
	Wall Kind = iota
	Restricted
	Entrance
	Exit
)

var kindNames = [...]string{
	Wall:       "wall",
	Restricted: "restricted",
	Entrance:   "entrance",
	Exit:       "exit",
}

// Display colours used by callers when drawing zones.
var kindColors = [...]string{
	Wall:       "#000000",
	Restricted: "#00bcd4",
	Entrance:   "#f44336",
	Exit:       "#4caf50",
}

// Kinds returns every zone kind in declaration order.
func Kinds() []Kind { return []Kind{Wall, Restricted, Entrance, Exit} }

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k < Wall || k > Exit {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Color returns the display colour for the kind.
func (k Kind) Color() string {
	if k < Wall || k > Exit {
		return kindColors[Wall]
	}
	return kindColors[k]
}

// HasArea reports whether zones of this kind are closed polygons that
// remove floor area from placement.
func (k Kind) HasArea() bool {
	switch k {
	case Restricted, Entrance, Exit:
		return true
	case Wall:
		return false
	}
	return false
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return Wall, fmt.Errorf("unknown zone kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// EntityKind is the closed set of normalized CAD entity shapes.
type EntityKind int

const (
	Line EntityKind = iota
	Circle
	Polyline
	Arc
)

var entityKindNames = [...]string{
	Line:     "line",
	Circle:   "circle",
	Polyline: "polyline",
	Arc:      "arc",
}

// String returns the lowercase entity kind name.
func (k EntityKind) String() string {
	if k < Line || k > Arc {
		return fmt.Sprintf("entity(%d)", int(k))
	}
	return entityKindNames[k]
}

// ParseEntityKind parses an entity kind name. DXF type names such as
// "LWPOLYLINE" are accepted.
func ParseEntityKind(s string) (EntityKind, error) {
	switch strings.ToLower(s) {
	case "line":
		return Line, nil
	case "circle":
		return Circle, nil
	case "polyline", "lwpolyline":
		return Polyline, nil
	case "arc":
		return Arc, nil
	}
	return Line, fmt.Errorf("unknown entity kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k EntityKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EntityKind) UnmarshalText(b []byte) error {
	v, err := ParseEntityKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

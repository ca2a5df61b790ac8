package ocflkit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	Spec1_0 = Spec{1, 0}
	Spec1_1 = Spec{1, 1}

	ErrSpecInvalid = errors.New("invalid OCFL spec version")
)

// Spec is an OCFL specification version, e.g. 1.0 or 1.1.
type Spec [2]int

// ParseSpec parses v ("1.0", "1.1", ...) and sets the value referenced by n.
func ParseSpec(v string, n *Spec) error {
	major, minor, found := strings.Cut(v, ".")
	if !found || major == "" || minor == "" {
		return fmt.Errorf("%w: %q", ErrSpecInvalid, v)
	}
	if major[0] == '0' || (len(minor) > 1 && minor[0] == '0') {
		return fmt.Errorf("%w: %q", ErrSpecInvalid, v)
	}
	maj, err := strconv.Atoi(major)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrSpecInvalid, v)
	}
	min, err := strconv.Atoi(minor)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrSpecInvalid, v)
	}
	n[0], n[1] = maj, min
	return nil
}

// MustParseSpec parses v as a Spec and panics if it can't.
func MustParseSpec(v string) Spec {
	var n Spec
	if err := ParseSpec(v, &n); err != nil {
		panic(err)
	}
	return n
}

func (n Spec) String() string {
	return fmt.Sprintf("%d.%d", n[0], n[1])
}

// Empty returns true if n is the zero value.
func (n Spec) Empty() bool {
	return n == Spec{}
}

// Cmp compares n to other: -1 if n is older, 0 if equal, 1 if newer.
func (n Spec) Cmp(other Spec) int {
	if n[0] != other[0] {
		if n[0] < other[0] {
			return -1
		}
		return 1
	}
	if n[1] != other[1] {
		if n[1] < other[1] {
			return -1
		}
		return 1
	}
	return 0
}

func (n Spec) MarshalText() ([]byte, error) {
	if n.Empty() {
		return nil, ErrSpecInvalid
	}
	return []byte(n.String()), nil
}

func (n *Spec) UnmarshalText(text []byte) error {
	return ParseSpec(string(text), n)
}

const (
	invTypePrefix = "https://ocfl.io/"
	invTypeSuffix = "/spec/#inventory"
)

// InventoryType is the value of an inventory's `type` field, which encodes the
// OCFL spec version the inventory conforms to.
type InventoryType struct {
	Spec
}

func (t InventoryType) String() string {
	return invTypePrefix + t.Spec.String() + invTypeSuffix
}

func (t InventoryType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *InventoryType) UnmarshalText(text []byte) error {
	v := string(text)
	v, ok := strings.CutPrefix(v, invTypePrefix)
	if ok {
		v, ok = strings.CutSuffix(v, invTypeSuffix)
	}
	if !ok {
		return fmt.Errorf("%w: invalid inventory type: %q", ErrSpecInvalid, string(text))
	}
	return ParseSpec(v, &t.Spec)
}

package ocflkit

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/exp/slices"
)

var (
	ErrVNumInvalid = errors.New("invalid version directory name")
	ErrVNumPadding = errors.New("inconsistent version name padding")
	ErrVNumMissing = errors.New("missing version in sequence")
	ErrVNumEmpty   = errors.New("no versions found")

	// ErrVNumFormat indicates that a version naming format could not be
	// inferred from an object root's directory names.
	ErrVNumFormat = errors.New("version naming format can't be inferred")
)

// VNum is an OCFL version number: a positive sequence number (1,2,3...) plus
// the zero-padding used when formatting it as a directory name ("v1", "v012").
// Padding 0 means no padding; padding n means names have exactly n digits.
type VNum struct {
	num     int
	padding int
}

// V returns a VNum with sequence number num and padding p.
func V(num, p int) VNum {
	return VNum{num: num, padding: p}
}

// ParseVNum parses name ("v3", "v0042") and sets the value referenced by vn.
func ParseVNum(name string, vn *VNum) error {
	if len(name) < 2 || name[0] != 'v' {
		return fmt.Errorf("%q: %w", name, ErrVNumInvalid)
	}
	digits := name[1:]
	var nonzero bool
	for _, c := range []byte(digits) {
		if c < '0' || c > '9' {
			return fmt.Errorf("%q: %w", name, ErrVNumInvalid)
		}
		if c != '0' {
			nonzero = true
		}
	}
	if !nonzero {
		return fmt.Errorf("%q: %w", name, ErrVNumInvalid)
	}
	num, err := strconv.Atoi(digits)
	if err != nil {
		return fmt.Errorf("%q: %w", name, ErrVNumInvalid)
	}
	vn.num = num
	vn.padding = 0
	if digits[0] == '0' {
		vn.padding = len(digits)
	}
	return nil
}

// MustParseVNum parses name as a VNum, panicking on error.
func MustParseVNum(name string) VNum {
	var v VNum
	if err := ParseVNum(name, &v); err != nil {
		panic(err)
	}
	return v
}

// Num returns v's sequence number.
func (v VNum) Num() int { return v.num }

// Padding returns v's padding.
func (v VNum) Padding() int { return v.padding }

// IsZero reports whether v is the zero value.
func (v VNum) IsZero() bool { return v == VNum{} }

// First reports whether v is version 1.
func (v VNum) First() bool { return v.num == 1 }

// String formats v as a version directory name using its padding.
func (v VNum) String() string {
	return fmt.Sprintf(fmt.Sprintf("v%%0%dd", v.padding), v.num)
}

// Valid returns an error if v's sequence number is not positive or overflows
// its padding.
func (v VNum) Valid() error {
	if v.num <= 0 || v.overflows() {
		return fmt.Errorf("%w: num=%d, padding=%d", ErrVNumInvalid, v.num, v.padding)
	}
	return nil
}

// Next returns the version after v with the same padding. An error is
// returned if the next number would overflow the padding.
func (v VNum) Next() (VNum, error) {
	next := VNum{num: v.num + 1, padding: v.padding}
	if next.overflows() {
		return VNum{}, fmt.Errorf("next version overflows padding: %w", ErrVNumInvalid)
	}
	return next, nil
}

// Prev returns the version before v with the same padding. An error is
// returned if v is version 1.
func (v VNum) Prev() (VNum, error) {
	if v.num <= 1 {
		return VNum{}, errors.New("no version before v1")
	}
	return VNum{num: v.num - 1, padding: v.padding}, nil
}

// Lineage returns all versions from 1 through v, with v's padding.
func (v VNum) Lineage() VNums {
	nums := make(VNums, v.num)
	for i := range nums {
		nums[i] = VNum{num: i + 1, padding: v.padding}
	}
	return nums
}

func (v VNum) overflows() bool {
	return v.padding > 0 && v.num >= int(math.Pow10(v.padding-1))
}

func (v VNum) MarshalText() ([]byte, error) {
	if err := v.Valid(); err != nil {
		return nil, err
	}
	return []byte(v.String()), nil
}

func (v *VNum) UnmarshalText(text []byte) error {
	return ParseVNum(string(text), v)
}

// VNums is a sequence of version numbers.
type VNums []VNum

// Valid returns a non-nil error if vs is empty, is not the contiguous
// sequence 1..len(vs), or has inconsistent padding.
func (vs VNums) Valid() error {
	if len(vs) == 0 {
		return ErrVNumEmpty
	}
	vs.Sort()
	padding := vs[0].padding
	for i, v := range vs {
		if v.num != i+1 {
			return fmt.Errorf("%w: %s", ErrVNumMissing, V(i+1, padding))
		}
		if v.padding != padding {
			return ErrVNumPadding
		}
	}
	return vs.Head().Valid()
}

// Sort sorts vs by sequence number.
func (vs VNums) Sort() {
	slices.SortFunc(vs, func(a, b VNum) bool { return a.num < b.num })
}

// Head returns the highest version in vs, or the zero value if vs is empty.
func (vs VNums) Head() VNum {
	if len(vs) == 0 {
		return VNum{}
	}
	return vs[len(vs)-1]
}

// Padding returns the padding shared by the versions in vs.
func (vs VNums) Padding() int {
	if len(vs) == 0 {
		return 0
	}
	return vs[0].padding
}

// InferPadding determines an object's version naming format from directory
// names found in its root. Candidate names are sorted lexically and the first
// determines the padding: one digit means unpadded, n digits starting with a
// zero mean zero-padded width n. The first candidate must be version 1;
// otherwise ErrVNumFormat is returned.
func InferPadding(names []string) (int, error) {
	var candidates []string
	for _, name := range names {
		var v VNum
		if ParseVNum(name, &v) == nil {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return 0, fmt.Errorf("%w: no version directories", ErrVNumFormat)
	}
	slices.Sort(candidates)
	first := MustParseVNum(candidates[0])
	if !first.First() {
		return 0, fmt.Errorf("%w: first version directory is %q, not version 1", ErrVNumFormat, candidates[0])
	}
	return first.padding, nil
}

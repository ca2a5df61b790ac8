package ocflkit

import (
	"testing"
)

func TestParseVNum(t *testing.T) {
	for _, n := range []string{"", "v0", "v00", "v", "1", "v.10", "v3.0", "vv1", "asdf"} {
		var v VNum
		if err := ParseVNum(n, &v); err == nil {
			t.Errorf("parsing %q did not fail as expected", n)
		}
	}
	testVals := map[string][2]int{
		"v1":       {1, 0},
		"v100":     {100, 0},
		"v0000010": {10, 7},
		"v031":     {31, 3},
	}
	for name, want := range testVals {
		var v VNum
		if err := ParseVNum(name, &v); err != nil {
			t.Error(err)
		}
		if v.Num() != want[0] {
			t.Errorf("expected %q to parse to %d, got %d", name, want[0], v.Num())
		}
		if v.Padding() != want[1] {
			t.Errorf("expected %q to parse with padding %d, got %d", name, want[1], v.Padding())
		}
	}
}

func TestVNumString(t *testing.T) {
	if s := V(2, 4).String(); s != "v0002" {
		t.Errorf("expected v0002, got %s", s)
	}
	if s := V(10, 0).String(); s != "v10" {
		t.Errorf("expected v10, got %s", s)
	}
}

func TestVNumsSort(t *testing.T) {
	vs := VNums{V(3, 0), V(10, 0), V(1, 0), V(2, 0)}
	vs.Sort()
	for i, v := range []int{1, 2, 3, 10} {
		if vs[i].Num() != v {
			t.Fatalf("expected %v in ascending order", vs)
		}
	}
	if vs.Head().Num() != 10 {
		t.Errorf("expected head v10, got %s", vs.Head())
	}
}

func TestVNumsValid(t *testing.T) {
	p := MustParseVNum
	valid := []VNums{
		{p("v1")},
		{p("v1"), p("v2"), p("v3"), p("v4"), p("v5")},
		{p("v001"), p("v002"), p("v003")},
	}
	for _, seq := range valid {
		if err := seq.Valid(); err != nil {
			t.Error(err)
		}
	}
	invalid := []VNums{
		{},
		{p("v2")},
		{p("v1"), p("v3"), p("v4")},
		{p("v1"), p("v02")},
		{p("v01"), p("v02"), p("v03"), p("v04"), p("v05"), p("v06"), p("v07"), p("v08"), p("v09"), p("v10")},
	}
	for _, seq := range invalid {
		if err := seq.Valid(); err == nil {
			t.Errorf("expected %v to be invalid", seq)
		}
	}
}

func TestInferPadding(t *testing.T) {
	// a 4-digit first version means a 4-digit format
	padding, err := InferPadding([]string{"v0001", "v0002", "logs"})
	if err != nil {
		t.Fatal(err)
	}
	if padding != 4 {
		t.Errorf("expected padding 4, got %d", padding)
	}
	if name := V(2, padding).String(); name != "v0002" {
		t.Errorf("expected generated name v0002, got %s", name)
	}
	// unpadded
	padding, err = InferPadding([]string{"v1", "v2", "v10"})
	if err != nil {
		t.Fatal(err)
	}
	if padding != 0 {
		t.Errorf("expected padding 0, got %d", padding)
	}
	// no version directories
	if _, err = InferPadding([]string{"logs", "extensions"}); err == nil {
		t.Error("expected inference to fail with no version directories")
	}
	// first version is not 1
	if _, err = InferPadding([]string{"v2", "v3"}); err == nil {
		t.Error("expected inference to fail when first version isn't v1")
	}
}

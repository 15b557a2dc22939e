package particle

import (
	"testing"

	"gopkg.in/yaml.v3"
)

// TestParseRange_FixedValue tests parsing of fixed value format
func TestParseRange_FixedValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"Integer", "1500", 1500},
		{"Float", "3.14", 3.14},
		{"Negative", "-10.5", -10.5},
		{"Zero", "0", 0},
		{"Bracketed single", "[0.5]", 0.5},
		{"Surrounding spaces", "  42 ", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.input)
			if err != nil {
				t.Fatalf("ParseRange(%q) error: %v", tt.input, err)
			}
			if r.Min != tt.want || r.Max != tt.want {
				t.Errorf("ParseRange(%q) = %v, want fixed %v", tt.input, r, tt.want)
			}
		})
	}
}

// TestParseRange_Range tests parsing of range format
func TestParseRange_Range(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin float64
		wantMax float64
	}{
		{"Float range", "[0.7 0.9]", 0.7, 0.9},
		{"Integer range", "[190 270]", 190, 270},
		{"Negative range", "[-5 -2]", -5, -2},
		{"Mixed range", "[-1.5 2.5]", -1.5, 2.5},
		{"Extra spaces", "[ 0.95   1.05 ]", 0.95, 1.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.input)
			if err != nil {
				t.Fatalf("ParseRange(%q) error: %v", tt.input, err)
			}
			if r.Min != tt.wantMin {
				t.Errorf("ParseRange(%q) min = %v, want %v", tt.input, r.Min, tt.wantMin)
			}
			if r.Max != tt.wantMax {
				t.Errorf("ParseRange(%q) max = %v, want %v", tt.input, r.Max, tt.wantMax)
			}
		})
	}
}

// TestParseRange_Invalid tests that malformed values are rejected
func TestParseRange_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"abc",
		"[1 2",
		"1 2]",
		"[1 2 3]",
		"[]",
		"[x 1]",
		"[1 y]",
		"[5 1]",
	}

	for _, input := range inputs {
		if _, err := ParseRange(input); err == nil {
			t.Errorf("ParseRange(%q) expected error, got nil", input)
		}
	}
}

// TestRange_Sample tests sampling against a deterministic source
func TestRange_Sample(t *testing.T) {
	src := NewSequenceSource(0, 0.5, 0.25)
	r := Range{Min: 190, Max: 270}

	want := []float64{190, 230, 210}
	for i, w := range want {
		if got := r.Sample(src); got != w {
			t.Errorf("sample %d = %v, want %v", i, got, w)
		}
	}
}

// TestRange_SampleFixedDoesNotConsume tests that fixed ranges leave the source untouched
func TestRange_SampleFixedDoesNotConsume(t *testing.T) {
	src := NewSequenceSource(0.9)
	if got := Fixed(3).Sample(src); got != 3 {
		t.Errorf("Fixed(3).Sample = %v, want 3", got)
	}
	if src.Calls() != 0 {
		t.Errorf("fixed range consumed %d values, want 0", src.Calls())
	}
}

// TestRange_String tests round-tripping through the configuration syntax
func TestRange_String(t *testing.T) {
	tests := []struct {
		r    Range
		want string
	}{
		{Fixed(80), "80"},
		{Range{Min: 0.95, Max: 1.05}, "[0.95 1.05]"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		parsed, err := ParseRange(tt.r.String())
		if err != nil || parsed != tt.r {
			t.Errorf("ParseRange(%q) = %v, %v; want %v", tt.r.String(), parsed, err, tt.r)
		}
	}
}

// TestRange_UnmarshalYAML tests decoding ranges embedded in YAML documents
func TestRange_UnmarshalYAML(t *testing.T) {
	var doc struct {
		Hue     Range `yaml:"hue"`
		Opacity Range `yaml:"opacity"`
		Count   Range `yaml:"count"`
	}
	input := `
hue: "[190 270]"
opacity: "[0.4 1]"
count: 80
`
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("yaml.Unmarshal error: %v", err)
	}
	if doc.Hue != (Range{Min: 190, Max: 270}) {
		t.Errorf("hue = %v", doc.Hue)
	}
	if doc.Opacity != (Range{Min: 0.4, Max: 1}) {
		t.Errorf("opacity = %v", doc.Opacity)
	}
	if doc.Count != Fixed(80) {
		t.Errorf("count = %v", doc.Count)
	}
}

// TestRange_UnmarshalYAMLRejectsSequence tests that list syntax is not accepted
func TestRange_UnmarshalYAMLRejectsSequence(t *testing.T) {
	var doc struct {
		Hue Range `yaml:"hue"`
	}
	if err := yaml.Unmarshal([]byte("hue: [190, 270]\n"), &doc); err == nil {
		t.Error("expected error for YAML sequence, got nil")
	}
}

package errors

import (
	"slices"
	"testing"
)

func TestDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil", nil, nil},
		{"unique", []string{"a", "b", "c"}, nil},
		{"one pair", []string{"a", "a"}, []string{"a"}},
		{"reported once", []string{"a", "a", "a", "b"}, []string{"a"}},
		{"order of second occurrence", []string{"x", "y", "y", "x"}, []string{"y", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duplicates(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("Duplicates(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateNames(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		n       int
		wantErr bool
	}{
		{"nil is unnamed", nil, 3, false},
		{"matching", []string{"a", "b"}, 2, false},
		{"empty axis", []string{}, 0, false},
		{"too short", []string{"a"}, 2, true},
		{"too long", []string{"a", "b", "c"}, 2, true},
		{"duplicates", []string{"a", "a"}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNames("row", tt.names, tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNames(%v, %d) error = %v, wantErr %v", tt.names, tt.n, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "layout", false},
		{"with dots", "panel.1", false},
		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTableName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTableName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "tables/a.toml", false},
		{"absolute", "/tmp/a.toml", false},
		{"empty", "", true},
		{"null byte", "a\x00b", true},
		{"too long", string(make([]byte, 600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

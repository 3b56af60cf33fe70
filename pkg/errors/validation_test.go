package errors

import (
	"math"
	"testing"
)

func TestValidatePercentages(t *testing.T) {
	tests := []struct {
		name    string
		input   []float64
		wantErr bool
	}{
		{"single band", []float64{100}, false},
		{"three bands", []float64{40, 35, 25}, false},
		{"within tolerance", []float64{33.3, 33.3, 33.3}, false},
		{"sums to 60", []float64{30, 30}, true},
		{"over 100", []float64{60, 50}, true},
		{"negative", []float64{120, -20}, true},
		{"nan", []float64{math.NaN(), 100}, true},
		{"empty", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePercentages(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePercentages(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !IsConfiguration(err) {
				t.Errorf("expected CONFIGURATION code, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateCorridorWidth(t *testing.T) {
	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := ValidateCorridorWidth(w); !IsConfiguration(err) {
			t.Errorf("ValidateCorridorWidth(%v) = %v, want configuration error", w, err)
		}
	}
	if err := ValidateCorridorWidth(1.5); err != nil {
		t.Errorf("ValidateCorridorWidth(1.5) = %v", err)
	}
}

func TestValidateFloor(t *testing.T) {
	if err := ValidateFloor(20, 10); err != nil {
		t.Errorf("valid floor rejected: %v", err)
	}
	if err := ValidateFloor(0, 10); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("zero width accepted: %v", err)
	}
	if err := ValidateFloor(10, -1); err == nil {
		t.Error("negative height accepted")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"plan.json", false},
		{"plans/floor-2.json", false},
		{"", true},
		{".", true},
		{"foo\x00bar", true},
	}
	for _, tt := range tests {
		if err := ValidatePath(tt.path); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

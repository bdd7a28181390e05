package sim

import (
	"errors"
	"testing"
)

func TestNewUnitInterval(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{name: "zero", value: 0},
		{name: "one", value: 1},
		{name: "half", value: 0.5},
		{name: "below range", value: -0.01, wantErr: true},
		{name: "above range", value: 1.01, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewUnitInterval(tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrUnitIntervalRange) {
					t.Fatalf("expected ErrUnitIntervalRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("new unit interval: %v", err)
			}
			if got.Float64() != tt.value {
				t.Fatalf("expected %v, got %v", tt.value, got.Float64())
			}
		})
	}
}

func TestNewSignedUnit(t *testing.T) {
	if _, err := NewSignedUnit(-1); err != nil {
		t.Fatalf("expected -1 to be valid: %v", err)
	}
	if _, err := NewSignedUnit(1.5); !errors.Is(err, ErrSignedUnitRange) {
		t.Fatalf("expected ErrSignedUnitRange, got %v", err)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name            string
		v, low, high    float64
		want            float64
	}{
		{name: "within", v: 5, low: 0, high: 10, want: 5},
		{name: "below", v: -3, low: 0, high: 10, want: 0},
		{name: "above", v: 12, low: 0, high: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.low, tt.high); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		magnitude float64
		want      Severity
	}{
		{magnitude: -0.5, want: SeverityNone},
		{magnitude: 0, want: SeverityNone},
		{magnitude: 0.1, want: SeverityMild},
		{magnitude: 0.3, want: SeverityModerate},
		{magnitude: 0.6, want: SeveritySevere},
		{magnitude: 0.9, want: SeverityCritical},
		{magnitude: 1.5, want: SeverityCritical},
	}

	for _, tt := range tests {
		if got := SeverityOf(tt.magnitude); got != tt.want {
			t.Fatalf("severity of %v: expected %s, got %s", tt.magnitude, tt.want, got)
		}
	}
}

func TestTickSince(t *testing.T) {
	if d := Tick(10).Since(4); d != 6 {
		t.Fatalf("expected 6 ticks, got %d", d)
	}
	if d := Tick(4).Since(10); d != 0 {
		t.Fatalf("expected 0 ticks for future origin, got %d", d)
	}
}

package units

import (
	"errors"
	"math"
	"testing"
)

func TestConvert_Linear(t *testing.T) {
	tests := []struct {
		category Category
		value    float64
		from, to string
		want     float64
	}{
		{CategoryLength, 1, "km", "m", 1000},
		{CategoryLength, 100, "km", "mi", 62.137119},
		{CategoryLength, 12, "in", "ft", 1},
		{CategoryWeight, 1, "kg", "g", 1000},
		{CategoryWeight, 1, "lb", "oz", 16},
		{CategoryData, 1, "gb", "mb", 1024},
		{CategoryData, 2048, "kb", "mb", 2},
		{CategoryTime, 90, "min", "h", 1.5},
		{CategoryTime, 1, "week", "day", 7},
		{CategoryArea, 1, "ha", "m2", 10000},
	}

	for _, tt := range tests {
		got, err := Convert(tt.category, tt.value, tt.from, tt.to)
		if err != nil {
			t.Errorf("Convert(%s, %v, %s, %s) failed: %v", tt.category, tt.value, tt.from, tt.to, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-4 {
			t.Errorf("Convert(%s, %v, %s, %s) = %v, want %v", tt.category, tt.value, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestConvert_Temperature(t *testing.T) {
	tests := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{100, "c", "f", 212},
		{32, "f", "c", 0},
		{0, "c", "k", 273.15},
		{300, "k", "c", 26.85},
		{98.6, "f", "k", 310.15},
		{25, "c", "c", 25},
	}

	for _, tt := range tests {
		got, err := Convert(CategoryTemperature, tt.value, tt.from, tt.to)
		if err != nil {
			t.Errorf("Convert(temp, %v, %s, %s) failed: %v", tt.value, tt.from, tt.to, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Convert(temp, %v, %s, %s) = %v, want %v", tt.value, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestConvert_CaseInsensitive(t *testing.T) {
	got, err := Convert(CategoryLength, 1, "KM", "M")
	if err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}
	if got != 1000 {
		t.Errorf("Convert() = %v, want 1000", got)
	}
}

func TestConvert_UnknownUnit(t *testing.T) {
	_, err := Convert(CategoryLength, 1, "furlong", "m")
	if err == nil {
		t.Fatal("Convert() succeeded, want error")
	}

	var unknownErr *UnknownUnitError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error = %T, want *UnknownUnitError", err)
	}
	if unknownErr.Unit != "furlong" {
		t.Errorf("Unit = %q, want %q", unknownErr.Unit, "furlong")
	}
	if len(unknownErr.Supported) == 0 {
		t.Error("Supported list is empty")
	}
}

func TestConvert_UnknownCategory(t *testing.T) {
	if _, err := Convert(Category("volume"), 1, "l", "ml"); err == nil {
		t.Error("Convert() with unknown category succeeded")
	}
}

func TestUnits_Sorted(t *testing.T) {
	units := Units(CategoryTime)
	if len(units) != 7 {
		t.Fatalf("len(Units(time)) = %d, want 7", len(units))
	}
	for i := 1; i < len(units); i++ {
		if units[i-1] >= units[i] {
			t.Errorf("Units(time) not sorted: %v", units)
			break
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, category := range []Category{CategoryLength, CategoryWeight, CategoryData} {
		units := Units(category)
		from, to := units[0], units[len(units)-1]

		out, err := Convert(category, 123.456, from, to)
		if err != nil {
			t.Fatalf("Convert() failed: %v", err)
		}
		back, err := Convert(category, out, to, from)
		if err != nil {
			t.Fatalf("Convert() failed: %v", err)
		}
		if math.Abs(back-123.456) > 1e-9*123.456 {
			t.Errorf("round trip %s→%s→%s = %v, want 123.456", from, to, from, back)
		}
	}
}

package services

import "testing"

func TestFormatCurrency_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "R$ 0,00"},
		{"small integer", 5, "R$ 5,00"},
		{"with decimals", 42.5, "R$ 42,50"},
		{"hundreds", 999.99, "R$ 999,99"},
		{"thousands", 1234.56, "R$ 1.234,56"},
		{"millions", 1234567.89, "R$ 1.234.567,89"},
		{"negative", -10, "-R$ 10,00"},
		{"negative thousands", -2500.5, "-R$ 2.500,50"},
		{"rounds half up", 1.005, "R$ 1,01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCurrency(tt.input)
			if got != tt.expect {
				t.Errorf("FormatCurrency(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatCurrency_Idempotent(t *testing.T) {
	for _, x := range []float64{0, 1.005, 2.675, 1234.5678, -0.125, 99.999} {
		if a, b := FormatCurrency(Round2(x)), FormatCurrency(x); a != b {
			t.Errorf("FormatCurrency(Round2(%v)) = %q, FormatCurrency(%v) = %q", x, a, x, b)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(85); got != "85,0%" {
		t.Errorf("FormatPercent(85) = %q", got)
	}
	if got := FormatPercent(-12.34); got != "-12,3%" {
		t.Errorf("FormatPercent(-12.34) = %q", got)
	}
}

package services

import (
	"testing"
)

func TestUnitOptions(t *testing.T) {
	if len(UnitOptions) == 0 {
		t.Fatal("UnitOptions should not be empty")
	}

	expected := map[string]bool{"un": true, "m": true, "kg": true, "L": true}
	found := make(map[string]bool)
	for _, opt := range UnitOptions {
		if opt == "" {
			t.Error("UnitOptions contains empty string")
		}
		if found[opt] {
			t.Errorf("duplicate unit option %q", opt)
		}
		found[opt] = true
	}
	for k := range expected {
		if !found[k] {
			t.Errorf("expected unit option %q not found", k)
		}
	}
}

func TestDiscountModeOptions(t *testing.T) {
	if len(DiscountModeOptions) != 2 || DiscountModeOptions[0] != DiscountPercent {
		t.Errorf("DiscountModeOptions = %v", DiscountModeOptions)
	}
}

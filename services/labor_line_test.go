package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLaborLine_DefaultMinutes(t *testing.T) {
	l := NewLaborLine("")
	assert.Equal(t, 60, l.Minutes)
	assert.Zero(t, l.TotalCost())
}

func TestLaborLine_TotalCost(t *testing.T) {
	tests := []struct {
		name    string
		minutes any
		rate    any
		expect  float64
	}{
		{"one hour", 60, 50, 50},
		{"half hour", 30, 50, 25},
		{"ninety minutes", "90", "40", 60},
		{"zero rate", 45, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLaborLine("")
			require.NoError(t, l.SetField(LaborMinutes, tt.minutes))
			require.NoError(t, l.SetField(LaborHourlyRate, tt.rate))
			if got := l.TotalCost(); got != tt.expect {
				t.Errorf("TotalCost() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestLaborLine_MinutesMustBeWholeAndPositive(t *testing.T) {
	for _, v := range []any{0, -15, 12.5, "1.5", "x"} {
		l := NewLaborLine("")
		err := l.SetField(LaborMinutes, v)
		assert.ErrorIs(t, err, ErrInvalidValue, "minutes %v", v)
		assert.Equal(t, DefaultLaborMinutes, l.Minutes)
	}
}

func TestLaborLine_ApplyStaffSelectionKeepsMinutes(t *testing.T) {
	l := NewLaborLine("")
	require.NoError(t, l.SetField(LaborMinutes, 120))

	l.ApplyStaffSelection(StaffRecord{ID: "staff_ana", Name: "Ana", HourlyRate: 50})

	assert.Equal(t, 120, l.Minutes)
	assert.Equal(t, "Ana", l.Name)
	assert.Equal(t, "staff_ana", l.StaffRef)
	assert.Equal(t, 100.0, l.TotalCost())
}

package services

import (
	"testing"
	"time"
)

func TestGeneratePDF_ServiceOrder(t *testing.T) {
	data := BuildExportData(sampleOrder(t), time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGeneratePDF_EmptyOrder(t *testing.T) {
	data := BuildExportData(NewOrder("", DeductionsCountAsCost), time.Now())

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes for empty order")
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		input  float64
		expect string
	}{
		{3, "3"},
		{0, "0"},
		{1.5, "1,50"},
		{2.25, "2,25"},
	}
	for _, tt := range tests {
		if got := formatQty(tt.input); got != tt.expect {
			t.Errorf("formatQty(%v) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}

package services

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestGenerateExcel_ServiceOrder(t *testing.T) {
	data := BuildExportData(sampleOrder(t), time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "OS-2026-0001" {
		t.Fatalf("expected sheet name 'OS-2026-0001', got %v", sheets)
	}

	title, _ := f.GetCellValue(sheets[0], "A1")
	if title != "Outlets" {
		t.Errorf("expected title 'Outlets', got %q", title)
	}

	desc, _ := f.GetCellValue(sheets[0], "B6")
	if desc != "Install outlet" {
		t.Errorf("expected first item 'Install outlet', got %q", desc)
	}

	// 2 items + 2 materials + 1 labor line, then a blank row before the summary.
	label, _ := f.GetCellValue(sheets[0], "E12")
	if label != "Subtotal:" {
		t.Errorf("expected summary label at E12, got %q", label)
	}
}

func TestGenerateExcel_EmptyOrder(t *testing.T) {
	data := BuildExportData(NewOrder("", DeductionsCountAsCost), time.Now())

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); sheets[0] != "Service Order" {
		t.Errorf("expected fallback sheet name, got %v", sheets)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1", "'+1"},
		{"-5", "'-5"},
		{"@cmd", "'@cmd"},
		{"normal", "normal"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.input); got != tt.expect {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}

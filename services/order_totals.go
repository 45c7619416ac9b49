package services

import (
	"encoding/json"
	"fmt"
)

// DiscountMode selects which discount value is active.
type DiscountMode string

const (
	DiscountPercent  DiscountMode = "percent"
	DiscountAbsolute DiscountMode = "absolute"
)

// Discount holds exactly one active value. Setting one mode zeroes the other.
// The zero value is a 0% percent discount.
type Discount struct {
	mode     DiscountMode
	percent  float64
	absolute float64
}

func (d Discount) Mode() DiscountMode {
	if d.mode == "" {
		return DiscountPercent
	}
	return d.mode
}

func (d Discount) Percent() float64  { return d.percent }
func (d Discount) Absolute() float64 { return d.absolute }

// Value is the value of the active mode.
func (d Discount) Value() float64 {
	if d.Mode() == DiscountAbsolute {
		return d.absolute
	}
	return d.percent
}

// SetPercent switches to percent mode. v must be within [0, 100].
func (d *Discount) SetPercent(v float64) error {
	if !isFinite(v) || v < 0 || v > 100 {
		return fmt.Errorf("discount percent: %w: %v outside 0..100", ErrInvalidValue, v)
	}
	d.mode = DiscountPercent
	d.percent = v
	d.absolute = 0
	return nil
}

// SetAbsolute switches to absolute mode. v must be zero or positive.
func (d *Discount) SetAbsolute(v float64) error {
	if !inRange(v) || v < 0 {
		return fmt.Errorf("discount absolute: %w: %v", ErrInvalidValue, v)
	}
	d.mode = DiscountAbsolute
	d.absolute = v
	d.percent = 0
	return nil
}

// Set applies v in the given mode.
func (d *Discount) Set(mode DiscountMode, v float64) error {
	switch mode {
	case DiscountPercent, "":
		return d.SetPercent(v)
	case DiscountAbsolute:
		return d.SetAbsolute(v)
	}
	return fmt.Errorf("discount mode %q: %w", mode, ErrInvalidValue)
}

// Amount is the currency amount taken off subtotal.
func (d Discount) Amount(subtotal float64) float64 {
	if d.Mode() == DiscountAbsolute {
		return d.absolute
	}
	return subtotal * d.percent / 100
}

type discountJSON struct {
	Mode     DiscountMode `json:"mode"`
	Percent  float64      `json:"percent"`
	Absolute float64      `json:"absolute"`
}

func (d Discount) MarshalJSON() ([]byte, error) {
	return json.Marshal(discountJSON{Mode: d.Mode(), Percent: d.percent, Absolute: d.absolute})
}

// UnmarshalJSON re-applies the active mode, so a payload carrying both values
// keeps only the one its mode selects.
func (d *Discount) UnmarshalJSON(data []byte) error {
	var raw discountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var next Discount
	var err error
	switch raw.Mode {
	case DiscountPercent, "":
		err = next.SetPercent(raw.Percent)
	case DiscountAbsolute:
		err = next.SetAbsolute(raw.Absolute)
	default:
		err = fmt.Errorf("discount mode %q: %w", raw.Mode, ErrInvalidPayload)
	}
	if err != nil {
		return err
	}
	*d = next
	return nil
}

// ExpenseField names one of the additional expense fields.
type ExpenseField string

const (
	ExpenseTravel           ExpenseField = "travel"
	ExpenseParking          ExpenseField = "parking"
	ExpenseToll             ExpenseField = "toll"
	ExpenseOther            ExpenseField = "other"
	ExpenseOtherDescription ExpenseField = "other_description"
)

// AdditionalExpenses are order level costs deducted from the payable total.
type AdditionalExpenses struct {
	Travel           float64 `json:"travel"`
	Parking          float64 `json:"parking"`
	Toll             float64 `json:"toll"`
	Other            float64 `json:"other"`
	OtherDescription string  `json:"otherDescription"`
}

func (e AdditionalExpenses) Sum() float64 {
	return e.Travel + e.Parking + e.Toll + e.Other
}

func (e *AdditionalExpenses) SetField(field ExpenseField, value any) error {
	if field == ExpenseOtherDescription {
		s, err := parseText(value)
		if err != nil {
			return fmt.Errorf("expense description: %w", err)
		}
		e.OtherDescription = s
		return nil
	}

	var target *float64
	switch field {
	case ExpenseTravel:
		target = &e.Travel
	case ExpenseParking:
		target = &e.Parking
	case ExpenseToll:
		target = &e.Toll
	case ExpenseOther:
		target = &e.Other
	default:
		return fmt.Errorf("expense %q: %w", field, ErrUnknownField)
	}
	v, err := parseNonNegative(value)
	if err != nil {
		return fmt.Errorf("expense %s: %w", field, err)
	}
	*target = v
	return nil
}

// DeductionPolicy decides whether additional expenses count as cost when
// computing profit and margin.
type DeductionPolicy string

const (
	// DeductionsCountAsCost adds expenses to total cost. This is the default.
	DeductionsCountAsCost DeductionPolicy = "cost"
	// DeductionsExcludedFromCost keeps total cost to materials and labor.
	DeductionsExcludedFromCost DeductionPolicy = "exclude"
)

// ParseDeductionPolicy maps a config value to a policy. Empty selects the default.
func ParseDeductionPolicy(s string) (DeductionPolicy, error) {
	switch DeductionPolicy(s) {
	case "", DeductionsCountAsCost:
		return DeductionsCountAsCost, nil
	case DeductionsExcludedFromCost:
		return DeductionsExcludedFromCost, nil
	}
	return "", fmt.Errorf("unknown deduction policy %q", s)
}

// Totals are the order level aggregates. Every field is derived.
type Totals struct {
	Subtotal          float64 `json:"subtotal"`
	DiscountAmount    float64 `json:"discountAmount"`
	Deductions        float64 `json:"deductions"`
	PayableTotal      float64 `json:"payableTotal"`
	TotalMaterialCost float64 `json:"totalMaterialCost"`
	TotalLaborCost    float64 `json:"totalLaborCost"`
	TotalCost         float64 `json:"totalCost"`
	TotalProfit       float64 `json:"totalProfit"`
	TotalMargin       float64 `json:"totalMargin"`
}

// Rounded returns a copy with every amount passed through Round2.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:          Round2(t.Subtotal),
		DiscountAmount:    Round2(t.DiscountAmount),
		Deductions:        Round2(t.Deductions),
		PayableTotal:      Round2(t.PayableTotal),
		TotalMaterialCost: Round2(t.TotalMaterialCost),
		TotalLaborCost:    Round2(t.TotalLaborCost),
		TotalCost:         Round2(t.TotalCost),
		TotalProfit:       Round2(t.TotalProfit),
		TotalMargin:       Round2(t.TotalMargin),
	}
}

// RecomputeTotals folds the item aggregates into order totals. It has no side
// effects and returns identical values for identical input. Payable total and
// profit are not clamped; a negative value is reported as such.
func RecomputeTotals(items []*ServiceItem, discount Discount, expenses AdditionalExpenses, policy DeductionPolicy) Totals {
	var t Totals
	for _, it := range items {
		t.Subtotal += it.LineTotal()
		t.TotalMaterialCost += it.MaterialCost()
		t.TotalLaborCost += it.LaborCost()
	}
	t.DiscountAmount = discount.Amount(t.Subtotal)
	t.Deductions = expenses.Sum()
	t.PayableTotal = t.Subtotal - t.Deductions - t.DiscountAmount

	t.TotalCost = t.TotalMaterialCost + t.TotalLaborCost
	if policy != DeductionsExcludedFromCost {
		t.TotalCost += t.Deductions
	}
	t.TotalProfit = t.PayableTotal - t.TotalCost
	if t.PayableTotal > 0 {
		t.TotalMargin = Percent(t.TotalProfit, t.PayableTotal)
	}
	return t
}

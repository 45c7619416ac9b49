package services

import "fmt"

// LaborField names a stored, user-editable field of a LaborLine.
type LaborField string

const (
	LaborName       LaborField = "name"
	LaborMinutes    LaborField = "minutes"
	LaborHourlyRate LaborField = "hourly_rate"
)

// DefaultLaborMinutes is the duration of a freshly added labor line.
const DefaultLaborMinutes = 60

// LaborLine is staff time spent on a service item.
type LaborLine struct {
	ID         string
	StaffRef   string
	Name       string
	Minutes    int
	HourlyRate float64

	totalCost float64
}

func NewLaborLine(staffRef string) *LaborLine {
	l := &LaborLine{
		ID:       NewLineID(),
		StaffRef: staffRef,
		Minutes:  DefaultLaborMinutes,
	}
	l.Recompute()
	return l
}

// ApplyStaffSelection copies the staff name and hourly rate. Minutes are kept.
func (l *LaborLine) ApplyStaffSelection(s StaffRecord) {
	l.StaffRef = s.ID
	l.Name = s.Name
	l.HourlyRate = s.HourlyRate
	l.Recompute()
}

// SetField updates one stored field. Minutes must be a whole number above zero.
func (l *LaborLine) SetField(field LaborField, value any) error {
	switch field {
	case LaborName:
		s, err := parseText(value)
		if err != nil {
			return fmt.Errorf("labor name: %w", err)
		}
		l.Name = s
	case LaborMinutes:
		v, err := parseWholeNumber(value, 1)
		if err != nil {
			return fmt.Errorf("labor minutes: %w", err)
		}
		l.Minutes = v
	case LaborHourlyRate:
		v, err := parseNonNegative(value)
		if err != nil {
			return fmt.Errorf("labor hourly rate: %w", err)
		}
		l.HourlyRate = v
	default:
		return fmt.Errorf("labor %q: %w", field, ErrUnknownField)
	}
	l.Recompute()
	return nil
}

func (l *LaborLine) Recompute() {
	l.totalCost = float64(l.Minutes) / 60 * l.HourlyRate
}

func (l *LaborLine) TotalCost() float64 { return l.totalCost }

func (l *LaborLine) clone() *LaborLine {
	c := *l
	return &c
}

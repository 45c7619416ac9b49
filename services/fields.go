package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// NewIDPrefix marks rows that have not been persisted yet.
const NewIDPrefix = "new_"

// NewLineID returns a fresh id for an unsaved order, item or line.
func NewLineID() string {
	return NewIDPrefix + uuid.NewString()
}

// IsNewID reports whether id was minted by NewLineID.
func IsNewID(id string) bool {
	return strings.HasPrefix(id, NewIDPrefix)
}

// parseAmount coerces form or JSON input into a finite float no larger than
// MaxAmount. Decimal commas are accepted ("12,5").
func parseAmount(value any) (float64, error) {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, fmt.Errorf("%w: empty number", ErrInvalidValue)
		}
		if strings.Contains(s, ",") && !strings.Contains(s, ".") {
			s = strings.Replace(s, ",", ".", 1)
		}
		value = s
	}
	v, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if !isFinite(v) {
		return 0, fmt.Errorf("%w: %v is not finite", ErrInvalidValue, v)
	}
	if !inRange(v) {
		return 0, fmt.Errorf("%w: %v exceeds %g", ErrInvalidValue, v, MaxAmount)
	}
	return v, nil
}

func parseNonNegative(value any) (float64, error) {
	v, err := parseAmount(value)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %v is negative", ErrInvalidValue, v)
	}
	return v, nil
}

func parsePositive(value any) (float64, error) {
	v, err := parseAmount(value)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %v must be greater than zero", ErrInvalidValue, v)
	}
	return v, nil
}

// parseWholeNumber rejects fractional input instead of truncating it.
func parseWholeNumber(value any, min int) (int, error) {
	v, err := parseAmount(value)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v is not a whole number", ErrInvalidValue, v)
	}
	if int(v) < min {
		return 0, fmt.Errorf("%w: %v is below %d", ErrInvalidValue, v, min)
	}
	return int(v), nil
}

func parseText(value any) (string, error) {
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return strings.TrimSpace(s), nil
}

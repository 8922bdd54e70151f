package models

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// WireTimeLayout is the timestamp format the LastPass reporting API expects.
// The API documents it as PST; values are rendered in the local reference
// without timezone conversion to keep wire compatibility.
const WireTimeLayout = "2006-01-02 15:04:05"

// maxAgeDays bounds how far back a query bound may reach.
const maxAgeDays = 365 * 4

// TimeValueKind classifies the representation of a time value before any
// conversion happens. Classification runs once; every conversion dispatches
// on the result.
type TimeValueKind int

const (
	KindInvalid TimeValueKind = iota
	KindDigit
	KindNative
	KindFloat
	KindFormatted
)

func (k TimeValueKind) String() string {
	switch k {
	case KindDigit:
		return "DIGIT"
	case KindNative:
		return "NATIVE"
	case KindFloat:
		return "FLOAT"
	case KindFormatted:
		return "FORMATTED"
	default:
		return "INVALID"
	}
}

// FormatError reports a value that cannot be normalized into the storage
// encoding.
type FormatError struct {
	Value any
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unknown value type for time format: %v (%T)", e.Value, e.Value)
}

// Classify determines the representation of a time value.
// Precedence when several match: Digit > Native > Float > Formatted.
// Numeric types always classify as Digit, fractional or not.
func Classify(v any) TimeValueKind {
	switch t := v.(type) {
	case nil:
		return KindInvalid
	case time.Time:
		return KindNative
	case int, int32, int64, uint, uint32, uint64:
		return KindDigit
	case float32, float64:
		return KindDigit
	case string:
		if _, err := strconv.ParseInt(t, 10, 64); err == nil {
			return KindDigit
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil && f > 0 {
			return KindFloat
		}
		if _, err := time.ParseInLocation(WireTimeLayout, t, time.Local); err == nil {
			return KindFormatted
		}
		return KindInvalid
	default:
		return KindInvalid
	}
}

// ToInstant converts a time value of any supported representation into an
// instant. Digits and floats are epoch seconds, formatted strings are parsed
// strictly, native instants pass through. ok=false means "absent", not zero.
func ToInstant(v any) (time.Time, bool) {
	switch Classify(v) {
	case KindDigit:
		return time.Unix(asInt64(v), 0), true
	case KindNative:
		return v.(time.Time), true
	case KindFloat:
		f, _ := strconv.ParseFloat(v.(string), 64)
		sec := math.Floor(f)
		return time.Unix(int64(sec), int64((f-sec)*1e9)), true
	case KindFormatted:
		t, _ := time.ParseInLocation(WireTimeLayout, v.(string), time.Local)
		return t, true
	default:
		return time.Time{}, false
	}
}

// ToBoundedInstant converts like ToInstant and additionally enforces the
// query-bound range: no future instants, nothing older than four years.
// Out of range yields ok=false; callers log and fall back to defaults.
func ToBoundedInstant(v any, now time.Time) (time.Time, bool) {
	t, ok := ToInstant(v)
	if !ok {
		return time.Time{}, false
	}
	diff := now.Sub(t)
	if diff < 0 {
		return time.Time{}, false
	}
	if int(diff.Hours()/24) > maxAgeDays {
		return time.Time{}, false
	}
	return t, true
}

// ToWireFormat renders an instant in the vendor's request format.
func ToWireFormat(t time.Time) string {
	return t.Format(WireTimeLayout)
}

// ToStorageString normalizes a time value into the checkpoint storage
// encoding: a stringified epoch-seconds number. Digit strings are kept
// verbatim, floats are re-rendered, native instants become epoch floats.
func ToStorageString(v any) (string, error) {
	switch Classify(v) {
	case KindDigit:
		if s, ok := v.(string); ok {
			return s, nil
		}
		if f, ok := floatValue(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64), nil
		}
		return strconv.FormatInt(asInt64(v), 10), nil
	case KindNative:
		t := v.(time.Time)
		f := float64(t.Unix()) + float64(t.Nanosecond())/1e9
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case KindFloat:
		f, _ := strconv.ParseFloat(v.(string), 64)
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	default:
		return "", &FormatError{Value: v}
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case uint:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		i, _ := strconv.ParseInt(t, 10, 64)
		return i
	default:
		return 0
	}
}

func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

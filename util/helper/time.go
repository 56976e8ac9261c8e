package helper_util

import (
	"fmt"
	"time"
)

// timeLayouts are the accepted wire formats, most specific first. Mobile
// clients send date-only values for due dates.
var timeLayouts = []string{time.RFC3339, "2006-01-02"}

func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time value %q", s)
}

// ParseNullableTime coerces a decoded JSON value into an optional timestamp.
// nil and the empty string both mean "not set".
func ParseNullableTime(value interface{}) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		t, err := ParseTime(v)
		if err != nil {
			return nil, err
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("unsupported type for time parsing: %T", value)
	}
}

package parse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urbanatlas/gtfsdb/model"
	"github.com/urbanatlas/gtfsdb/schema"
)

// ParseTime parses a GTFS time of day into seconds since midnight.
// Hours may exceed 24 for trips running past midnight; the rollover
// is preserved rather than wrapped to wall-clock time.
func ParseTime(s string) (int64, error) {
	split := strings.Split(s, ":")
	if len(split) != 3 {
		return 0, fmt.Errorf("found %d parts in '%s'", len(split), s)
	}

	hms := [3]int{}
	for i, str := range split {
		j, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return 0, fmt.Errorf("non-integer in '%s' pos %d", s, i)
		}
		hms[i] = j
	}

	if hms[0] < 0 || hms[0] > 99 {
		return 0, fmt.Errorf("invalid hour in '%s'", s)
	}
	if hms[1] < 0 || hms[1] > 59 {
		return 0, fmt.Errorf("invalid minute in '%s'", s)
	}
	if hms[2] < 0 || hms[2] > 59 {
		return 0, fmt.Errorf("invalid second in '%s'", s)
	}

	return int64(hms[0])*3600 + int64(hms[1])*60 + int64(hms[2]), nil
}

// FormatTime is the inverse of ParseTime. Hours past 24 stay past 24.
func FormatTime(seconds int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// FormatValue renders a value back to its CSV representation for the
// given column. Nulls render as the empty string.
func FormatValue(c schema.Column, v model.Value) string {
	if v.IsNull() {
		return ""
	}
	if c.Type == schema.Time && v.Kind == model.KindInt {
		return FormatTime(v.Int)
	}
	if v.Kind == model.KindFloat {
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	}
	return v.String()
}

// coerceValue converts one raw CSV cell per its column spec. Blank
// cells are null.
func coerceValue(c schema.Column, raw string) (model.Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Null, nil
	}

	switch c.Type {
	case schema.Integer:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return model.Null, fmt.Errorf("'%s' is not an integer", raw)
		}
		return model.Int64(i), nil

	case schema.Float:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.Null, fmt.Errorf("'%s' is not a number", raw)
		}
		return model.Float64(f), nil

	case schema.Date:
		if _, err := time.ParseInLocation("20060102", raw, time.UTC); err != nil {
			return model.Null, fmt.Errorf("'%s' is not a YYYYMMDD date", raw)
		}
		return model.String(raw), nil

	case schema.Time:
		seconds, err := ParseTime(raw)
		if err != nil {
			return model.Null, err
		}
		return model.Int64(seconds), nil
	}

	return model.String(raw), nil
}

package flights

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseISODuration converts an ISO 8601 duration of the PT_H_M form
// (e.g. "PT7H30M", "PT45M", "PT11H") into total minutes.
func ParseISODuration(s string) (int, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(raw, "PT") || len(raw) == 2 {
		return 0, fmt.Errorf("parse duration %q: expected PT_H_M form", s)
	}
	raw = raw[2:]

	minutes := 0
	num := ""
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
		case r == 'H' || r == 'M':
			if num == "" {
				return 0, fmt.Errorf("parse duration %q: missing value before %c", s, r)
			}
			v, err := strconv.Atoi(num)
			if err != nil {
				return 0, fmt.Errorf("parse duration %q: %w", s, err)
			}
			if r == 'H' {
				minutes += v * 60
			} else {
				minutes += v
			}
			num = ""
		default:
			return 0, fmt.Errorf("parse duration %q: unexpected %q", s, string(r))
		}
	}
	if num != "" {
		return 0, fmt.Errorf("parse duration %q: trailing value without unit", s)
	}

	return minutes, nil
}

// FormatDuration renders minutes as human text ("7h 30m"); zero-length
// components are omitted.
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h := minutes / 60
	m := minutes % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

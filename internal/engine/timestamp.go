package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimestamp converts "M:S" to seconds. Seconds are not bounded to
// [0,60): "1:90" is 150.
func ParseTimestamp(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}

	minutes, err := parseField(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	seconds, err := parseField(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return minutes*60 + seconds, nil
}

func parseField(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative field %d", n)
	}
	return n, nil
}


package moderation

import (
	"math"
	"time"
)

// MaxTimeout is the longest timeout Discord accepts.
const MaxTimeout = 28 * 24 * time.Hour

const maxValueDigits = 5

// maxSeconds keeps the total representable as a time.Duration; longer inputs saturate.
const maxSeconds = math.MaxInt64 / int64(time.Second)

var unitSeconds = map[byte]int64{
	's': 1,
	'm': 60,
	'h': 60 * 60,
	'd': 24 * 60 * 60,
	'w': 7 * 24 * 60 * 60,
}

// ParseDuration parses expressions such as "10m", "1h30m" or "2w3d". Each value has
// 1 to 5 digits and is followed by one of s, m, h, d, w (any case), with no separators.
func ParseDuration(expr string) (time.Duration, error) {
	if expr == "" {
		return 0, ErrInvalidTimeValue
	}

	var total int64
	for i := 0; i < len(expr); {
		start := i
		var value int64
		for i < len(expr) && expr[i] >= '0' && expr[i] <= '9' {
			value = value*10 + int64(expr[i]-'0')
			i++
		}
		digits := i - start
		if digits == 0 || digits > maxValueDigits {
			return 0, ErrInvalidTimeValue
		}
		if i == len(expr) {
			return 0, ErrInvalidTimeUnit
		}

		unit := expr[i]
		if unit >= 'A' && unit <= 'Z' {
			unit += 'a' - 'A'
		}
		seconds, ok := unitSeconds[unit]
		if !ok {
			return 0, ErrInvalidTimeUnit
		}
		total += value * seconds
		if total > maxSeconds {
			total = maxSeconds
		}
		i++
	}

	if total == 0 {
		return 0, ErrInvalidTimeValue
	}
	return time.Duration(total) * time.Second, nil
}

// TimeoutExpiry returns the moment a timeout given by expr ends.
func TimeoutExpiry(now time.Time, expr string) (time.Time, error) {
	d, err := ParseDuration(expr)
	if err != nil {
		return time.Time{}, err
	}
	if d > MaxTimeout {
		return time.Time{}, ErrDurationTooLong
	}
	return now.Add(d), nil
}

package validate

import (
	"strconv"
	"strings"
	"time"
)

// CardNumber validates a card number from the payment form: digits only after
// stripping spaces, 13 to 19 digits long, and a passing Luhn checksum.
func CardNumber(value string) bool {
	clean := strings.ReplaceAll(value, " ", "")
	if len(clean) < 13 || len(clean) > 19 {
		return false
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return false
		}
	}
	return luhn(clean)
}

// luhn doubles every second digit from the rightmost, subtracts 9 when the
// result exceeds 9, and accepts the number iff the sum is divisible by 10.
func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// CardExpiry validates an MM/YY expiry against the given reference time. The
// expressed month must not be strictly before the current year/month.
func CardExpiry(value string, now time.Time) bool {
	parts := strings.Split(value, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	curYear := now.Year() % 100
	curMonth := int(now.Month())
	if year < curYear {
		return false
	}
	if year == curYear && month < curMonth {
		return false
	}
	return true
}

package validate

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	emailRegexp      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegexp      = regexp.MustCompile(`^[\+]?[0-9\s\-\(\)]{8,}$`)
	beninPhoneRegexp = regexp.MustCompile(`^(\+229|229)?[0-9]{8,9}$`)
	tagRegexp        = regexp.MustCompile(`<[^>]*>`)
)

// Rule describes the constraints applied to a single form field. Rules are
// declarative so the same set drives both the API responses and the tests.
type Rule struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Message   string
	Check     func(value string) string // returns an error message, or ""
}

// Rules maps logical field names to their constraints.
type Rules map[string]Rule

// Fields evaluates every rule against the field map and returns the list of
// human-readable violations. An empty slice means the input is valid.
func (rules Rules) Fields(fields map[string]string) []string {
	var errs []string
	for name, rule := range rules {
		value := strings.TrimSpace(fields[name])

		if value == "" {
			if rule.Required {
				errs = append(errs, fmt.Sprintf("Le champ %s est requis.", name))
			}
			continue
		}
		if rule.MinLength > 0 && len([]rune(value)) < rule.MinLength {
			errs = append(errs, fmt.Sprintf("Le champ %s doit contenir au moins %d caractères.", name, rule.MinLength))
		}
		if rule.MaxLength > 0 && len([]rune(value)) > rule.MaxLength {
			errs = append(errs, fmt.Sprintf("Le champ %s ne doit pas dépasser %d caractères.", name, rule.MaxLength))
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
			msg := rule.Message
			if msg == "" {
				msg = fmt.Sprintf("Le champ %s est invalide.", name)
			}
			errs = append(errs, msg)
		}
		if rule.Check != nil {
			if msg := rule.Check(value); msg != "" {
				errs = append(errs, msg)
			}
		}
	}
	return errs
}

// Sanitize trims the value, strips markup tags and escapes the remainder so
// stored strings can never carry live HTML back out of the database.
func Sanitize(value string) string {
	value = strings.TrimSpace(value)
	value = tagRegexp.ReplaceAllString(value, "")
	return html.EscapeString(value)
}

// Email reports whether value looks like local@domain.tld.
func Email(value string) bool {
	return emailRegexp.MatchString(value)
}

// Phone accepts an optional leading +, digits, spaces, hyphens and
// parentheses with at least 8 significant characters.
func Phone(value string) bool {
	return phoneRegexp.MatchString(value)
}

// BeninPhone is the stricter regional form: optional 229/+229 country prefix
// followed by 8 or 9 digits.
func BeninPhone(value string) bool {
	clean := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(value)
	return beninPhoneRegexp.MatchString(clean)
}

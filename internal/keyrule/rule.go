package keyrule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"multi-image-viewer/internal/imagetypes"
)

// DefaultPattern captures the last run of 5 to 8 digits that is followed
// only by non-digits, e.g. "00123" in "img_00123.png".
const DefaultPattern = `(\d{5,8})\D*$`

// ErrInvalidPattern is returned when a user-supplied pattern cannot be used.
var ErrInvalidPattern = errors.New("invalid key pattern")

// NoMatchPolicy selects what happens to a file whose name the pattern
// does not match.
type NoMatchPolicy string

const (
	// UseFullName keys the file by its name without extension.
	UseFullName NoMatchPolicy = "fullname"
	// Skip leaves the file out of the index.
	Skip NoMatchPolicy = "skip"
)

// ParsePolicy converts a configuration value to a NoMatchPolicy.
// The empty string selects UseFullName.
func ParsePolicy(s string) (NoMatchPolicy, error) {
	switch NoMatchPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", UseFullName:
		return UseFullName, nil
	case Skip:
		return Skip, nil
	default:
		return UseFullName, fmt.Errorf("unknown no-match policy %q (want %q or %q)", s, UseFullName, Skip)
	}
}

// Rule is the key extraction rule. The zero value is "no rule" with the
// UseFullName policy.
type Rule struct {
	pattern   *regexp.Regexp
	onNoMatch NoMatchPolicy
}

// FullName returns the rule that keys every file by its name without
// extension.
func FullName(onNoMatch NoMatchPolicy) Rule {
	return Rule{onNoMatch: onNoMatch}
}

// Compile builds a rule from user input. A blank pattern yields the
// full-name rule. The pattern must compile and declare at least one capture
// group; otherwise the error wraps ErrInvalidPattern.
func Compile(pattern string, onNoMatch NoMatchPolicy) (Rule, error) {
	if onNoMatch == "" {
		onNoMatch = UseFullName
	}
	if strings.TrimSpace(pattern) == "" {
		return FullName(onNoMatch), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}
	if re.NumSubexp() < 1 {
		return Rule{}, fmt.Errorf("%w %q: pattern needs a capture group", ErrInvalidPattern, pattern)
	}

	return Rule{pattern: re, onNoMatch: onNoMatch}, nil
}

// MustCompile is Compile for patterns known to be valid.
func MustCompile(pattern string, onNoMatch NoMatchPolicy) Rule {
	r, err := Compile(pattern, onNoMatch)
	if err != nil {
		panic(err)
	}
	return r
}

// Key returns the grouping key for a file name. ok is false when the file
// must be left out of the index.
func (r Rule) Key(filename string) (key string, ok bool) {
	if r.pattern == nil {
		return imagetypes.Stem(filename), true
	}

	loc := r.pattern.FindStringSubmatchIndex(filename)
	// loc[2] < 0 means the first group did not take part in the match.
	if loc != nil && loc[2] >= 0 {
		return filename[loc[2]:loc[3]], true
	}

	if r.OnNoMatch() == Skip {
		return "", false
	}
	return imagetypes.Stem(filename), true
}

// IsPattern reports whether the rule uses an extraction pattern.
func (r Rule) IsPattern() bool {
	return r.pattern != nil
}

// Pattern returns the pattern source, or "" for the full-name rule.
func (r Rule) Pattern() string {
	if r.pattern == nil {
		return ""
	}
	return r.pattern.String()
}

// OnNoMatch returns the policy applied when the pattern does not match.
func (r Rule) OnNoMatch() NoMatchPolicy {
	if r.onNoMatch == "" {
		return UseFullName
	}
	return r.onNoMatch
}

// WithPolicy returns a copy of r using the given policy.
func (r Rule) WithPolicy(onNoMatch NoMatchPolicy) Rule {
	r.onNoMatch = onNoMatch
	return r
}

// String renders the rule for display.
func (r Rule) String() string {
	if r.pattern == nil {
		return "Using full filename"
	}
	return "/" + r.pattern.String() + "/"
}

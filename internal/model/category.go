package model

import (
	"fmt"
)

// Category identifies one of the independent accessibility test groupings
// whose scan results are tracked separately.
// The set is closed: a value outside it can only come from a bad
// conversion, and ParseCategory and MarshalText reject it with
// ErrUnknownCategory.
type Category int

const (
	// CategoryIssues holds automated check failures.
	CategoryIssues Category = iota

	// CategoryLandmarks holds landmark region results.
	CategoryLandmarks

	// CategoryHeadings holds heading structure results.
	CategoryHeadings

	// CategoryColor holds color and contrast results.
	CategoryColor

	// CategoryNeedsReview holds results that require manual review.
	CategoryNeedsReview

	// categoryCount is the number of known categories. Keep it last.
	categoryCount
)

// categoryNames maps each category to its wire name.
var categoryNames = [categoryCount]string{
	CategoryIssues:      "issues",
	CategoryLandmarks:   "landmarks",
	CategoryHeadings:    "headings",
	CategoryColor:       "color",
	CategoryNeedsReview: "needsReview",
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := range categoryCount {
		out = append(out, c)
	}
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= 0 && c < categoryCount
}

// String returns the wire name of the category.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory converts a wire name into a Category.
// Matching is exact; "needsReview" is not the same as "needsreview".
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if name == s {
			return Category(c), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

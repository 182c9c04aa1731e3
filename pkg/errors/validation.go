package errors

import (
	"strings"
	"time"
	"unicode"
)

// DateLayout is the accepted date format for planner ranges.
const DateLayout = "2006-01-02"

// maxLabelLength bounds titles and collection names so they fit a page header.
const maxLabelLength = 120

// ValidateLabel validates a user-supplied label (planner title, collection
// name). Empty labels are allowed; callers substitute a default.
func ValidateLabel(field, label string) error {
	if len([]rune(label)) > maxLabelLength {
		return New(ErrCodeInvalidConfig, "%s too long (max %d characters)", field, maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// ValidateDate parses a "YYYY-MM-DD" date.
func ValidateDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, New(ErrCodeInvalidDate, "%s cannot be empty", field)
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, Wrap(ErrCodeInvalidDate, err, "%s must be YYYY-MM-DD, got %q", field, value)
	}
	return t, nil
}

// ValidateFilename validates an output file name supplied by an API client.
// It must be a simple basename: no separators, traversal or hidden files.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 255 characters
//   - No null bytes or control characters
//   - No path separators or traversal sequences (..)
//   - No leading dot
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}
	if len(name) > 255 {
		return New(ErrCodeInvalidPath, "file name too long (max 255 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid characters")
		}
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "file name cannot contain path traversal sequences (..)")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "file name cannot be a hidden file")
	}
	return nil
}

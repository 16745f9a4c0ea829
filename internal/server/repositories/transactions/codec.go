package transactions

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// TagSeparator is the ASCII unit separator; it cannot be typed into a tag.
const TagSeparator = "\x1f"

const dateLayout = time.RFC3339Nano

// JoinTags flattens tags into the stored column value.
func JoinTags(tags []string) string {
	return strings.Join(tags, TagSeparator)
}

// SplitTags reverses JoinTags. An empty value yields nil.
func SplitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, TagSeparator)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// formatDueDate stores a zero due date as NULL, the same as no due date.
func formatDueDate(t *time.Time) sql.NullString {
	if t == nil || t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatDate(*t), Valid: true}
}

func parseDueDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseDate(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

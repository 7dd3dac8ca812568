package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/nhle/productivity-tracker/internal/model"
)

// Accepted layouts for date and date-time flags, tried in order.
var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseWhen parses a flag value as a local date or date-time. A bare date
// is midnight at the start of that day. "today" and "tomorrow" are
// accepted as shorthands.
func parseWhen(value string, now time.Time) (*time.Time, error) {
	value = strings.TrimSpace(value)
	switch value {
	case "":
		return nil, nil
	case "today":
		t := model.StartOfDay(now)
		return &t, nil
	case "tomorrow":
		t := model.StartOfDay(now).AddDate(0, 0, 1)
		return &t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, now.Location()); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("cannot parse %q as YYYY-MM-DD or YYYY-MM-DD HH:MM", value)
}

// resolveID finds the single id that equals or starts with ref.
func resolveID(kind, ref string, ids []string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d %ss, use a longer prefix", ref, len(matches), kind)
	}
}

func idsOf[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

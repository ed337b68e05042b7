package training

import "time"

// canonicalDate re-emits a date as zero-padded "YYYY-MM-DD". time.Parse
// (which the datetime validator also relies on) accepts loose input like
// "2026-3-2", and loose strings break the lexicographic comparisons below.
func canonicalDate(s string) (string, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

// canonicalClock re-emits a time of day as zero-padded "HH:MM". "9:15"
// parses fine but sorts after "10:00" as a string.
func canonicalClock(s string) (string, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}

// Overlaps reports whether a proposed [newStart, newEnd) window collides
// with an existing [existingStart, existingEnd) window on the same date.
// Windows are half-open: a training ending exactly when another begins is
// not a collision. Times are canonical zero-padded "HH:MM" strings, so
// lexicographic comparison is time order.
func Overlaps(existingStart, existingEnd, newStart, newEnd string) bool {
	switch {
	case existingStart <= newStart && newStart < existingEnd:
		// proposed window starts inside the existing one
		return true
	case existingStart < newEnd && newEnd <= existingEnd:
		// proposed window ends inside the existing one
		return true
	case newStart <= existingStart && newEnd >= existingEnd:
		// proposed window swallows the existing one
		return true
	}
	return false
}

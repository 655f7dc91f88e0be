// Package logtail reads the tail of the cardfly log file for the activity
// overlay.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// O(maxLines) no matter how large the file grows. Escape sequences are
// stripped and blank lines are skipped before they enter the ring, which
// means maxLines counts displayable lines only.
//
// A missing file is not an error: the overlay shows an empty activity list
// until the first run writes something.
package logtail

package model

// IngestMode selects how the feed walker bounds its pagination and whether
// the cursor may advance afterwards.
type IngestMode int

const (
	// Incremental walks only items newer than the stored cursor and
	// advances the cursor when done.
	Incremental IngestMode = iota

	// Backfill ignores the cursor to recover older records back to a
	// given date. It never advances the cursor.
	Backfill
)

func (m IngestMode) String() string {
	switch m {
	case Incremental:
		return "incremental"
	case Backfill:
		return "backfill"
	default:
		return "unknown"
	}
}

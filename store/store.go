// Package store persists the tracker snapshot. The interface is a whole
// document load/save so the file implementation can later be swapped for an
// embedded key-value engine without touching the ingestion logic.
package store

import "github.com/researchaccelerator-hub/youtube-tracker/model"

// Store loads and saves the whole snapshot.
type Store interface {
	// Load returns the persisted snapshot, or an empty one when nothing
	// has been saved yet.
	Load() (model.Snapshot, error)

	// Save writes the snapshot wholesale.
	Save(model.Snapshot) error
}

// Package bptrack is the composition root for the blood-pressure tracker.
//
// It wires the reading service (pkg/core) to the JSON file store
// (pkg/adapters/fs) using the hexagonal layout: the core owns validation,
// identifiers, ordering and statistics, the adapter owns persistence.
//
// Features:
//
//   - Single JSON file store, rewritten atomically after every change.
//   - Readings validated against physiological ranges before they are stored.
//   - Newest-first listing and aggregate statistics.
//   - Optional git versioning of the store file, one commit per change.
//   - Change notification for the store file (fsnotify).
//
// Usage:
//
//	svc, err := bptrack.New("bp_data.json", bptrack.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	r, err := svc.Add(ctx, bptrack.NewReading{Systolic: 120, Diastolic: 80})
package bptrack

// Package cache holds the certificate-id cache: the one piece of state this
// panel writes itself. Ids are generated lazily on first request and must be
// returned unchanged on every later request for the same customer+course pair.
package cache

import "context"

// CertificateIDStore caches generated certificate ids keyed by customer+course.
//
// Generation need not be atomic: two racing requests may both generate an id,
// and last write wins. Reads must prefer an already-cached id over regenerating
// one, so the race only risks a harmless duplicate, never a lost id.
type CertificateIDStore interface {
	// Get returns the cached id and whether one exists.
	Get(ctx context.Context, customerID, courseID int64) (string, bool, error)
	// Put stores the id for the pair.
	Put(ctx context.Context, customerID, courseID int64, certificateID string) error
}

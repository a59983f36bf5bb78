package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors without the
// stores importing the domain error vocabulary.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in the store
// - ErrReferenceMissing: a foreign key names a row that does not exist
// - ErrConflict: uniqueness constraint would be violated
// - ErrUnavailable: backing service temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrReferenceMissing = errors.New("referenced row missing")
	ErrConflict         = errors.New("conflict")
	ErrUnavailable      = errors.New("unavailable")
)

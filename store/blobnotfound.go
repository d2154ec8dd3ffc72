package store

import "errors"

// IsSnapshotNotFound reports whether err indicates a missing snapshot.
// BlobStore implementations signal a missing identity by returning an
// error satisfying errors.Is(_, ErrSnapshotNotFound); Store never inspects
// a backend's own error types directly, since BlobStore deliberately hides
// them behind a narrow interface.
func IsSnapshotNotFound(err error) bool {
	return errors.Is(err, ErrSnapshotNotFound)
}

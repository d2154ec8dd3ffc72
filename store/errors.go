package store

import "errors"

var (
	// ErrSnapshotNotFound is returned when a requested snapshot id has no
	// corresponding blob.
	ErrSnapshotNotFound = errors.New("deltamerge: snapshot not found")

	// ErrSnapshotExists is an optimistic-concurrency failure: the caller
	// asked to create a snapshot that already exists.
	ErrSnapshotExists = errors.New("deltamerge: snapshot already exists")

	// ErrNoSigner is returned by Put when a signature is requested but no
	// RootSigner was configured.
	ErrNoSigner = errors.New("deltamerge: no signer configured for this store")
)

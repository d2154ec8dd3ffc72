package store

import (
	"context"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/google/uuid"
)

// BlobStore is the subset of the Azure blob operations a Store needs to
// persist and retrieve snapshots, mirroring massifs.massifStore's role
// relative to MassifCommitter: a narrow interface so tests can substitute
// an in-memory fake without pulling in the Azure SDK. It narrows
// massifs.logBlobReader/massifStore's Put/Reader surface to plain byte
// payloads, since this package never needs blob tags or etags the way
// massifcommitter.go's optimistic-concurrency dance does. Reader must
// return an error satisfying errors.Is(_, ErrSnapshotNotFound) for a
// missing identity; Store relies on that contract rather than inspecting
// any backend-specific error type.
type BlobStore interface {
	Put(ctx context.Context, identity string, data []byte, opts ...azblob.Option) error
	Reader(ctx context.Context, identity string, opts ...azblob.Option) ([]byte, error)
}

// blobPath matches massifs' convention of isolating id-to-path mapping in
// one place (massifcommitter.go's mc.BlobPath) rather than scattering
// string formatting across callers.
func blobPath(id string) string {
	return "deltamerge/snapshots/" + id + ".cbor"
}

// NewSnapshotID returns a fresh random identifier suitable for Store.Put,
// for callers with no natural id of their own for a merged delta.
func NewSnapshotID() string {
	return uuid.New().String()
}

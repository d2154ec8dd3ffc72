package store

import (
	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"
)

// Options configures a Store. The zero value is not usable; build one with
// NewStore and a slice of Option.
type Options struct {
	codec  *dtcbor.CBORCodec
	signer *RootSigner
	log    logger.Logger
}

// Option configures a Store at construction, following the functional
// options convention massifs/options.go and massifreader.go use throughout
// the teacher repo.
type Option func(*Options)

// WithCodec supplies an explicit CBOR codec rather than letting NewStore
// create a deterministic one.
func WithCodec(codec dtcbor.CBORCodec) Option {
	return func(o *Options) { o.codec = &codec }
}

// WithSigner attaches a RootSigner; snapshots written with a non-nil
// SignRequest are signed using it (SPEC_FULL §4 item 2).
func WithSigner(signer RootSigner) Option {
	return func(o *Options) { o.signer = &signer }
}

// WithLogger supplies the structured logger used for Debug-level tracing
// of Put/Load calls, matching the logger.Sugar convention the teacher uses
// throughout massifcommitter.go.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) { o.log = log }
}

package snapshot

import (
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendNone = "none"
	BackendDir  = "dir"
	BackendBolt = "bolt"
	BackendS3   = "s3"
)

// Config selects and configures a backend.
type Config struct {
	Backend  string
	Dir      string
	BoltPath string
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

// Open returns the configured store and a function that releases it. The
// store is nil for BackendNone.
func Open(cfg Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", BackendNone:
		return nil, noop, nil
	case BackendDir:
		s, err := NewDirStore(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case BackendBolt:
		s, err := NewBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case BackendS3:
		if cfg.Bucket == "" {
			return nil, noop, fmt.Errorf("snapshot: s3 backend needs a bucket")
		}
		return NewS3Store(NewS3Client(cfg.Region, cfg.Endpoint), cfg.Bucket, cfg.Prefix), noop, nil
	default:
		return nil, noop, fmt.Errorf("snapshot: unknown backend %q", cfg.Backend)
	}
}

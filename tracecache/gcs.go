package tracecache

import (
	"context"
	"errors"
	"fmt"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore keeps entries in a Google Cloud Storage bucket, in the same format as the
// DiskStore, so a team can share one cache.
type GCSStore struct {
	Client *storage.Client
	Bucket string
	Prefix string // optional "directory" inside the bucket
}

func NewGCSStore(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCSStore, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewGCSStore: %v", err)
	}
	return &GCSStore{Client: client, Bucket: bucket, Prefix: prefix}, nil
}

func (gs *GCSStore) String() string { return fmt.Sprintf("gs://%s/%s", gs.Bucket, gs.Prefix) }

func (gs *GCSStore) object(key string) *storage.ObjectHandle {
	return gs.Client.Bucket(gs.Bucket).Object(path.Join(gs.Prefix, key))
}

func (gs *GCSStore) Get(ctx context.Context, key string) (*Entry, error) {
	rdr, err := gs.object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrMiss
	} else if err != nil {
		return nil, err
	}
	defer rdr.Close()

	return decodeEntry(rdr)
}

func (gs *GCSStore) Put(ctx context.Context, key string, e *Entry) error {
	wtr := gs.object(key).NewWriter(ctx)
	wtr.ContentType = "application/octet-stream"

	if err := encodeEntry(wtr, e); err != nil {
		wtr.Close()
		return fmt.Errorf("GCS write %s: %v", key, err)
	}
	if err := wtr.Close(); err != nil {
		return fmt.Errorf("GCS close %s: %v", key, err)
	}
	return nil
}

func (gs *GCSStore) Close() error { return gs.Client.Close() }

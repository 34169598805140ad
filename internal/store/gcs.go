package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCS keeps playlist files as objects in a Google Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS connects to bucket. Object names are put under prefix when it is
// set. Without a credentials file, application default credentials are used.
func NewGCS(ctx context.Context, bucket, prefix, credentialsFile string) (*GCS, error) {
	if bucket == "" {
		return nil, errors.New("gcs storage needs a bucket name")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCS{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

func (s *GCS) objectName(name string) string {
	name = strings.TrimPrefix(name, "/")
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Open returns a reader for the named object.
func (s *GCS) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(s.objectName(name)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("gs://%s/%s: %w", s.bucket, s.objectName(name), fs.ErrNotExist)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Create returns a writer that uploads the named object when closed.
// Cancelling ctx before Close discards the upload.
func (s *GCS) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	w := s.client.Bucket(s.bucket).Object(s.objectName(name)).NewWriter(ctx)
	w.ContentType = "text/plain; charset=utf-8"
	return w, nil
}

// List returns the object names under the store prefix that start with
// prefix, with the store prefix removed.
func (s *GCS) List(ctx context.Context, prefix string) ([]string, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{
		Prefix: s.objectName(prefix),
	})

	var names []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error listing objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, "/") {
			continue
		}
		names = append(names, s.relative(attrs.Name))
	}
	sort.Strings(names)
	return names, nil
}

func (s *GCS) relative(object string) string {
	if s.prefix == "" {
		return object
	}
	return strings.TrimPrefix(object, s.prefix+"/")
}

// Close closes the underlying client.
func (s *GCS) Close() error {
	return s.client.Close()
}

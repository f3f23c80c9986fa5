package endpoint

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	xferhttp "github.com/ligustah/xfer/internal/http"
)

// SizeUnknown marks endpoints whose total size cannot be determined.
const SizeUnknown int64 = -1

// Source is an opened read endpoint.
type Source struct {
	// Reader streams the endpoint's content.
	Reader io.Reader

	// Size is the total size in bytes, or SizeUnknown.
	Size int64

	// Name is a display label for the endpoint.
	Name string

	closers []io.Closer
}

// Close releases the source's underlying resources.
func (s *Source) Close() error {
	return closeAll(s.closers)
}

// Sink is an opened write endpoint.
type Sink struct {
	// Writer receives the transferred content.
	Writer io.Writer

	// Name is a display label for the endpoint.
	Name string

	closers []io.Closer
}

// Close finalizes the sink. For blob sinks this commits the write; an
// object only becomes visible once Close returns nil.
func (s *Sink) Close() error {
	return closeAll(s.closers)
}

func closeAll(closers []io.Closer) error {
	var firstErr error
	for _, c := range closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenSource opens a read endpoint from a spec: "-" for stdin, an
// http(s):// URL, a blob URL like s3://bucket/path/key, or a local file
// path. The size is reported when the backend can tell us.
func OpenSource(ctx context.Context, spec string, client *xferhttp.Client) (*Source, error) {
	switch {
	case spec == "-":
		return &Source{Reader: os.Stdin, Size: SizeUnknown, Name: "stdin"}, nil

	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		// A HEAD failure is not fatal; some servers only answer GET.
		size := SizeUnknown
		if info, err := client.Head(ctx, spec); err == nil && info.Size > 0 {
			size = info.Size
		}

		body, length, err := client.Get(ctx, spec)
		if err != nil {
			return nil, fmt.Errorf("endpoint: open %s: %w", spec, err)
		}
		if size == SizeUnknown && length > 0 {
			size = length
		}
		return &Source{Reader: body, Size: size, Name: spec, closers: []io.Closer{body}}, nil

	case isBlobSpec(spec):
		bucketURL, key, err := splitBlobSpec(spec)
		if err != nil {
			return nil, err
		}
		bucket, err := blob.OpenBucket(ctx, bucketURL)
		if err != nil {
			return nil, fmt.Errorf("endpoint: open bucket %s: %w", bucketURL, err)
		}

		r, err := bucket.NewReader(ctx, key, nil)
		if err != nil {
			bucket.Close()
			return nil, fmt.Errorf("endpoint: open %s: %w", spec, err)
		}
		return &Source{
			Reader:  r,
			Size:    r.Size(),
			Name:    spec,
			closers: []io.Closer{r, bucket},
		}, nil

	default:
		f, err := os.Open(spec)
		if err != nil {
			return nil, fmt.Errorf("endpoint: open %s: %w", spec, err)
		}
		size := SizeUnknown
		if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
			size = fi.Size()
		}
		return &Source{Reader: f, Size: size, Name: spec, closers: []io.Closer{f}}, nil
	}
}

// OpenSink opens a write endpoint from a spec: "-" for stdout, a blob URL
// like s3://bucket/path/key, or a local file path. HTTP sinks are not
// supported.
func OpenSink(ctx context.Context, spec string) (*Sink, error) {
	switch {
	case spec == "-":
		return &Sink{Writer: os.Stdout, Name: "stdout"}, nil

	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return nil, fmt.Errorf("endpoint: http sinks are not supported: %s", spec)

	case isBlobSpec(spec):
		bucketURL, key, err := splitBlobSpec(spec)
		if err != nil {
			return nil, err
		}
		bucket, err := blob.OpenBucket(ctx, bucketURL)
		if err != nil {
			return nil, fmt.Errorf("endpoint: open bucket %s: %w", bucketURL, err)
		}

		w, err := bucket.NewWriter(ctx, key, nil)
		if err != nil {
			bucket.Close()
			return nil, fmt.Errorf("endpoint: open %s: %w", spec, err)
		}
		return &Sink{Writer: w, Name: spec, closers: []io.Closer{w, bucket}}, nil

	default:
		f, err := os.Create(spec)
		if err != nil {
			return nil, fmt.Errorf("endpoint: create %s: %w", spec, err)
		}
		return &Sink{Writer: f, Name: spec, closers: []io.Closer{f}}, nil
	}
}

// blobSchemes are the gocloud drivers registered by this package.
var blobSchemes = []string{"s3://", "gs://", "mem://"}

func isBlobSpec(spec string) bool {
	for _, scheme := range blobSchemes {
		if strings.HasPrefix(spec, scheme) {
			return true
		}
	}
	return false
}

// splitBlobSpec splits a spec like s3://bucket/path/key?endpoint=... into
// the gocloud bucket URL (scheme, host, and query) and the object key.
func splitBlobSpec(spec string) (bucketURL, key string, err error) {
	u, err := url.Parse(spec)
	if err != nil {
		return "", "", fmt.Errorf("endpoint: parse %s: %w", spec, err)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("endpoint: %s must name a bucket and an object key", spec)
	}

	bucketURL = u.Scheme + "://" + u.Host
	if u.RawQuery != "" {
		bucketURL += "?" + u.RawQuery
	}
	return bucketURL, key, nil
}

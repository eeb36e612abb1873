package host

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MaxFetchSize is the largest document a Fetcher will read.
const MaxFetchSize = 32 << 20

// Fetcher reads the bytes of a document named by a script.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// S3API is the subset of the S3 client used to fetch objects.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// SourceFetcher fetches http(s) URLs, s3://bucket/key objects and local
// files.
type SourceFetcher struct {
	client *http.Client

	s3    S3API
	s3Mu  sync.Mutex
	newS3 func(ctx context.Context) (S3API, error)
}

// FetcherOption configures a SourceFetcher.
type FetcherOption func(*SourceFetcher)

// WithHTTPClient sets the client used for http(s) URLs.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *SourceFetcher) {
		f.client = client
	}
}

// WithS3Client sets the client used for s3:// URLs. By default a client is
// created from the environment on first use.
func WithS3Client(client S3API) FetcherOption {
	return func(f *SourceFetcher) {
		f.s3 = client
	}
}

// NewSourceFetcher returns a SourceFetcher.
func NewSourceFetcher(options ...FetcherOption) *SourceFetcher {
	f := &SourceFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		newS3:  defaultS3Client,
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

func (f *SourceFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return f.fetchHTTP(ctx, source)
	case strings.HasPrefix(source, "s3://"):
		return f.fetchS3(ctx, source)
	}
	file, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readLimited(file)
}

func (f *SourceFetcher) fetchHTTP(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", source, resp.Status)
	}
	return readLimited(resp.Body)
}

func (f *SourceFetcher) fetchS3(ctx context.Context, source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, err
	}
	bucket, key := u.Host, strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 url %q", source)
	}
	client, err := f.s3Client(ctx)
	if err != nil {
		return nil, err
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}
	defer out.Body.Close()
	return readLimited(out.Body)
}

// s3Client returns the S3 client, creating it from the environment on first
// use. A failed attempt is not remembered.
func (f *SourceFetcher) s3Client(ctx context.Context) (S3API, error) {
	f.s3Mu.Lock()
	defer f.s3Mu.Unlock()
	if f.s3 != nil {
		return f.s3, nil
	}
	client, err := f.newS3(ctx)
	if err != nil {
		return nil, err
	}
	f.s3 = client
	return client, nil
}

func defaultS3Client(ctx context.Context) (S3API, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFetchSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxFetchSize {
		return nil, fmt.Errorf("document exceeds %d bytes", MaxFetchSize)
	}
	return data, nil
}

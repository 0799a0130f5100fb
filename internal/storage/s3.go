package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/playslug/backend/internal/config"
)

// S3Store resolves public URLs for recording assets stored in an
// S3-compatible bucket and streams objects back out for the download proxy.
type S3Store struct {
	client     *s3.Client
	downloader *manager.Downloader
	bucket     string
	baseURL    string
}

// NewS3Store configures a client targeting the provided object store.
func NewS3Store(ctx context.Context, cfg config.ObjectStoreConfig) (*S3Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 store: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if strings.TrimSpace(cfg.Endpoint) != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				return aws.Endpoint{
					URL:           cfg.Endpoint,
					SigningRegion: cfg.Region,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	downloader := manager.NewDownloader(client, func(d *manager.Downloader) {
		// Sequential parts so the proxy can stream through an io.Pipe.
		d.Concurrency = 1
	})

	return &S3Store{
		client:     client,
		downloader: downloader,
		bucket:     cfg.Bucket,
		baseURL:    strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// PublicURL joins a stored relative path against the bucket's public base URL.
// Current-schema rows store only the relative path.
func (s *S3Store) PublicURL(path string) string {
	key := strings.TrimLeft(strings.TrimSpace(path), "/")
	if key == "" {
		return ""
	}
	if s.baseURL == "" {
		return key
	}
	return fmt.Sprintf("%s/%s", s.baseURL, key)
}

// Fetch streams the object at key. The returned size is -1 when unknown.
// Closing the reader aborts an in-flight transfer.
func (s *S3Store) Fetch(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return nil, 0, fmt.Errorf("s3 store: empty key")
	}

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("s3 store head %s: %w", key, err)
	}

	size := int64(-1)
	if head.ContentLength != nil {
		size = *head.ContentLength
	}

	pr, pw := io.Pipe()
	go func() {
		_, err := s.downloader.Download(ctx, &sequentialWriterAt{w: pw}, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			pw.CloseWithError(fmt.Errorf("s3 store download %s: %w", key, err))
			return
		}
		pw.Close()
	}()

	return pr, size, nil
}

// sequentialWriterAt adapts an io.Writer for the manager downloader. Safe
// only with Concurrency=1, where parts arrive in order.
type sequentialWriterAt struct {
	mu     sync.Mutex
	w      io.Writer
	offset int64
}

func (s *sequentialWriterAt) WriteAt(p []byte, off int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if off != s.offset {
		return 0, fmt.Errorf("non-sequential write at %d, expected %d", off, s.offset)
	}
	n, err := s.w.Write(p)
	s.offset += int64(n)
	return n, err
}

package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tablet-ingest/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Report summarizes one publish run.
type Report struct {
	// Objects lists the uploaded object names in upload order.
	Objects []string
	// Replaced counts uploads that overwrote an existing object.
	Replaced int
	// Bytes is the total size uploaded.
	Bytes int64
}

// Service uploads output tables to object storage.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewService creates a publisher for bucket. Objects are named
// "<prefix>/<file name>", or just the file name without a prefix.
func NewService(client storage.Client, bucket, prefix string, logger *zap.Logger) *Service {
	return &Service{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/"), logger: logger}
}

// EnsureBucket creates the bucket if it does not exist.
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("Created bucket", zap.String("bucket", s.bucket))
	return nil
}

// Publish uploads every .csv file directly inside dir.
func (s *Service) Publish(ctx context.Context, dir string) (*Report, error) {
	files, err := tables(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no tables to publish in %s", dir)
	}

	if err := s.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	existing := s.existing(ctx)
	report := &Report{}
	for _, file := range files {
		name := storage.ObjectName(s.prefix, filepath.Base(file))
		size, err := s.upload(ctx, file, name)
		if err != nil {
			return nil, err
		}

		if _, ok := existing[name]; ok {
			report.Replaced++
		}
		report.Objects = append(report.Objects, name)
		report.Bytes += size
		s.logger.Debug("Published table", zap.String("object", name), zap.Int64("bytes", size))
	}
	return report, nil
}

func (s *Service) upload(ctx context.Context, file, name string) (int64, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	_, err = s.client.PutObject(ctx, s.bucket, name, f, info.Size(), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return info.Size(), nil
}

// existing returns the object names already under the prefix.
func (s *Service) existing(ctx context.Context) map[string]struct{} {
	names := make(map[string]struct{})
	var opts minio.ListObjectsOptions
	if s.prefix != "" {
		opts.Prefix = s.prefix + "/"
	}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			s.logger.Warn("Failed to list published tables", zap.Error(obj.Err))
			break
		}
		names[obj.Key] = struct{}{}
	}
	return names
}

func tables(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

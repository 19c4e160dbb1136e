package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tablet-ingest/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func outputDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		"tablets-uploading-data-KITKIT.csv":      "team\n",
		"storybook-events-KITKIT_2018-05-25.csv": "tablet_serial\n",
		"notes.txt":                              "ignored",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0o755))
	return dir
}


func TestPublish(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "tablet-analytics").Return(true, nil)
	client.On("ListObjects", mock.Anything, "tablet-analytics", minio.ListObjectsOptions{Prefix: "KITKIT/"}).
		Return(mocks.Listing("KITKIT/tablets-uploading-data-KITKIT.csv"))
	client.On("PutObject", mock.Anything, "tablet-analytics", "KITKIT/storybook-events-KITKIT_2018-05-25.csv", mock.Anything, int64(14), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("PutObject", mock.Anything, "tablet-analytics", "KITKIT/tablets-uploading-data-KITKIT.csv", mock.Anything, int64(5), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(client, "tablet-analytics", "KITKIT", zap.NewNop())
	report, err := svc.Publish(context.Background(), outputDir(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"KITKIT/storybook-events-KITKIT_2018-05-25.csv",
		"KITKIT/tablets-uploading-data-KITKIT.csv",
	}, report.Objects)
	assert.Equal(t, 1, report.Replaced)
	assert.Equal(t, int64(19), report.Bytes)
	client.AssertExpectations(t)
}

func TestPublish_CreatesBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "tablet-analytics").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "tablet-analytics", minio.MakeBucketOptions{}).Return(nil)
	client.On("ListObjects", mock.Anything, "tablet-analytics", mock.Anything).Return(mocks.Listing())
	client.On("PutObject", mock.Anything, "tablet-analytics", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	report, err := NewService(client, "tablet-analytics", "", zap.NewNop()).Publish(context.Background(), outputDir(t))
	require.NoError(t, err)
	assert.Len(t, report.Objects, 2)
	assert.Zero(t, report.Replaced)
	client.AssertExpectations(t)
}

func TestPublish_UploadError(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "tablet-analytics").Return(true, nil)
	client.On("ListObjects", mock.Anything, "tablet-analytics", mock.Anything).Return(mocks.Listing())
	client.On("PutObject", mock.Anything, "tablet-analytics", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	_, err := NewService(client, "tablet-analytics", "", zap.NewNop()).Publish(context.Background(), outputDir(t))
	assert.ErrorContains(t, err, "access denied")
}

func TestPublish_BucketCheckError(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "tablet-analytics").Return(false, errors.New("connection refused"))

	_, err := NewService(client, "tablet-analytics", "", zap.NewNop()).Publish(context.Background(), outputDir(t))
	assert.Error(t, err)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPublish_NothingToPublish(t *testing.T) {
	client := new(mocks.Client)
	_, err := NewService(client, "tablet-analytics", "", zap.NewNop()).Publish(context.Background(), t.TempDir())
	assert.Error(t, err)
	client.AssertNotCalled(t, "BucketExists", mock.Anything, mock.Anything)
}

func TestPublish_ListingFailureStillUploads(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "tablet-analytics").Return(true, nil)
	client.On("ListObjects", mock.Anything, "tablet-analytics", mock.Anything).
		Return(mocks.FailedListing(errors.New("access denied")))
	client.On("PutObject", mock.Anything, "tablet-analytics", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	report, err := NewService(client, "tablet-analytics", "", zap.NewNop()).Publish(context.Background(), outputDir(t))
	require.NoError(t, err)
	assert.Len(t, report.Objects, 2)
	assert.Zero(t, report.Replaced)
}

package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("PlainHost", func(t *testing.T) {
		client, err := NewClient(Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s"})
		require.NoError(t, err)
		assert.Equal(t, "localhost:9000", client.EndpointURL().Host)
		assert.Equal(t, "http", client.EndpointURL().Scheme)
	})

	t.Run("HTTPSScheme", func(t *testing.T) {
		client, err := NewClient(Config{Endpoint: "https://s3.amazonaws.com", Region: "us-east-1"})
		require.NoError(t, err)
		assert.Equal(t, "https", client.EndpointURL().Scheme)
	})

	t.Run("EmptyEndpoint", func(t *testing.T) {
		_, err := NewClient(Config{})
		assert.Error(t, err)
	})
}

func TestSplitEndpoint(t *testing.T) {
	tests := []struct {
		endpoint   string
		useSSL     bool
		wantHost   string
		wantSecure bool
	}{
		{"localhost:9000", false, "localhost:9000", false},
		{"localhost:9000", true, "localhost:9000", true},
		{"http://minio.local:9000/", false, "minio.local:9000", false},
		{"https://minio.example.org", false, "minio.example.org", true},
		{"  minio:9000 ", false, "minio:9000", false},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			host, secure := splitEndpoint(tt.endpoint, tt.useSSL)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantSecure, secure)
		})
	}
}

func TestConfigTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, Config{}.Timeout())
	assert.Equal(t, 5*time.Second, Config{TimeoutSeconds: 5}.Timeout())
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "inventory.csv", ObjectName("", "inventory.csv"))
	assert.Equal(t, "KITKIT/inventory.csv", ObjectName("KITKIT", "inventory.csv"))
	assert.Equal(t, "weekly/KITKIT/inventory.csv", ObjectName("/weekly/KITKIT/", "inventory.csv"))
}

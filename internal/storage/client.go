package storage

import (
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/jeysiell/SinalTech/internal/config"
)

// Client fronts the asset backend with a TTL'd listing cache.
type Client struct {
	backend Provider
	bucket  string
	prefix  string

	cache      []string
	cacheTime  time.Time
	cacheMutex sync.RWMutex
}

const CacheTTL = 1 * time.Hour

func New(cfg *config.Config) *Client {
	var backend Provider

	if cfg.Assets.Provider == "s3" {
		s3Config := &aws.Config{
			Credentials:      credentials.NewStaticCredentials(cfg.Assets.KeyID, cfg.Assets.AppKey, ""),
			Endpoint:         aws.String(cfg.Assets.Endpoint),
			Region:           aws.String(cfg.Assets.Region),
			S3ForcePathStyle: aws.Bool(true),
		}
		sess := session.Must(session.NewSession(s3Config))
		backend = NewS3Provider(sess)
	} else {
		backend = NewLocalProvider(cfg.Assets.LocalDir)
	}

	return &Client{
		backend: backend,
		bucket:  cfg.Assets.Bucket,
		prefix:  cfg.Assets.Prefix,
	}
}

// NewWithProvider wires an explicit backend; used by tests.
func NewWithProvider(backend Provider, bucket, prefix string) *Client {
	return &Client{backend: backend, bucket: bucket, prefix: prefix}
}

// ListAudioFiles returns the chime keys under the configured prefix.
func (c *Client) ListAudioFiles() ([]string, error) {
	c.cacheMutex.RLock()
	files := c.cache
	ts := c.cacheTime
	c.cacheMutex.RUnlock()

	if files != nil && time.Since(ts) < CacheTTL {
		return files, nil
	}

	keys, err := c.backend.List(c.bucket, c.prefix)
	if err != nil {
		return nil, err
	}

	var audioKeys []string
	for _, key := range keys {
		if isAudioKey(key) {
			audioKeys = append(audioKeys, key)
		}
	}

	c.cacheMutex.Lock()
	c.cache = audioKeys
	c.cacheTime = time.Now()
	c.cacheMutex.Unlock()

	return audioKeys, nil
}

// DownloadFile fetches one asset from the backend.
func (c *Client) DownloadFile(key string) (*FileObject, error) {
	return c.backend.Get(c.bucket, key)
}

// Prefix returns the configured key prefix for chimes.
func (c *Client) Prefix() string {
	return c.prefix
}

func isAudioKey(key string) bool {
	return strings.HasSuffix(key, ".mp3") || strings.HasSuffix(key, ".wav")
}

package assets

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Fetcher defines what the cache needs from the storage layer.
type Fetcher interface {
	DownloadFile(key string) (io.ReadCloser, error)
}

// CacheManager keeps chime files on local disk so playback never waits
// on the network at bell time.
type CacheManager struct {
	storage Fetcher
	baseDir string
	mu      sync.Mutex
	pending map[string]chan struct{}
}

func NewCacheManager(storage Fetcher, cacheDir string) *CacheManager {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache dir: %v", err)
	}

	return &CacheManager{
		storage: storage,
		baseDir: cacheDir,
		pending: make(map[string]chan struct{}),
	}
}

func (c *CacheManager) GetLocalPath(key string) (string, error) {
	localPath := c.filePath(key)

	// 1. Check if it already exists
	if c.exists(localPath) {
		os.Chtimes(localPath, time.Now(), time.Now())
		return localPath, nil
	}

	// 2. Check if it's currently being downloaded by Prefetch
	c.mu.Lock()
	waitCh, isDownloading := c.pending[key]
	if isDownloading {
		c.mu.Unlock()
		<-waitCh
		return localPath, nil
	}

	// 3. Not exists and not downloading: register our intent to download
	done := make(chan struct{})
	c.pending[key] = done
	c.mu.Unlock()

	defer func() {
		close(done)
		c.mu.Lock()
		delete(c.pending, key)
		c.mu.Unlock()
	}()

	log.Printf("📥 Cache Miss: Downloading %s", key)
	if err := c.download(key, localPath); err != nil {
		return "", err
	}

	return localPath, nil
}

// Prefetch warms the cache in the background. Called after every
// schedule load with all referenced chimes.
func (c *CacheManager) Prefetch(keys []string) {
	for _, key := range keys {
		go func(k string) {
			if _, err := c.GetLocalPath(k); err != nil {
				log.Printf("❌ Prefetch failed for %s: %v", k, err)
			}
		}(key)
	}
}

// Cached reports whether a key is already on disk.
func (c *CacheManager) Cached(key string) bool {
	return c.exists(c.filePath(key))
}

func (c *CacheManager) filePath(key string) string {
	safeName := filepath.Base(key)
	return filepath.Join(c.baseDir, safeName)
}

func (c *CacheManager) exists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir() && info.Size() > 0
}

func (c *CacheManager) download(key, dest string) error {
	// Create temporary file first
	tmp := dest + ".tmp"

	reader, err := c.storage.DownloadFile(key)
	if err != nil {
		return err
	}
	defer reader.Close()

	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return err
	}

	// Rename to final file (atomic)
	return os.Rename(tmp, dest)
}

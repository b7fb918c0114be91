package assets

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/dhowden/tag"

	"github.com/jeysiell/SinalTech/internal/storage"
)

// Chime is one playable asset as presented to the UI.
type Chime struct {
	ID    string `json:"id"`    // e.g. "sino.mp3"
	Label string `json:"label"` // friendly display name
}

// Labels the original admin pages hardcoded. Used when a file carries no
// readable title tag.
var defaultLabels = map[string]string{
	"musica1.mp3": "Tu Me Sondas",
	"musica2.mp3": "Eu Amo Minha Escola",
	"musica3.mp3": "My Lighthouse",
	"musica4.mp3": "Amor Teimoso",
	"sino.mp3":    "Sino Padrão",
}

// Library resolves chime asset ids to playable local files.
type Library struct {
	storage *storage.Client
	cache   *CacheManager
}

type clientAdapter struct {
	store *storage.Client
}

func (a *clientAdapter) DownloadFile(key string) (io.ReadCloser, error) {
	obj, err := a.store.DownloadFile(key)
	if err != nil {
		return nil, err
	}
	return obj.Body, nil
}

func NewLibrary(store *storage.Client, cacheDir string) *Library {
	return &Library{
		storage: store,
		cache:   NewCacheManager(&clientAdapter{store: store}, cacheDir),
	}
}

// Resolve maps an asset id to a local file path, downloading on a cache
// miss. Unknown ids fail; they must never leave a half-open session.
func (l *Library) Resolve(id string) (string, error) {
	if id == "" || strings.Contains(id, "/") || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid asset id %q", id)
	}

	localPath, err := l.cache.GetLocalPath(l.storage.Prefix() + id)
	if err != nil {
		return "", fmt.Errorf("asset %q: %w", id, err)
	}
	return localPath, nil
}

// Warm prefetches every chime referenced by the given asset ids.
func (l *Library) Warm(ids []string) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			keys = append(keys, l.storage.Prefix()+id)
		}
	}
	l.cache.Prefetch(keys)
}

// List enumerates available chimes with display labels. Titles come from
// ID3 tags when the file is cached locally, then the legacy label map,
// then the bare filename.
func (l *Library) List() ([]Chime, error) {
	keys, err := l.storage.ListAudioFiles()
	if err != nil {
		return nil, err
	}

	chimes := make([]Chime, 0, len(keys))
	for _, key := range keys {
		id := path.Base(key)
		chimes = append(chimes, Chime{ID: id, Label: l.label(key, id)})
	}
	return chimes, nil
}

func (l *Library) label(key, id string) string {
	if l.cache.Cached(key) {
		if title := readTitle(l.cache.filePath(key)); title != "" {
			return title
		}
	}
	if label, ok := defaultLabels[id]; ok {
		return label
	}
	return strings.TrimSuffix(id, path.Ext(id))
}

func readTitle(localPath string) string {
	f, err := os.Open(localPath)
	if err != nil {
		return ""
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(meta.Title())
}

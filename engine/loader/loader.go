// Package loader reads texture images from disk and decodes them into RGBA
// staging data ready for upload.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/chipview/common"
	"github.com/h2non/filetype"
)

// ErrUnsupportedFormat is returned when neither the content nor the name of
// an image maps to a decoder.
var ErrUnsupportedFormat = errors.New("unsupported texture format")

// sniffLen is how much of a stream filetype needs to recognise it.
const sniffLen = 262

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	textureCache map[string]*common.TextureStagingData
	backend      loaderBackend
	flipY        bool

	workers int
	pool    worker.DynamicWorkerPool
}

// Loader decodes texture files and caches the results by path.
type Loader interface {
	// Load decodes one texture file. A path loaded before is served from the cache.
	// The decoder is chosen from the file's magic bytes, then from its extension.
	//
	// Parameters:
	//   - path: the image file
	//
	// Returns:
	//   - *common.TextureStagingData: RGBA pixels
	//   - error: ErrUnsupportedFormat, or an open or decode error
	Load(path string) (*common.TextureStagingData, error)

	// LoadAll decodes several files concurrently on the loader's worker pool.
	// Every path is attempted; the errors of all failed paths are joined.
	//
	// Parameters:
	//   - paths: the image files
	//
	// Returns:
	//   - map[string]*common.TextureStagingData: the textures that loaded, by path
	//   - error: the joined failures, or nil
	LoadAll(paths ...string) (map[string]*common.TextureStagingData, error)

	// Reload decodes path again and replaces its cache entry. A failed reload
	// leaves the previous entry in place.
	Reload(path string) (*common.TextureStagingData, error)

	// LoadReader decodes an image stream of the given format and caches it under name.
	//
	// Parameters:
	//   - name: the cache key
	//   - format: a file extension such as ".png", or "" to sniff the stream
	//   - r: the encoded image
	//
	// Returns:
	//   - *common.TextureStagingData: RGBA pixels
	//   - error: ErrUnsupportedFormat or a decode error
	LoadReader(name, format string, r io.Reader) (*common.TextureStagingData, error)

	// Get retrieves a cached texture by name. Returns nil if not found.
	Get(name string) *common.TextureStagingData

	// Textures returns a copy of the cache.
	Textures() map[string]*common.TextureStagingData

	// Close stops the worker pool. The loader must not be used afterwards.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a Loader with a worker pool sized to the CPU count
// unless WithWorkers says otherwise.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the new loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		textureCache: make(map[string]*common.TextureStagingData),
		backend:      newImageLoaderBackend(),
		workers:      runtime.NumCPU(),
	}
	for _, option := range options {
		option(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loader) Load(path string) (*common.TextureStagingData, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}
	tex, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	return l.store(path, tex), nil
}

func (l *loader) Reload(path string) (*common.TextureStagingData, error) {
	tex, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.textureCache[path] = tex
	l.mu.Unlock()
	return tex, nil
}

func (l *loader) readFile(path string) (*common.TextureStagingData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer file.Close()

	br := bufio.NewReaderSize(file, sniffLen)
	header, _ := br.Peek(sniffLen)
	format, err := detectFormat(path, header)
	if err != nil {
		return nil, err
	}
	tex, err := l.decode(format, br)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return tex, nil
}

func (l *loader) LoadAll(paths ...string) (map[string]*common.TextureStagingData, error) {
	type result struct {
		path string
		tex  *common.TextureStagingData
		err  error
	}
	results := make([]result, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		l.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				tex, err := l.Load(path)
				results[i] = result{path: path, tex: tex, err: err}
				return tex, err
			},
		})
	}
	wg.Wait()

	out := make(map[string]*common.TextureStagingData, len(paths))
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		out[r.path] = r.tex
	}
	return out, errors.Join(errs...)
}

func (l *loader) LoadReader(name, format string, r io.Reader) (*common.TextureStagingData, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}
	br := bufio.NewReaderSize(r, sniffLen)
	var ext string
	var err error
	if format == "" {
		header, _ := br.Peek(sniffLen)
		ext, err = detectFormat(name, header)
	} else {
		ext, err = resolveFormat(format)
	}
	if err != nil {
		return nil, err
	}
	tex, err := l.decode(ext, br)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	return l.store(name, tex), nil
}

func (l *loader) Get(name string) *common.TextureStagingData {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.textureCache[name]
}

func (l *loader) Textures() map[string]*common.TextureStagingData {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]*common.TextureStagingData, len(l.textureCache))
	for k, v := range l.textureCache {
		result[k] = v
	}
	return result
}

func (l *loader) Close() {
	l.pool.Stop()
}

func (l *loader) decode(format string, r io.Reader) (*common.TextureStagingData, error) {
	tex, err := l.backend.Decode(format, r)
	if err != nil {
		return nil, err
	}
	if l.flipY {
		flipRows(tex)
	}
	return tex, nil
}

// store caches tex under key unless another goroutine got there first, in
// which case the earlier texture wins so callers share one pointer.
func (l *loader) store(key string, tex *common.TextureStagingData) *common.TextureStagingData {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.textureCache[key]; ok {
		return existing
	}
	l.textureCache[key] = tex
	return tex
}

// detectFormat trusts the content over the name: a PNG saved as chip.jpg
// still decodes. Unrecognised headers fall back to the extension of name.
func detectFormat(name string, header []byte) (string, error) {
	if kind, err := filetype.Match(header); err == nil && kind != filetype.Unknown {
		if ext, err := resolveFormat(kind.Extension); err == nil {
			return ext, nil
		}
	}
	return resolveFormat(name)
}

// resolveFormat normalizes a path or bare extension to a supported extension.
func resolveFormat(pathOrExt string) (string, error) {
	ext := strings.ToLower(filepath.Ext(pathOrExt))
	if ext == "" {
		ext = "." + strings.TrimPrefix(strings.ToLower(pathOrExt), ".")
	}
	switch ext {
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, pathOrExt)
	}
}

// flipRows reverses the row order in place.
func flipRows(tex *common.TextureStagingData) {
	stride := int(tex.Width) * 4
	h := int(tex.Height)
	tmp := make([]byte, stride)
	for y := 0; y < h/2; y++ {
		top := tex.Pixels[y*stride : (y+1)*stride]
		bottom := tex.Pixels[(h-1-y)*stride : (h-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

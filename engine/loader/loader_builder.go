package loader

import "github.com/Carmen-Shannon/chipview/common"

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the size of the decode worker pool. Values <= 0 keep the default.
//
// Parameters:
//   - n: the number of concurrent decoders
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithFlipY flips decoded images vertically so the first row is the bottom of the image.
//
// Parameters:
//   - flip: if true, rows are reversed after decoding
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithFlipY(flip bool) LoaderBuilderOption {
	return func(l *loader) {
		l.flipY = flip
	}
}

// WithTexture is an option builder that pre-populates the texture cache.
//
// Parameters:
//   - key: the cache key for the texture
//   - tex: the texture to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture option to a loader
func WithTexture(key string, tex *common.TextureStagingData) LoaderBuilderOption {
	return func(l *loader) {
		l.textureCache[key] = tex
	}
}

package loader

import (
	"io"

	"github.com/Carmen-Shannon/chipview/common"
)

// loaderBackend decodes an encoded image into RGBA staging data.
// Concrete implementations handle format-specific details.
type loaderBackend interface {
	// Decode reads one image.
	//
	// Parameters:
	//   - format: the normalized file extension, e.g. ".png"
	//   - r: the encoded image
	//
	// Returns:
	//   - *common.TextureStagingData: the decoded RGBA pixels
	//   - error: error if decoding fails
	Decode(format string, r io.Reader) (*common.TextureStagingData, error)
}

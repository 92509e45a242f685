package inventory

import (
	"context"
	"encoding/base64"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/gommon/bytes"
	"github.com/pkg/errors"
)

// MaxImageSize bounds an uploaded thumbnail.
const MaxImageSize = 2 << 20

var (
	ErrImageTooLarge = errors.New("Imagem muito grande (máximo " + bytes.Format(MaxImageSize) + ").")
	ErrNotAnImage    = errors.New("O arquivo selecionado não é uma imagem.")
)

// ImageResult is the outcome of reading an uploaded image.
type ImageResult struct {
	DataURL string
	Err     error
}

// ReadImage reads r to the end and encodes it as a data URL. The read runs
// in its own goroutine and ReadImage waits for it, returning early only when
// ctx is done.
func ReadImage(ctx context.Context, r io.Reader, limit int64) ImageResult {
	if limit <= 0 {
		limit = MaxImageSize
	}
	done := make(chan ImageResult, 1)
	go func() {
		done <- encodeImage(r, limit)
	}()
	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return ImageResult{Err: ctx.Err()}
	}
}

func encodeImage(r io.Reader, limit int64) ImageResult {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return ImageResult{Err: errors.Wrap(err, "read image")}
	}
	if int64(len(data)) > limit {
		return ImageResult{Err: ErrImageTooLarge}
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return ImageResult{Err: ErrNotAnImage}
	}
	return ImageResult{DataURL: "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data)}
}

package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"

	"lumina/internal/domain"
)

// ExportFormat enumerates supported export encodings.
type ExportFormat string

const (
	ExportPNG ExportFormat = "png"
	ExportJPG ExportFormat = "jpg"
)

const jpegQuality = 95

// NormalizeExportFormat sanitizes free-form input into a supported format.
func NormalizeExportFormat(raw string) ExportFormat {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "jpg", "jpeg":
		return ExportJPG
	default:
		return ExportPNG
	}
}

// Exporter converts produced image artifacts into locally saved files,
// scaled to the framing ratio's target dimensions. Failures are classified
// as download errors and never touch workflow state.
type Exporter struct {
	store *FileStore
}

func NewExporter(store *FileStore) *Exporter {
	return &Exporter{store: store}
}

// Export decodes the artifact, scales it to the ratio's export size, encodes
// it in the requested format, and writes it under a timestamped key. JPEG
// exports are matted onto white since the encoding has no alpha.
func (e *Exporter) Export(ctx context.Context, data []byte, ratio domain.FramingRatio, format ExportFormat) (string, error) {
	if e == nil || e.store == nil {
		return "", fmt.Errorf("%w: no export store configured", domain.ErrDownload)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: decode artifact: %v", domain.ErrDownload, err)
	}

	width, height := ratio.ExportSize()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if format == ExportJPG {
		draw.Draw(dst, dst.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case ExportJPG:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	default:
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return "", fmt.Errorf("%w: encode %s: %v", domain.ErrDownload, format, err)
	}

	key := fmt.Sprintf("lumina-jewelry-%d.%s", time.Now().UnixMilli(), format)
	written, err := e.store.Write(ctx, key, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDownload, err)
	}
	return written, nil
}

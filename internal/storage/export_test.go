package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lumina/internal/domain"
)

func artifactPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			img.Set(x, y, color.RGBA{R: 220, G: 190, B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func newTestExporter(t *testing.T) (*Exporter, *FileStore) {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return NewExporter(store), store
}

func TestExportScalesToRatio(t *testing.T) {
	exporter, store := newTestExporter(t)

	key, err := exporter.Export(context.Background(), artifactPNG(t), domain.FramingSquare, ExportPNG)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected key %q", key)
	}

	raw, err := os.ReadFile(filepath.Join(store.BasePath(), key))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 1024 || bounds.Dy() != 1024 {
		t.Fatalf("expected 1024x1024, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestExportJPEG(t *testing.T) {
	exporter, store := newTestExporter(t)

	key, err := exporter.Export(context.Background(), artifactPNG(t), domain.FramingBanner, ExportJPG)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("unexpected key %q", key)
	}

	raw, err := os.ReadFile(filepath.Join(store.BasePath(), key))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	decoded, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 1920 || bounds.Dy() != 1080 {
		t.Fatalf("expected 1920x1080, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestExportRejectsGarbage(t *testing.T) {
	exporter, _ := newTestExporter(t)

	_, err := exporter.Export(context.Background(), []byte("not an image"), domain.FramingSquare, ExportPNG)
	if !errors.Is(err, domain.ErrDownload) {
		t.Fatalf("expected download classification, got %v", err)
	}
}

func TestNormalizeExportFormat(t *testing.T) {
	cases := map[string]ExportFormat{
		"jpg":  ExportJPG,
		"JPEG": ExportJPG,
		"png":  ExportPNG,
		"":     ExportPNG,
		"bmp":  ExportPNG,
	}
	for in, want := range cases {
		if got := NormalizeExportFormat(in); got != want {
			t.Errorf("NormalizeExportFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

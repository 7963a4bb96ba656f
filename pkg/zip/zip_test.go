package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchiveAssets(t *testing.T) {
	raw, err := ArchiveAssets([]Asset{
		{Filename: "sources/ring.png", Data: []byte("ring")},
		{Filename: "result/editorial.png", Data: []byte("image")},
	})
	if err != nil {
		t.Fatalf("ArchiveAssets: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if len(reader.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(reader.File))
	}
	rc, err := reader.File[0].Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(content) != "ring" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestArchiveAssetsDeduplicatesNames(t *testing.T) {
	raw, err := ArchiveAssets([]Asset{
		{Filename: "jewel.png", Data: []byte("a")},
		{Filename: "jewel.png", Data: []byte("b")},
	})
	if err != nil {
		t.Fatalf("ArchiveAssets: %v", err)
	}
	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if len(reader.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(reader.File))
	}
	if reader.File[0].Name == reader.File[1].Name {
		t.Fatalf("expected distinct names, got %q twice", reader.File[0].Name)
	}
}

package domain

import "testing"

func TestNormalizeFramingRatio(t *testing.T) {
	cases := map[string]FramingRatio{
		"1:1":     FramingSquare,
		"16:9":    FramingBanner,
		"4:5":     FramingFeed,
		"9:16":    FramingPortrait,
		"":        FramingPortrait,
		"potrait": FramingPortrait,
	}
	for in, want := range cases {
		if got := NormalizeFramingRatio(in); got != want {
			t.Errorf("NormalizeFramingRatio(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExportSize(t *testing.T) {
	cases := []struct {
		ratio  FramingRatio
		width  int
		height int
	}{
		{FramingSquare, 1024, 1024},
		{FramingBanner, 1920, 1080},
		{FramingFeed, 896, 1200},
		{FramingPortrait, 768, 1376},
	}
	for _, tc := range cases {
		w, h := tc.ratio.ExportSize()
		if w != tc.width || h != tc.height {
			t.Errorf("%s: got %dx%d, want %dx%d", tc.ratio, w, h, tc.width, tc.height)
		}
	}
}

func TestModelModeReference(t *testing.T) {
	if ModelModeAuto.RequiresReference() || ModelModePrompt.RequiresReference() {
		t.Fatal("ai modes must not require a reference")
	}
	if !ModelModeUploadModel.RequiresReference() || !ModelModeUploadSelf.RequiresReference() {
		t.Fatal("upload modes must require a reference")
	}
}

func TestTranslateClassification(t *testing.T) {
	cases := map[Classification]string{
		ClassificationRing:     "Ring",
		ClassificationBracelet: "Bracelet",
		ClassificationNecklace: "Necklace",
		ClassificationEarrings: "Earrings",
		Classification("Tiara"): "Tiara",
	}
	for in, want := range cases {
		if got := TranslateClassification(in); got != want {
			t.Errorf("TranslateClassification(%q) = %q, want %q", in, got, want)
		}
	}
	if KnownClassification(Classification("Tiara")) {
		t.Fatal("expected Tiara to be outside the closed set")
	}
}

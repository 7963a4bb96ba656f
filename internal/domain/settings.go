package domain

import "strings"

// FramingRatio is the requested output aspect ratio.
type FramingRatio string

const (
	FramingSquare   FramingRatio = "1:1"
	FramingPortrait FramingRatio = "9:16"
	FramingBanner   FramingRatio = "16:9"
	FramingFeed     FramingRatio = "4:5"
)

// NormalizeFramingRatio sanitizes free-form input into a supported ratio.
func NormalizeFramingRatio(raw string) FramingRatio {
	switch strings.TrimSpace(raw) {
	case string(FramingSquare):
		return FramingSquare
	case string(FramingBanner):
		return FramingBanner
	case string(FramingFeed):
		return FramingFeed
	default:
		return FramingPortrait
	}
}

// ExportSize returns the target pixel dimensions used when exporting an
// artifact rendered at this ratio.
func (f FramingRatio) ExportSize() (width, height int) {
	switch f {
	case FramingSquare:
		return 1024, 1024
	case FramingBanner:
		return 1920, 1080
	case FramingFeed:
		return 896, 1200
	default:
		return 768, 1376
	}
}

// ModelMode enumerates how the human model in the composition is sourced.
type ModelMode string

const (
	ModelModeAuto        ModelMode = "ai_auto"
	ModelModePrompt      ModelMode = "ai_prompt"
	ModelModeUploadModel ModelMode = "upload_model"
	ModelModeUploadSelf  ModelMode = "upload_self"
)

// RequiresReference reports whether the mode needs an uploaded reference
// subject image before a generation request may be issued.
func (m ModelMode) RequiresReference() bool {
	return m == ModelModeUploadModel || m == ModelModeUploadSelf
}

// NormalizeModelMode sanitizes free-form input into a supported mode.
func NormalizeModelMode(raw string) ModelMode {
	switch ModelMode(strings.TrimSpace(raw)) {
	case ModelModePrompt:
		return ModelModePrompt
	case ModelModeUploadModel:
		return ModelModeUploadModel
	case ModelModeUploadSelf:
		return ModelModeUploadSelf
	default:
		return ModelModeAuto
	}
}

// OutputSettings is the closed configuration record consumed read-only by the
// orchestrator when composing generation requests. Fields are enumerated so
// prompt composition cannot depend on undocumented payload keys.
type OutputSettings struct {
	Mode           ModelMode
	Gender         string
	Ethnicity      string
	AgeRange       string
	EditorialStyle string
	ExtraContext   string
	Reference      *SourceAsset
	Framing        FramingRatio
}

// DefaultOutputSettings mirrors the studio's initial configuration.
func DefaultOutputSettings() OutputSettings {
	return OutputSettings{
		Mode:           ModelModeAuto,
		Gender:         "Mulher",
		Ethnicity:      "European (Brunette)",
		AgeRange:       "25-35",
		EditorialStyle: "Luxo Minimalista",
		Framing:        FramingPortrait,
	}
}

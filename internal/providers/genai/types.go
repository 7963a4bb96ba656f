package genai

import (
	"lumina/internal/domain"
)

// ComposeRequest carries everything needed to build an editorial prompt.
type ComposeRequest struct {
	Classifications []domain.Classification
	Settings        domain.OutputSettings
	Locale          string
	ExtraContext    string
	RequestID       string
}

// InlineImage is a raw image payload attached to a generation request.
type InlineImage struct {
	MIME string
	Data []byte
}

// ImageRequest carries the inputs of an image synthesis call.
type ImageRequest struct {
	Prompt          string
	Assets          []InlineImage
	Classifications []domain.Classification
	Reference       *InlineImage
	Ratio           domain.FramingRatio
	RequestID       string
}

// VideoRequest carries the inputs of a video synthesis job.
type VideoRequest struct {
	Prompt    string
	Image     InlineImage
	RequestID string
}

// ImageArtifact is the normalized result of an image synthesis call.
type ImageArtifact struct {
	MIME string
	Data []byte
}

// VideoArtifact is the normalized result of a completed video job.
type VideoArtifact struct {
	MIME string
	Data []byte
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts,omitempty"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget,omitempty"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

type geminiGenerationConfig struct {
	ThinkingConfig *geminiThinkingConfig `json:"thinkingConfig,omitempty"`
	ImageConfig    *geminiImageConfig    `json:"imageConfig,omitempty"`
}

type geminiGenerateContentRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Status  string `json:"status,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

type veoInstanceImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded,omitempty"`
	MimeType           string `json:"mimeType,omitempty"`
}

type veoInstance struct {
	Prompt string            `json:"prompt"`
	Image  *veoInstanceImage `json:"image,omitempty"`
}

type veoParameters struct {
	SampleCount int    `json:"sampleCount,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type veoGenerateRequest struct {
	Instances  []veoInstance `json:"instances"`
	Parameters veoParameters `json:"parameters"`
}

type veoOperation struct {
	Name     string                `json:"name"`
	Done     bool                  `json:"done"`
	Error    *veoOperationError    `json:"error,omitempty"`
	Response *veoOperationResponse `json:"response,omitempty"`
}

type veoOperationError struct {
	Code    int    `json:"code,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

type veoOperationResponse struct {
	GenerateVideoResponse struct {
		GeneratedSamples []struct {
			Video struct {
				URI string `json:"uri"`
			} `json:"video"`
		} `json:"generatedSamples"`
	} `json:"generateVideoResponse"`
}

package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lumina/internal/domain"
	"lumina/internal/infra"
)

// CredentialProvider supplies the current API key on demand. The client never
// caches the key so a credential update takes effect on the next call.
type CredentialProvider interface {
	APIKey(ctx context.Context) (string, error)
}

// StaticCredential adapts a fixed key into a CredentialProvider.
type StaticCredential string

func (s StaticCredential) APIKey(context.Context) (string, error) {
	return string(s), nil
}

// Options controls how the Gemini client is configured.
type Options struct {
	Credentials     CredentialProvider
	BaseURL         string
	TextModel       string
	ImageModel      string
	VideoModel      string
	ValidationModel string
	PollInterval    time.Duration
	MaxPollAttempts int
	HTTPClient      *http.Client
	Logger          *infra.Logger
}

// Client is a stateless facade over the Gemini generative API covering the
// three studio operations: prompt composition, image synthesis, and
// asynchronous video synthesis. It owns payload shaping, response extraction,
// and error classification.
type Client struct {
	credentials     CredentialProvider
	baseURL         string
	textModel       string
	imageModel      string
	videoModel      string
	validationModel string
	pollInterval    time.Duration
	maxPollAttempts int
	httpClient      *http.Client
	logger          *infra.Logger
}

const (
	defaultBaseURL         = "https://generativelanguage.googleapis.com/v1beta"
	defaultTextModel       = "gemini-3-pro-preview"
	defaultImageModel      = "gemini-3-pro-image-preview"
	defaultVideoModel      = "veo-3.1-fast-generate-preview"
	defaultValidationModel = "gemini-3-flash-preview"
	defaultPollInterval    = 10 * time.Second
	defaultMaxPollAttempts = 60

	composeThinkingBudget = 4096
	imageMIME             = "image/png"
)

// NewClient constructs a Gemini client with sane defaults. Callers may
// provide a nil HTTP client; one without a client-side timeout is created so
// long-running calls are bounded by the caller's context instead.
func NewClient(opts Options) (*Client, error) {
	if opts.Credentials == nil {
		return nil, fmt.Errorf("genai: credential provider is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	maxPollAttempts := opts.MaxPollAttempts
	if maxPollAttempts <= 0 {
		maxPollAttempts = defaultMaxPollAttempts
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		credentials:     opts.Credentials,
		baseURL:         baseURL,
		textModel:       firstNonEmpty(opts.TextModel, defaultTextModel),
		imageModel:      firstNonEmpty(opts.ImageModel, defaultImageModel),
		videoModel:      firstNonEmpty(opts.VideoModel, defaultVideoModel),
		validationModel: firstNonEmpty(opts.ValidationModel, defaultValidationModel),
		pollInterval:    pollInterval,
		maxPollAttempts: maxPollAttempts,
		httpClient:      httpClient,
		logger:          logger,
	}, nil
}

// ComposePrompt builds an editorial generation instruction and asks the text
// model to write the final prompt. An empty response text is returned as-is:
// the caller treats it as a valid but unhelpful result, not a failure.
func (c *Client) ComposePrompt(ctx context.Context, req ComposeRequest) (string, error) {
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: buildComposeInstruction(req)}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			ThinkingConfig: &geminiThinkingConfig{ThinkingBudget: composeThinkingBudget},
		},
	}

	var response geminiGenerateContentResponse
	if err := c.invoke(ctx, generatePath(c.textModel), payload, &response); err != nil {
		return "", err
	}

	text := extractText(response)
	c.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", c.textModel).
		Int("prompt_len", len(text)).
		Msg("genai: composed editorial prompt")
	return text, nil
}

// GenerateImage synthesizes a marketing image from the source assets, an
// optional reference subject, and the composed prompt. The first inline image
// part of the response wins.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageArtifact, error) {
	parts := make([]geminiPart, 0, len(req.Assets)+2)
	for _, asset := range req.Assets {
		parts = append(parts, inlinePart(asset))
	}
	if req.Reference != nil {
		parts = append(parts, inlinePart(*req.Reference))
	}
	parts = append(parts, geminiPart{Text: buildImageInstruction(req.Prompt, req.Classifications)})

	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			ImageConfig: &geminiImageConfig{
				AspectRatio: apiAspectRatio(req.Ratio),
				ImageSize:   "2K",
			},
		},
	}

	var response geminiGenerateContentResponse
	if err := c.invoke(ctx, generatePath(c.imageModel), payload, &response); err != nil {
		return nil, err
	}

	for _, candidate := range response.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, domain.GenerationError("decode inline image")
			}
			mime := part.InlineData.MimeType
			if mime == "" {
				mime = imageMIME
			}
			c.logger.Debug().
				Str("request_id", req.RequestID).
				Str("model", c.imageModel).
				Int("bytes", len(data)).
				Msg("genai: generated image")
			return &ImageArtifact{MIME: mime, Data: data}, nil
		}
	}

	return nil, domain.GenerationError("no image produced")
}

// GenerateVideo launches a long-running Veo job seeded with the base image,
// polls it at the configured interval until completion, and fetches the
// produced bytes. Exceeding the attempt bound is a generation timeout.
func (c *Client) GenerateVideo(ctx context.Context, req VideoRequest) (*VideoArtifact, error) {
	payload := veoGenerateRequest{
		Instances: []veoInstance{{
			Prompt: buildVideoInstruction(req.Prompt),
			Image: &veoInstanceImage{
				BytesBase64Encoded: base64.StdEncoding.EncodeToString(req.Image.Data),
				MimeType:           firstNonEmpty(req.Image.MIME, imageMIME),
			},
		}},
		Parameters: veoParameters{
			SampleCount: 1,
			Resolution:  "720p",
			AspectRatio: string(domain.FramingPortrait),
		},
	}

	var op veoOperation
	path := fmt.Sprintf("/models/%s:predictLongRunning", url.PathEscape(c.videoModel))
	if err := c.invoke(ctx, path, payload, &op); err != nil {
		return nil, err
	}
	if op.Name == "" {
		return nil, domain.GenerationError("no operation handle returned")
	}

	op, err := c.pollOperation(ctx, op)
	if err != nil {
		return nil, err
	}

	uri := ""
	if op.Response != nil && len(op.Response.GenerateVideoResponse.GeneratedSamples) > 0 {
		uri = op.Response.GenerateVideoResponse.GeneratedSamples[0].Video.URI
	}
	if uri == "" {
		return nil, domain.GenerationError("no video produced")
	}

	data, mime, err := c.fetchResult(ctx, uri)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", c.videoModel).
		Int("bytes", len(data)).
		Msg("genai: generated video")
	return &VideoArtifact{MIME: firstNonEmpty(mime, "video/mp4"), Data: data}, nil
}

func (c *Client) pollOperation(ctx context.Context, op veoOperation) (veoOperation, error) {
	for attempt := 0; !op.Done; attempt++ {
		if attempt >= c.maxPollAttempts {
			return op, domain.GenerationError("timeout waiting for video operation")
		}
		select {
		case <-ctx.Done():
			return op, fmt.Errorf("%w: %v", domain.ErrGeneration, ctx.Err())
		case <-time.After(c.pollInterval):
		}
		var next veoOperation
		if err := c.get(ctx, "/"+strings.TrimLeft(op.Name, "/"), &next); err != nil {
			return op, err
		}
		op = next
	}
	if op.Error != nil {
		return op, c.classifyStatus(op.Error.Code, op.Error.Status, op.Error.Message)
	}
	return op, nil
}

// ValidateKey performs a minimal text-generation round trip with the
// candidate key. Any failure, regardless of cause, reports the key invalid.
func (c *Client) ValidateKey(ctx context.Context, key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	probe := &Client{
		credentials:     StaticCredential(key),
		baseURL:         c.baseURL,
		textModel:       c.validationModel,
		httpClient:      c.httpClient,
		logger:          c.logger,
		pollInterval:    c.pollInterval,
		maxPollAttempts: c.maxPollAttempts,
	}
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: "test"}},
		}},
	}
	var response geminiGenerateContentResponse
	if err := probe.invoke(ctx, generatePath(c.validationModel), payload, &response); err != nil {
		c.logger.Debug().Err(err).Msg("genai: credential validation failed")
		return false
	}
	return true
}

func (c *Client) invoke(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.GenerationError("marshal request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return domain.GenerationError("create request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return domain.GenerationError("create request")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	key, err := c.credentials.APIKey(req.Context())
	if err != nil {
		return fmt.Errorf("%w: read credential: %v", domain.ErrGeneration, err)
	}
	if strings.TrimSpace(key) != "" {
		q := req.URL.Query()
		q.Set("key", key)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr geminiErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error.Message != "" {
			return c.classifyStatus(resp.StatusCode, apiErr.Error.Status, apiErr.Error.Message)
		}
		return c.classifyStatus(resp.StatusCode, "", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.GenerationError("decode response")
	}
	return nil
}

// classifyStatus maps a transport-level failure onto the error taxonomy: a
// 403 or a PERMISSION_DENIED status becomes ErrPermissionDenied, everything
// else ErrGeneration.
func (c *Client) classifyStatus(code int, status, message string) error {
	if code == http.StatusForbidden || strings.EqualFold(status, "PERMISSION_DENIED") ||
		strings.Contains(strings.ToLower(message), "permission") {
		return fmt.Errorf("%w: %s", domain.ErrPermissionDenied, strings.TrimSpace(message))
	}
	return fmt.Errorf("%w: status %d: %s", domain.ErrGeneration, code, strings.TrimSpace(message))
}

func (c *Client) fetchResult(ctx context.Context, uri string) ([]byte, string, error) {
	target := uri
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(uri, "/")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", domain.GenerationError("create download request")
	}

	key, err := c.credentials.APIKey(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: read credential: %v", domain.ErrGeneration, err)
	}
	if strings.TrimSpace(key) != "" {
		q := req.URL.Query()
		q.Set("key", key)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, "", c.classifyStatus(resp.StatusCode, "", resp.Status)
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", domain.GenerationError("read video bytes")
	}
	return blob, resp.Header.Get("Content-Type"), nil
}

func generatePath(model string) string {
	return fmt.Sprintf("/models/%s:generateContent", url.PathEscape(model))
}

func inlinePart(img InlineImage) geminiPart {
	return geminiPart{InlineData: &geminiInlineData{
		MimeType: firstNonEmpty(img.MIME, imageMIME),
		Data:     base64.StdEncoding.EncodeToString(img.Data),
	}}
}

func extractText(resp geminiGenerateContentResponse) string {
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

package studio

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"lumina/internal/domain"
	"lumina/internal/infra"
	"lumina/internal/providers/genai"
)

// Generator is the slice of the generation client the session depends on.
type Generator interface {
	ComposePrompt(ctx context.Context, req genai.ComposeRequest) (string, error)
	GenerateImage(ctx context.Context, req genai.ImageRequest) (*genai.ImageArtifact, error)
	GenerateVideo(ctx context.Context, req genai.VideoRequest) (*genai.VideoArtifact, error)
}

// ErrBusy is returned when a trigger arrives while a generation call is in
// flight. Callers should retry after the current call settles.
var ErrBusy = errors.New("session busy")

// Session is the workflow orchestrator for one studio work session. It owns
// the workflow state, the prompt/image/video artifacts, and the current
// error; the asset collection and output settings are mutated through their
// own entry points and read here when composing requests.
//
// Transitions run the external calls synchronously; callers that need the
// suspend-and-poll shape run them on their own goroutine and read Snapshot.
// A busy guard rejects overlapping triggers, so at most one call is in
// flight per session.
type Session struct {
	ID        string
	Assets    *Collection
	CreatedAt time.Time

	generator   Generator
	credentials genai.CredentialProvider
	logger      infra.Logger

	mu               sync.Mutex
	settings         domain.OutputSettings
	locale           string
	state            domain.WorkflowState
	prompt           string
	image            *genai.ImageArtifact
	video            *genai.VideoArtifact
	lastErr          error
	lastErrKey       string
	credentialPrompt bool
	touchedAt        time.Time
}

// NewSession creates a session in the Setup state with default settings.
func NewSession(generator Generator, credentials genai.CredentialProvider, locale string, logger infra.Logger) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.NewString(),
		Assets:      NewCollection(),
		CreatedAt:   now,
		generator:   generator,
		credentials: credentials,
		logger:      logger,
		settings:    domain.DefaultOutputSettings(),
		locale:      locale,
		state:       domain.StateSetup,
		touchedAt:   now,
	}
}

// UpdateSettings replaces the output configuration. Rejected while busy.
func (s *Session) UpdateSettings(settings domain.OutputSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Busy() {
		return ErrBusy
	}
	s.settings = settings
	s.touch()
	return nil
}

// SetLocale updates the session's response locale.
func (s *Session) SetLocale(locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if locale != "" {
		s.locale = locale
	}
}

// Generate runs the full pipeline from Setup: validate, compose the
// editorial prompt, then synthesize the image. On success the session holds
// both artifacts and moves to Result; on failure it returns to Setup with
// the classified error stored.
func (s *Session) Generate(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Busy() {
		s.mu.Unlock()
		return ErrBusy
	}
	s.lastErr = nil
	s.lastErrKey = ""

	assets := s.Assets.Items()
	if key, err := s.validateLocked(ctx, assets); err != nil {
		s.lastErr = err
		s.lastErrKey = key
		s.touch()
		s.mu.Unlock()
		return err
	}

	s.state = domain.StateGeneratingImage
	s.video = nil
	settings := s.settings
	locale := s.locale
	requestID := uuid.NewString()
	s.touch()
	s.mu.Unlock()

	classifications := classificationsOf(assets)
	prompt, err := s.generator.ComposePrompt(ctx, genai.ComposeRequest{
		Classifications: classifications,
		Settings:        settings,
		Locale:          locale,
		ExtraContext:    settings.ExtraContext,
		RequestID:       requestID,
	})
	if err != nil {
		return s.fail(domain.StateSetup, "generation_error", err)
	}

	image, err := s.generator.GenerateImage(ctx, imageRequest(prompt, assets, classifications, settings, requestID))
	if err != nil {
		return s.fail(domain.StateSetup, "generation_error", err)
	}

	s.mu.Lock()
	s.prompt = prompt
	s.image = image
	s.video = nil
	s.state = domain.StateResult
	s.touch()
	s.mu.Unlock()

	s.logger.Info().
		Str("session_id", s.ID).
		Str("request_id", requestID).
		Msg("studio: generated editorial image")
	return nil
}

// Regenerate re-synthesizes the image from the stored prompt, or from
// promptOverride when supplied. The prompt is not recomposed. A failure
// keeps the session at Result so the prior artifact survives.
func (s *Session) Regenerate(ctx context.Context, promptOverride string) error {
	s.mu.Lock()
	if s.state.Busy() {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.state != domain.StateResult {
		err := domain.ValidationError("nothing to regenerate")
		s.lastErr = err
		s.lastErrKey = "session_state"
		s.mu.Unlock()
		return err
	}
	s.lastErr = nil
	s.lastErrKey = ""
	s.state = domain.StateGeneratingImage

	prompt := s.prompt
	if strings.TrimSpace(promptOverride) != "" {
		prompt = promptOverride
	}
	settings := s.settings
	requestID := uuid.NewString()
	s.touch()
	s.mu.Unlock()

	assets := s.Assets.Items()
	image, err := s.generator.GenerateImage(ctx, imageRequest(prompt, assets, classificationsOf(assets), settings, requestID))
	if err != nil {
		return s.fail(domain.StateResult, "regeneration_error", err)
	}

	s.mu.Lock()
	s.image = image
	s.video = nil
	s.state = domain.StateResult
	s.touch()
	s.mu.Unlock()

	s.logger.Info().
		Str("session_id", s.ID).
		Str("request_id", requestID).
		Msg("studio: regenerated image")
	return nil
}

// QuickAction appends the modifier to the current prompt (space separated)
// and regenerates with the updated text. A composed transition, not a new
// state.
func (s *Session) QuickAction(ctx context.Context, modifier string) error {
	modifier = strings.TrimSpace(modifier)
	if modifier == "" {
		return domain.ValidationError("modifier is required")
	}

	s.mu.Lock()
	if s.state.Busy() {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.state != domain.StateResult {
		s.mu.Unlock()
		return domain.ValidationError("nothing to refine")
	}
	updated := strings.TrimSpace(s.prompt + " " + modifier)
	s.prompt = updated
	s.mu.Unlock()

	return s.Regenerate(ctx, updated)
}

// GenerateVideo launches the video synthesis from the current image and
// prompt. A failure keeps the session at Result.
func (s *Session) GenerateVideo(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Busy() {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.state != domain.StateResult || s.image == nil {
		err := domain.ValidationError("no image to animate")
		s.lastErr = err
		s.lastErrKey = "session_state"
		s.mu.Unlock()
		return err
	}
	s.lastErr = nil
	s.lastErrKey = ""
	s.state = domain.StateGeneratingVideo
	prompt := s.prompt
	image := *s.image
	requestID := uuid.NewString()
	s.touch()
	s.mu.Unlock()

	video, err := s.generator.GenerateVideo(ctx, genai.VideoRequest{
		Prompt:    prompt,
		Image:     genai.InlineImage{MIME: image.MIME, Data: image.Data},
		RequestID: requestID,
	})
	if err != nil {
		return s.fail(domain.StateResult, "video_error", err)
	}

	s.mu.Lock()
	s.video = video
	s.state = domain.StateResult
	s.touch()
	s.mu.Unlock()

	s.logger.Info().
		Str("session_id", s.ID).
		Str("request_id", requestID).
		Msg("studio: generated video")
	return nil
}

// EditPrompt overwrites the prompt artifact. No transition, no external
// call.
func (s *Session) EditPrompt(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Busy() {
		return ErrBusy
	}
	s.prompt = text
	s.touch()
	return nil
}

// Reset returns the session to Setup from any state and clears the prompt,
// both artifacts, the uploaded assets, and the stored error.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.StateSetup
	s.prompt = ""
	s.image = nil
	s.video = nil
	s.lastErr = nil
	s.lastErrKey = ""
	s.credentialPrompt = false
	s.Assets.Clear()
	s.touch()
}

// Busy reports whether a generation call is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Busy()
}

// CloseCredentialPrompt lowers the credential re-entry flag, mirroring the
// credential surface being dismissed.
func (s *Session) CloseCredentialPrompt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentialPrompt = false
}

// ImageArtifact returns the current image artifact, if any.
func (s *Session) ImageArtifact() *genai.ImageArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.image == nil {
		return nil
	}
	img := *s.image
	return &img
}

// VideoArtifact returns the current video artifact, if any.
func (s *Session) VideoArtifact() *genai.VideoArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.video == nil {
		return nil
	}
	vid := *s.video
	return &vid
}

// Settings returns the current output configuration.
func (s *Session) Settings() domain.OutputSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// TouchedAt reports the last mutation time, used for idle expiry.
func (s *Session) TouchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

// validateLocked checks the Generate preconditions and reports the notice
// key of the first violation. The caller holds the session mutex. A missing
// credential additionally raises the credential prompt flag.
func (s *Session) validateLocked(ctx context.Context, assets []domain.SourceAsset) (string, error) {
	key, err := s.credentials.APIKey(ctx)
	if err != nil || strings.TrimSpace(key) == "" {
		s.credentialPrompt = true
		return "credential_missing", domain.ValidationError("credential missing")
	}
	if len(assets) == 0 {
		return "no_assets", domain.ValidationError("no assets uploaded")
	}
	for _, asset := range assets {
		if asset.Classification == domain.ClassificationNone {
			return "unclassified_asset", domain.ValidationError("unclassified asset")
		}
	}
	if s.settings.Mode.RequiresReference() && s.settings.Reference == nil {
		return "reference_missing", domain.ValidationError("reference image missing")
	}
	return "", nil
}

// fail records a classified failure, restores the given stable state, and
// raises the credential prompt on permission-classified errors. fallbackKey
// names the notice shown for non-permission failures of this transition.
func (s *Session) fail(restore domain.WorkflowState, fallbackKey string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = restore
	s.lastErr = err
	s.lastErrKey = fallbackKey
	if domain.IsPermissionDenied(err) {
		s.credentialPrompt = true
		s.lastErrKey = "permission_denied"
	}
	s.touch()
	s.logger.Warn().
		Str("session_id", s.ID).
		Err(err).
		Msg("studio: generation failed")
	return err
}

func (s *Session) touch() {
	s.touchedAt = time.Now()
}

func classificationsOf(assets []domain.SourceAsset) []domain.Classification {
	out := make([]domain.Classification, 0, len(assets))
	for _, asset := range assets {
		out = append(out, asset.Classification)
	}
	return out
}

func imageRequest(prompt string, assets []domain.SourceAsset, classifications []domain.Classification, settings domain.OutputSettings, requestID string) genai.ImageRequest {
	parts := make([]genai.InlineImage, 0, len(assets))
	for _, asset := range assets {
		parts = append(parts, genai.InlineImage{MIME: asset.MIME, Data: asset.Data})
	}
	var reference *genai.InlineImage
	if settings.Reference != nil {
		reference = &genai.InlineImage{MIME: settings.Reference.MIME, Data: settings.Reference.Data}
	}
	return genai.ImageRequest{
		Prompt:          prompt,
		Assets:          parts,
		Classifications: classifications,
		Reference:       reference,
		Ratio:           settings.Framing,
		RequestID:       requestID,
	}
}

// Snapshot is the read model served to clients.
type Snapshot struct {
	ID                   string
	State                domain.WorkflowState
	Prompt               string
	ImageDataURI         string
	VideoDataURI         string
	Error                string
	ErrorKind            string
	ErrorKey             string
	CredentialPromptOpen bool
	Assets               []domain.SourceAsset
	Settings             domain.OutputSettings
	Locale               string
}

// Snapshot captures the session state for rendering. Artifact bytes are
// rendered as data URIs, matching how the studio displays results.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:                   s.ID,
		State:                s.state,
		Prompt:               s.prompt,
		CredentialPromptOpen: s.credentialPrompt,
		Assets:               s.Assets.Items(),
		Settings:             s.settings,
		Locale:               s.locale,
	}
	if s.image != nil {
		snap.ImageDataURI = dataURI(s.image.MIME, s.image.Data)
	}
	if s.video != nil {
		snap.VideoDataURI = dataURI(s.video.MIME, s.video.Data)
	}
	if s.lastErr != nil {
		snap.Error = s.lastErr.Error()
		snap.ErrorKind = errorKind(s.lastErr)
		snap.ErrorKey = s.lastErrKey
	}
	return snap
}

func errorKind(err error) string {
	switch {
	case domain.IsValidation(err):
		return "validation"
	case domain.IsPermissionDenied(err):
		return "permission_denied"
	case errors.Is(err, domain.ErrDownload):
		return "download"
	default:
		return "generation"
	}
}

func dataURI(mime string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

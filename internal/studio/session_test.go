package studio

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"lumina/internal/domain"
	"lumina/internal/infra"
	"lumina/internal/providers/genai"
)

type fakeGenerator struct {
	mu           sync.Mutex
	prompt       string
	composeErr   error
	image        *genai.ImageArtifact
	imageErr     error
	video        *genai.VideoArtifact
	videoErr     error
	imageCalls   int
	videoCalls   int
	lastImageReq genai.ImageRequest

	block   chan struct{}
	started chan struct{}
}

func (f *fakeGenerator) ComposePrompt(ctx context.Context, req genai.ComposeRequest) (string, error) {
	if f.composeErr != nil {
		return "", f.composeErr
	}
	if f.prompt == "" {
		return "an editorial prompt", nil
	}
	return f.prompt, nil
}

func (f *fakeGenerator) GenerateImage(ctx context.Context, req genai.ImageRequest) (*genai.ImageArtifact, error) {
	f.mu.Lock()
	f.imageCalls++
	f.lastImageReq = req
	block := f.block
	started := f.started
	f.mu.Unlock()
	if started != nil {
		close(started)
		f.mu.Lock()
		f.started = nil
		f.mu.Unlock()
	}
	if block != nil {
		<-block
	}
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	if f.image != nil {
		return f.image, nil
	}
	return &genai.ImageArtifact{MIME: "image/png", Data: []byte("png-bytes")}, nil
}

func (f *fakeGenerator) GenerateVideo(ctx context.Context, req genai.VideoRequest) (*genai.VideoArtifact, error) {
	f.mu.Lock()
	f.videoCalls++
	f.mu.Unlock()
	if f.videoErr != nil {
		return nil, f.videoErr
	}
	if f.video != nil {
		return f.video, nil
	}
	return &genai.VideoArtifact{MIME: "video/mp4", Data: []byte("mp4-bytes")}, nil
}

func testLogger() infra.Logger {
	return infra.Logger(zerolog.New(io.Discard))
}

func newTestSession(gen Generator, key string) *Session {
	return NewSession(gen, genai.StaticCredential(key), "en", testLogger())
}

func addClassifiedAsset(t *testing.T, s *Session) domain.SourceAsset {
	t.Helper()
	asset, err := s.Assets.Add("ring.png", "image/png", []byte("jewel"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Assets.SetClassification(asset.ID, domain.ClassificationRing); err != nil {
		t.Fatalf("SetClassification: %v", err)
	}
	return asset
}

func TestGenerateHappyPath(t *testing.T) {
	gen := &fakeGenerator{prompt: "golden ring editorial"}
	s := newTestSession(gen, "key")
	addClassifiedAsset(t, s)

	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	snap := s.Snapshot()
	if snap.State != domain.StateResult {
		t.Fatalf("expected result state, got %s", snap.State)
	}
	if snap.Prompt != "golden ring editorial" {
		t.Fatalf("unexpected prompt %q", snap.Prompt)
	}
	if !strings.HasPrefix(snap.ImageDataURI, "data:image/png;base64,") {
		t.Fatalf("unexpected image uri %q", snap.ImageDataURI)
	}
	if snap.VideoDataURI != "" {
		t.Fatal("expected no video yet")
	}
	if snap.Error != "" {
		t.Fatalf("unexpected error %q", snap.Error)
	}
}

func TestGenerateRequiresCredential(t *testing.T) {
	s := newTestSession(&fakeGenerator{}, "")
	addClassifiedAsset(t, s)

	err := s.Generate(context.Background())
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	snap := s.Snapshot()
	if snap.State != domain.StateSetup {
		t.Fatalf("expected setup state, got %s", snap.State)
	}
	if !snap.CredentialPromptOpen {
		t.Fatal("expected credential prompt to open")
	}
	if snap.ErrorKey != "credential_missing" {
		t.Fatalf("unexpected error key %q", snap.ErrorKey)
	}
}

func TestGenerateRequiresAssets(t *testing.T) {
	s := newTestSession(&fakeGenerator{}, "key")

	err := s.Generate(context.Background())
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if key := s.Snapshot().ErrorKey; key != "no_assets" {
		t.Fatalf("unexpected error key %q", key)
	}
}

func TestGenerateRequiresClassifications(t *testing.T) {
	s := newTestSession(&fakeGenerator{}, "key")
	if _, err := s.Assets.Add("mystery.png", "image/png", []byte("jewel")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	err := s.Generate(context.Background())
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if key := s.Snapshot().ErrorKey; key != "unclassified_asset" {
		t.Fatalf("unexpected error key %q", key)
	}
}

func TestGenerateRequiresReferenceForUploadModes(t *testing.T) {
	s := newTestSession(&fakeGenerator{}, "key")
	addClassifiedAsset(t, s)

	settings := domain.DefaultOutputSettings()
	settings.Mode = domain.ModelModeUploadModel
	if err := s.UpdateSettings(settings); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	err := s.Generate(context.Background())
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if key := s.Snapshot().ErrorKey; key != "reference_missing" {
		t.Fatalf("unexpected error key %q", key)
	}
}

func TestGenerateFailureReturnsToSetup(t *testing.T) {
	gen := &fakeGenerator{imageErr: domain.GenerationError("upstream down")}
	s := newTestSession(gen, "key")
	addClassifiedAsset(t, s)

	err := s.Generate(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	snap := s.Snapshot()
	if snap.State != domain.StateSetup {
		t.Fatalf("expected setup state, got %s", snap.State)
	}
	if snap.ImageDataURI != "" {
		t.Fatal("expected no image after failure")
	}
	if snap.ErrorKey != "generation_error" {
		t.Fatalf("unexpected error key %q", snap.ErrorKey)
	}
}

func TestPermissionFailureOpensCredentialPrompt(t *testing.T) {
	gen := &fakeGenerator{imageErr: domain.ErrPermissionDenied}
	s := newTestSession(gen, "key")
	addClassifiedAsset(t, s)

	if err := s.Generate(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	snap := s.Snapshot()
	if !snap.CredentialPromptOpen {
		t.Fatal("expected credential prompt to open")
	}
	if snap.ErrorKind != "permission_denied" {
		t.Fatalf("unexpected error kind %q", snap.ErrorKind)
	}
	if snap.ErrorKey != "permission_denied" {
		t.Fatalf("unexpected error key %q", snap.ErrorKey)
	}

	s.CloseCredentialPrompt()
	if s.Snapshot().CredentialPromptOpen {
		t.Fatal("expected credential prompt to close")
	}
}

func TestRegenerateFailureKeepsResult(t *testing.T) {
	gen := &fakeGenerator{prompt: "first prompt"}
	s := newTestSession(gen, "key")
	addClassifiedAsset(t, s)
	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	gen.imageErr = domain.GenerationError("flaky")
	err := s.Regenerate(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}

	snap := s.Snapshot()
	if snap.State != domain.StateResult {
		t.Fatalf("expected result state, got %s", snap.State)
	}
	if snap.ImageDataURI == "" {
		t.Fatal("expected prior image to survive the failed regeneration")
	}
	if snap.Prompt != "first prompt" {
		t.Fatalf("unexpected prompt %q", snap.Prompt)
	}
	if snap.ErrorKey != "regeneration_error" {
		t.Fatalf("unexpected error key %q", snap.ErrorKey)
	}
}

func TestRegenerateInvalidatesVideo(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestSession(gen, "key")
	addClassifiedAsset(t, s)
	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := s.GenerateVideo(context.Background()); err != nil {
		t.Fatalf("GenerateVideo: %v", err)
	}
	if s.Snapshot().VideoDataURI == "" {
		t.Fatal("expected video after generation")
	}

	if err := s.Regenerate(context.Background(), ""); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if s.Snapshot().VideoDataURI != "" {
		t.Fatal("expected regeneration to drop the stale video")
	}
}

func TestRegenerateWithoutResult(t *testing.T) {
	s := newTestSession(&fakeGenerator{}, "key")
	err := s.Regenerate(context.Background(), "")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVideoFailureKeepsResult(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestSession(gen, "key")
	addClassifiedAsset(t, s)
	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	gen.videoErr = domain.GenerationError("veo unavailable")
	if err := s.GenerateVideo(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	snap := s.Snapshot()
	if snap.State != domain.StateResult {
		t.Fatalf("expected result state, got %s", snap.State)
	}
	if snap.ImageDataURI == "" {
		t.Fatal("expected image to survive the failed video call")
	}
	if snap.ErrorKey != "video_error" {
		t.Fatalf("unexpected error key %q", snap.ErrorKey)
	}
}

func TestQuickActionAppendsModifier(t *testing.T) {
	gen := &fakeGenerator{prompt: "base prompt"}
	s := newTestSession(gen, "key")
	addClassifiedAsset(t, s)
	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if err := s.QuickAction(context.Background(), "Premium Carrara marble surface background."); err != nil {
		t.Fatalf("QuickAction: %v", err)
	}

	snap := s.Snapshot()
	want := "base prompt Premium Carrara marble surface background."
	if snap.Prompt != want {
		t.Fatalf("unexpected prompt %q", snap.Prompt)
	}
	gen.mu.Lock()
	got := gen.lastImageReq.Prompt
	gen.mu.Unlock()
	if got != want {
		t.Fatalf("expected regeneration with modified prompt, got %q", got)
	}
}

func TestBusyGuardRejectsOverlappingTriggers(t *testing.T) {
	gen := &fakeGenerator{
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	s := newTestSession(gen, "key")
	addClassifiedAsset(t, s)

	done := make(chan error, 1)
	go func() { done <- s.Generate(context.Background()) }()
	<-gen.started

	if !s.Busy() {
		t.Fatal("expected session to report busy")
	}
	if err := s.Generate(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if err := s.GenerateVideo(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if err := s.UpdateSettings(domain.DefaultOutputSettings()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(gen.block)
	if err := <-done; err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if s.Busy() {
		t.Fatal("expected session to settle")
	}
	gen.mu.Lock()
	calls := gen.imageCalls
	gen.mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected a single image call, got %d", calls)
	}
}

func TestPromptEditFeedsRegeneration(t *testing.T) {
	gen := &fakeGenerator{prompt: "composed"}
	s := newTestSession(gen, "key")
	addClassifiedAsset(t, s)
	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if err := s.EditPrompt("hand written prompt"); err != nil {
		t.Fatalf("EditPrompt: %v", err)
	}
	if err := s.Regenerate(context.Background(), ""); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}

	gen.mu.Lock()
	got := gen.lastImageReq.Prompt
	gen.mu.Unlock()
	if got != "hand written prompt" {
		t.Fatalf("expected edited prompt, got %q", got)
	}
}

func TestResetClearsEverything(t *testing.T) {
	gen := &fakeGenerator{}
	s := newTestSession(gen, "key")
	addClassifiedAsset(t, s)
	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := s.GenerateVideo(context.Background()); err != nil {
		t.Fatalf("GenerateVideo: %v", err)
	}

	s.Reset()

	snap := s.Snapshot()
	if snap.State != domain.StateSetup {
		t.Fatalf("expected setup state, got %s", snap.State)
	}
	if snap.Prompt != "" || snap.ImageDataURI != "" || snap.VideoDataURI != "" {
		t.Fatal("expected artifacts to be cleared")
	}
	if len(snap.Assets) != 0 {
		t.Fatalf("expected assets to be cleared, got %d", len(snap.Assets))
	}
	if snap.Error != "" || snap.CredentialPromptOpen {
		t.Fatal("expected error and credential prompt to be cleared")
	}
}

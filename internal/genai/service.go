package genai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

const (
	// FallbackDescription stands in whenever text generation fails.
	FallbackDescription = "Exclusive streetwear crafted for the bold."

	// FallbackStory stands in whenever the brand manifesto fails to generate.
	FallbackStory = "Forged in the shadows of history..."
)

// Service wraps the raw generators with the storefront's degrade-gracefully
// policy and a bounded poller for video jobs. A generation failure yields a
// canned fallback, never an error the shopper sees.
type Service struct {
	text  TextGenerator
	video VideoBackend

	pollInterval time.Duration
	maxPolls     int
}

func NewService(text TextGenerator, video VideoBackend) *Service {
	return &Service{
		text:         text,
		video:        video,
		pollInterval: 5 * time.Second,
		maxPolls:     60,
	}
}

// Describe returns generated product copy, or the fallback when the
// generator errors out.
func (s *Service) Describe(ctx context.Context, name, category string) string {
	text, err := s.text.Describe(ctx, name, category)
	if err != nil || text == "" {
		log.Printf("genai: description generation failed for %q: %v", name, err)
		return FallbackDescription
	}
	return text
}

// BrandStory returns the generated brand manifesto, or the fallback.
func (s *Service) BrandStory(ctx context.Context) string {
	story, err := s.text.BrandStory(ctx)
	if err != nil || story == "" {
		log.Printf("genai: brand story generation failed: %v", err)
		return FallbackStory
	}
	return story
}

// GenerateVideo runs one video job to completion. Polling is bounded:
// at most maxPolls ticks, cancellable through ctx, and a single
// re-authentication round when the backend loses track of the credential.
func (s *Service) GenerateVideo(ctx context.Context, prompt string) (string, error) {
	url, err := s.runVideoJob(ctx, prompt)
	if err == nil {
		return url, nil
	}
	if !errors.Is(err, ErrEntityNotFound) {
		return "", err
	}

	// One re-auth round only; a second not-found is a real failure.
	log.Printf("genai: video backend lost credential, re-authenticating")
	if authErr := s.video.Reauthenticate(ctx); authErr != nil {
		return "", fmt.Errorf("re-authentication failed: %w", authErr)
	}
	return s.runVideoJob(ctx, prompt)
}

func (s *Service) runVideoJob(ctx context.Context, prompt string) (string, error) {
	op, err := s.video.StartVideo(ctx, prompt)
	if err != nil {
		return "", err
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for polls := 0; !op.Done; polls++ {
		if polls >= s.maxPolls {
			return "", fmt.Errorf("%w: gave up after %d polls", ErrGenerationFailed, s.maxPolls)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
		op, err = s.video.PollVideo(ctx, op)
		if err != nil {
			return "", err
		}
	}

	if op.VideoURL == "" {
		return "", ErrGenerationFailed
	}
	return op.VideoURL, nil
}

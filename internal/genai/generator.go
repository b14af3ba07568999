package genai

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrEntityNotFound is the backend's signature for a key that cannot
	// see the video model; one re-authentication round is worth a retry.
	ErrEntityNotFound = errors.New("requested entity was not found")

	ErrGenerationFailed = errors.New("video generation failed")
)

// TextGenerator produces marketing copy. Callers supply their own
// fallback; a failed generation must never break the storefront.
type TextGenerator interface {
	Describe(ctx context.Context, name, category string) (string, error)
	BrandStory(ctx context.Context) (string, error)
}

// VideoOperation tracks a long-running generation job on the backend.
type VideoOperation struct {
	ID       string
	Done     bool
	VideoURL string
}

// VideoBackend is the raw long-running video API: start a job, poll it,
// and re-authenticate when the backend stops recognizing the credential.
type VideoBackend interface {
	StartVideo(ctx context.Context, prompt string) (*VideoOperation, error)
	PollVideo(ctx context.Context, op *VideoOperation) (*VideoOperation, error)
	Reauthenticate(ctx context.Context) error
}

// StubTextGenerator returns deterministic copy for local runs and tests.
type StubTextGenerator struct{}

func (StubTextGenerator) Describe(_ context.Context, name, category string) (string, error) {
	return fmt.Sprintf("%s. %s forged for the void. Heavyweight legacy, woven eternal.", name, category), nil
}

func (StubTextGenerator) BrandStory(context.Context) (string, error) {
	return "Forged in the shadows of history. The N.B. Protocol weaves data into fabric.", nil
}

// StubVideoBackend completes a job after a configurable number of polls.
type StubVideoBackend struct {
	// PollsUntilDone is how many PollVideo calls a job needs before Done
	PollsUntilDone int

	polls map[string]int
}

func (b *StubVideoBackend) StartVideo(_ context.Context, _ string) (*VideoOperation, error) {
	if b.polls == nil {
		b.polls = make(map[string]int)
	}
	op := &VideoOperation{ID: uuid.NewString()}
	b.polls[op.ID] = 0
	return op, nil
}

func (b *StubVideoBackend) PollVideo(_ context.Context, op *VideoOperation) (*VideoOperation, error) {
	b.polls[op.ID]++
	if b.polls[op.ID] >= b.PollsUntilDone {
		return &VideoOperation{
			ID:       op.ID,
			Done:     true,
			VideoURL: "https://cdn.palstyle.example/video/" + op.ID + ".mp4",
		}, nil
	}
	return op, nil
}

func (b *StubVideoBackend) Reauthenticate(context.Context) error {
	return nil
}

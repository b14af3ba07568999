package genai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingText struct {
	err error
}

func (f failingText) Describe(context.Context, string, string) (string, error) {
	return "", f.err
}

func (f failingText) BrandStory(context.Context) (string, error) {
	return "", f.err
}

type scriptedBackend struct {
	startErrs []error
	startN    int

	pollsUntilDone int
	pollErr        error
	polls          int

	reauths   int
	reauthErr error

	emptyURL bool
}

func (b *scriptedBackend) StartVideo(context.Context, string) (*VideoOperation, error) {
	defer func() { b.startN++ }()
	if b.startN < len(b.startErrs) && b.startErrs[b.startN] != nil {
		return nil, b.startErrs[b.startN]
	}
	return &VideoOperation{ID: "op-1"}, nil
}

func (b *scriptedBackend) PollVideo(_ context.Context, op *VideoOperation) (*VideoOperation, error) {
	if b.pollErr != nil {
		return nil, b.pollErr
	}
	b.polls++
	if b.polls >= b.pollsUntilDone {
		url := "https://cdn.palstyle.example/video/op-1.mp4"
		if b.emptyURL {
			url = ""
		}
		return &VideoOperation{ID: op.ID, Done: true, VideoURL: url}, nil
	}
	return op, nil
}

func (b *scriptedBackend) Reauthenticate(context.Context) error {
	b.reauths++
	return b.reauthErr
}

func fastService(text TextGenerator, video VideoBackend) *Service {
	s := NewService(text, video)
	s.pollInterval = time.Millisecond
	s.maxPolls = 10
	return s
}

func TestDescribe_FallsBackOnError(t *testing.T) {
	svc := fastService(failingText{errors.New("quota exceeded")}, nil)

	got := svc.Describe(context.Background(), "Silver Chain", "Accessories")
	assert.Equal(t, FallbackDescription, got)

	assert.Equal(t, FallbackStory, svc.BrandStory(context.Background()))
}

func TestDescribe_UsesGeneratedCopy(t *testing.T) {
	svc := fastService(StubTextGenerator{}, nil)

	got := svc.Describe(context.Background(), "Silver Chain", "Accessories")
	assert.Contains(t, got, "Silver Chain")
}

func TestGenerateVideo_PollsToCompletion(t *testing.T) {
	backend := &scriptedBackend{pollsUntilDone: 3}
	svc := fastService(StubTextGenerator{}, backend)

	url, err := svc.GenerateVideo(context.Background(), "dark luxury runway")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.palstyle.example/video/op-1.mp4", url)
	assert.Equal(t, 3, backend.polls)
}

func TestGenerateVideo_BoundedPolling(t *testing.T) {
	backend := &scriptedBackend{pollsUntilDone: 100}
	svc := fastService(StubTextGenerator{}, backend)

	_, err := svc.GenerateVideo(context.Background(), "dark luxury runway")
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.LessOrEqual(t, backend.polls, svc.maxPolls)
}

func TestGenerateVideo_ContextCancellation(t *testing.T) {
	backend := &scriptedBackend{pollsUntilDone: 100}
	svc := fastService(StubTextGenerator{}, backend)
	svc.pollInterval = 50 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.GenerateVideo(ctx, "dark luxury runway")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerateVideo_SingleReauthRound(t *testing.T) {
	backend := &scriptedBackend{
		startErrs:      []error{ErrEntityNotFound},
		pollsUntilDone: 1,
	}
	svc := fastService(StubTextGenerator{}, backend)

	url, err := svc.GenerateVideo(context.Background(), "dark luxury runway")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.Equal(t, 1, backend.reauths)
}

func TestGenerateVideo_SecondNotFoundIsFatal(t *testing.T) {
	backend := &scriptedBackend{
		startErrs: []error{ErrEntityNotFound, ErrEntityNotFound},
	}
	svc := fastService(StubTextGenerator{}, backend)

	_, err := svc.GenerateVideo(context.Background(), "dark luxury runway")
	require.ErrorIs(t, err, ErrEntityNotFound)
	assert.Equal(t, 1, backend.reauths)
}

func TestGenerateVideo_ReauthFailure(t *testing.T) {
	backend := &scriptedBackend{
		startErrs: []error{ErrEntityNotFound},
		reauthErr: errors.New("key selection aborted"),
	}
	svc := fastService(StubTextGenerator{}, backend)

	_, err := svc.GenerateVideo(context.Background(), "dark luxury runway")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "re-authentication failed")
}

func TestGenerateVideo_EmptyURLIsFailure(t *testing.T) {
	backend := &scriptedBackend{pollsUntilDone: 1, emptyURL: true}
	svc := fastService(StubTextGenerator{}, backend)

	_, err := svc.GenerateVideo(context.Background(), "dark luxury runway")
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestStubVideoBackend(t *testing.T) {
	backend := &StubVideoBackend{PollsUntilDone: 2}
	svc := fastService(StubTextGenerator{}, backend)

	url, err := svc.GenerateVideo(context.Background(), "dark luxury runway")
	require.NoError(t, err)
	assert.Contains(t, url, ".mp4")
}

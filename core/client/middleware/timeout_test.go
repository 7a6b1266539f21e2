package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leofalp/mmdraft/providers/ai"
)

// makeSendFunc returns a SendFunc that sleeps for the given duration before
// returning, simulating a slow provider.
func makeSendFunc(sleep time.Duration, resp *ai.ChatResponse, err error) func(context.Context, ai.ChatRequest) (*ai.ChatResponse, error) {
	return func(ctx context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		select {
		case <-time.After(sleep):
			return resp, err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func TestTimeoutMiddleware_CompletesBeforeTimeout(t *testing.T) {
	fast := makeSendFunc(0, &ai.ChatResponse{Content: "ok"}, nil)

	resp, err := NewTimeoutMiddleware(100 * time.Millisecond)(fast)(context.Background(), ai.ChatRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "ok" {
		t.Errorf("expected 'ok', got %q", resp.Content)
	}
}

func TestTimeoutMiddleware_ExceedsTimeout(t *testing.T) {
	slow := makeSendFunc(200*time.Millisecond, nil, nil)

	_, err := NewTimeoutMiddleware(20 * time.Millisecond)(slow)(context.Background(), ai.ChatRequest{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

// TestTimeoutMiddleware_ParentDeadlineWins verifies that a shorter caller
// deadline is not extended by the middleware.
func TestTimeoutMiddleware_ParentDeadlineWins(t *testing.T) {
	var deadline time.Time
	next := func(ctx context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		deadline, _ = ctx.Deadline()
		return &ai.ChatResponse{}, nil
	}

	parent, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	parentDeadline, _ := parent.Deadline()

	if _, err := NewTimeoutMiddleware(time.Hour)(next)(parent, ai.ChatRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deadline.Equal(parentDeadline) {
		t.Errorf("expected parent deadline %v, got %v", parentDeadline, deadline)
	}
}

package ai

import (
	"context"
	"testing"
)

func TestOverviewFromContext_Missing(t *testing.T) {
	if OverviewFromContext(context.Background()) != nil {
		t.Error("expected nil overview on a bare context")
	}
}

func TestOverview_RoundTripAndUsage(t *testing.T) {
	overview := &Overview{}
	ctx := overview.ToContext(context.Background())

	got := OverviewFromContext(ctx)
	if got != overview {
		t.Fatal("expected the same overview back from the context")
	}

	got.AddRequest(&ChatRequest{Model: "m"})
	got.AddResponse(&ChatResponse{Content: "a", Usage: &Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}})
	got.AddResponse(&ChatResponse{Content: "b"})

	if len(overview.Requests) != 1 || len(overview.Responses) != 2 {
		t.Errorf("unexpected counts: %d requests, %d responses", len(overview.Requests), len(overview.Responses))
	}
	if overview.LastResponse == nil || overview.LastResponse.Content != "b" {
		t.Errorf("expected last response b, got %+v", overview.LastResponse)
	}
	if overview.TotalUsage.TotalTokens != 15 || overview.TotalUsage.PromptTokens != 10 {
		t.Errorf("unexpected usage %+v", overview.TotalUsage)
	}
}

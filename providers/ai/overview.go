package ai

import "context"

type overviewContextKey struct{}

// Overview accumulates the requests and responses exchanged during one
// invocation so the caller can log a summary once the draft is produced.
type Overview struct {
	LastResponse *ChatResponse   `json:"last_response,omitempty"`
	Requests     []*ChatRequest  `json:"requests"`
	Responses    []*ChatResponse `json:"responses"`
	TotalUsage   Usage           `json:"total_usage"`
}

// OverviewFromContext returns the Overview stored in ctx, or nil.
func OverviewFromContext(ctx context.Context) *Overview {
	if ctx == nil {
		return nil
	}
	overview, _ := ctx.Value(overviewContextKey{}).(*Overview)
	return overview
}

// ToContext returns a copy of ctx carrying o.
func (o *Overview) ToContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, overviewContextKey{}, o)
}

func (o *Overview) IncludeUsage(usage *Usage) {
	if usage == nil {
		return
	}
	o.TotalUsage.PromptTokens += usage.PromptTokens
	o.TotalUsage.CompletionTokens += usage.CompletionTokens
	o.TotalUsage.TotalTokens += usage.TotalTokens
}

func (o *Overview) AddRequest(request *ChatRequest) {
	o.Requests = append(o.Requests, request)
}

func (o *Overview) AddResponse(response *ChatResponse) {
	o.Responses = append(o.Responses, response)
	o.LastResponse = response
	o.IncludeUsage(response.Usage)
}

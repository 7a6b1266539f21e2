package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leofalp/mmdraft/providers/ai"
	"github.com/leofalp/mmdraft/providers/observability"
)

// HeaderOption is an extra request header set by [DoPostSync].
type HeaderOption struct {
	Key   string
	Value string
}

// DoPostSync performs a synchronous HTTP POST request with JSON body and parses the response.
// It records span events when a span is present in ctx, sets the Authorization
// bearer header when apiKey is non-empty, and applies headers in order.
//
// Error Handling Strategy:
//   - Transport failures and non-2xx statuses wrap [ai.ErrNetwork]; the
//     provider's error message is extracted on a best-effort basis
//   - 2xx bodies are decoded strictly; anything that is not valid JSON for
//     OutputStruct wraps [ai.ErrResponseShape] and includes a preview
//   - Response body close errors are logged but don't override primary errors
func DoPostSync[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*http.Response, *OutputStruct, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPRequestPrepared,
			observability.String(observability.AttrHTTPMethod, http.MethodPost),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPRequestBodySize, len(jsonBody)),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		if span != nil {
			span.AddEvent(observability.EventHTTPRequestError,
				observability.Error(err),
				observability.Duration(observability.AttrHTTPDuration, requestDuration),
			)
		}
		return nil, nil, fmt.Errorf("%w: error sending request: %w", ai.ErrNetwork, err)
	}
	defer func(Body io.ReadCloser) {
		if closeErr := Body.Close(); closeErr != nil {
			observability.ObserverFromContext(ctx).Warn(ctx, "failed to close response body",
				observability.Error(closeErr),
				observability.String(observability.AttrHTTPURL, url),
			)
		}
	}(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("%w: error reading response body: %w", ai.ErrNetwork, err)
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPResponse,
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration(observability.AttrHTTPDuration, requestDuration),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		if msg := providerErrorMessage(respBody); msg != "" {
			return res, nil, fmt.Errorf("%w: non-2xx status %d: %s", ai.ErrNetwork, res.StatusCode, msg)
		}
		return res, nil, fmt.Errorf("%w: non-2xx status %d: %s", ai.ErrNetwork, res.StatusCode, TruncateStringDefault(string(respBody)))
	}

	var resStruct OutputStruct
	if err := json.Unmarshal(respBody, &resStruct); err != nil {
		return res, nil, fmt.Errorf("%w: error unmarshaling LLM response body (status %d): %w\nResponse preview: %s", ai.ErrResponseShape, res.StatusCode, err, TruncateStringDefault(string(respBody)))
	}

	return res, &resStruct, nil
}

// errorEnvelope is the error body shared by Anthropic and OpenAI:
// {"error":{"type":"...","message":"..."}}.
type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// providerErrorMessage pulls "type: message" out of an error body. Proxies
// and gateways often cut these bodies short, so the JSON is repaired first.
// It returns "" when nothing usable is found.
func providerErrorMessage(body []byte) string {
	envelope, err := ParseStringAs[errorEnvelope](string(body))
	if err != nil || envelope.Error.Message == "" {
		return ""
	}
	if envelope.Error.Type == "" {
		return envelope.Error.Message
	}
	return envelope.Error.Type + ": " + envelope.Error.Message
}

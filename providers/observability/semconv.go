package observability

// Attribute keys, span names and event names shared by every package that
// logs or traces. Keys are dotted and lowercase so compact and JSON output
// stay greppable across invocations appended to the same log file.

// Invocation and mail host.
const (
	AttrInvocationID     = "invocation_id"
	AttrEmailSubject     = "email.subject"
	AttrEmailTo          = "email.to"
	AttrEmailFrom        = "email.from"
	AttrEmailContentType = "email.content_type"
	AttrEmailBodyLength  = "email.body.length" // decoded bytes
	AttrPromptLength     = "prompt.length"
	AttrGeneratedText    = "reply.text"
)

// Provider call.
const (
	AttrLLMProvider     = "llm.provider"
	AttrLLMModel        = "llm.model"
	AttrLLMEndpoint     = "llm.endpoint"
	AttrLLMResponseID   = "llm.response.id"
	AttrLLMFinishReason = "llm.finish_reason"
	AttrLLMRequests     = "llm.requests" // provider calls made by one invocation

	// #nosec G101 -- token counts, not credentials
	AttrLLMMaxTokens        = "llm.max_tokens"
	AttrLLMTokensPrompt     = "llm.tokens.prompt"
	AttrLLMTokensCompletion = "llm.tokens.completion"
	AttrLLMTokensTotal      = "llm.tokens.total"
)

// Transport.
const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPURL              = "http.url"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
	AttrHTTPDuration         = "http.request.duration"
)

// Outcome.
const (
	AttrError             = "error"
	AttrErrorType         = "error.type" // configuration, network, response_shape, ...
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
	AttrDuration          = "duration"
)

// Spans.
const (
	SpanDraftReply          = "draft.reply"
	SpanClientGenerateReply = "client.generate_reply"
)

// Span events.
const (
	EventLLMRequestStart     = "llm.request.start"
	EventLLMRequestEnd       = "llm.request.end"
	EventHTTPRequestPrepared = "http.request.prepared"
	EventHTTPRequestError    = "http.request.error"
	EventHTTPResponse        = "http.response.received"
)

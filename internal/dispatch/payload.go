package dispatch

import "github.com/HendryAvila/intentguard/internal/hookctx"

// blockPayload is the JSON shape surfaced to the agent when a pre-hook
// refuses a call (§4.H step 2: "content: error_payload(reason, code)").
type blockPayload struct {
	Error string            `json:"error"`
	Code  hookctx.BlockCode `json:"code"`
}

func errorPayload(reason string, code hookctx.BlockCode) blockPayload {
	return blockPayload{Error: reason, Code: code}
}

// resultPayload wraps a successful tool result (real or injected) in
// the shape the host expects back (§4.H steps 3 and 6).
type resultPayload struct {
	Content any `json:"content"`
}

func toolResultPayload(content any) resultPayload {
	return resultPayload{Content: content}
}

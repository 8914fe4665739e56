package pipeline

import "github.com/HendryAvila/intentguard/internal/hookctx"

// PreHook inspects and may rewrite the in-flight context. Returning a
// non-nil *hookctx.BlockSignal aborts the pre-chain (§4.E): the
// remaining pre-hooks do not run, and the tool itself is never invoked.
type PreHook func(ctx *hookctx.Context) (*hookctx.Context, *hookctx.BlockSignal)

// PostHook observes the final context and the tool's result. Its error
// return is logged and swallowed by the engine — a post-hook can never
// alter the tool result or block a call (§4.G).
type PostHook func(ctx *hookctx.Context, toolResult any) error

// named pairs a hook with the name it registered under, so a second
// registration under the same name can be rejected as a no-op (§4.E:
// "registration may happen only once per process").
type namedPreHook struct {
	name string
	fn   PreHook
}

type namedPostHook struct {
	name string
	fn   PostHook
}

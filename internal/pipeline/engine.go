// Package pipeline implements the Hook Pipeline Engine (§4.E): an
// ordered, fail-safe chain of pre-hooks and post-hooks around each tool
// call. A buggy pre-hook can never open a hole — any unexpected error
// becomes a GENERIC_BLOCK. A buggy post-hook can never change the
// result seen by the agent — its error is logged and swallowed.
package pipeline

import (
	"fmt"
	"log"

	"github.com/HendryAvila/intentguard/internal/hookctx"
)

// Engine holds the registered pre- and post-hook chains and runs them
// in registration order (§5: "hook execution order equals registration
// order").
type Engine struct {
	pre  []namedPreHook
	post []namedPostHook
}

// New returns an empty Engine. Hooks are added with RegisterPre and
// RegisterPost.
func New() *Engine {
	return &Engine{}
}

// RegisterPre adds a pre-hook under name. A second registration under a
// name already in use is a no-op (§4.E).
func (e *Engine) RegisterPre(name string, fn PreHook) {
	for _, h := range e.pre {
		if h.name == name {
			return
		}
	}
	e.pre = append(e.pre, namedPreHook{name: name, fn: fn})
}

// RegisterPost adds a post-hook under name. A second registration under
// a name already in use is a no-op (§4.E).
func (e *Engine) RegisterPost(name string, fn PostHook) {
	for _, h := range e.post {
		if h.name == name {
			return
		}
	}
	e.post = append(e.post, namedPostHook{name: name, fn: fn})
}

// RunPre runs the pre-hook chain sequentially. It returns the final
// (possibly rewritten) context, or a block signal if any hook blocked
// or panicked. Once a hook blocks, remaining pre-hooks are not invoked.
func (e *Engine) RunPre(ctx *hookctx.Context) (*hookctx.Context, *hookctx.BlockSignal) {
	current := ctx
	for _, h := range e.pre {
		next, block := e.runPreHookSafely(h, current)
		if block != nil {
			return nil, block
		}
		current = next
	}
	return current, nil
}

// runPreHookSafely invokes one pre-hook, converting a panic into a
// GENERIC_BLOCK naming the hook — the fail-safe required by §4.E so a
// buggy pre-hook can never silently authorize a call it should have
// blocked.
func (e *Engine) runPreHookSafely(h namedPreHook, ctx *hookctx.Context) (next *hookctx.Context, block *hookctx.BlockSignal) {
	defer func() {
		if r := recover(); r != nil {
			block = &hookctx.BlockSignal{
				Code:   hookctx.CodeGenericBlock,
				Reason: fmt.Sprintf("pre-hook %q failed unexpectedly: %v", h.name, r),
			}
			next = nil
		}
	}()
	return h.fn(ctx)
}

// RunPost runs every registered post-hook against ctx and toolResult,
// regardless of whether an earlier one failed. Failures are logged and
// never returned — post-hooks cannot affect the tool result (§4.G).
func (e *Engine) RunPost(ctx *hookctx.Context, toolResult any) {
	for _, h := range e.post {
		e.runPostHookSafely(h, ctx, toolResult)
	}
}

func (e *Engine) runPostHookSafely(h namedPostHook, ctx *hookctx.Context, toolResult any) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARNING: post-hook %q panicked: %v", h.name, r)
		}
	}()
	if err := h.fn(ctx, toolResult); err != nil {
		log.Printf("WARNING: post-hook %q failed: %v", h.name, err)
	}
}

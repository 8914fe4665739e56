package hooks

import "time"

// timeNow is a package-level var so tests can pin the clock, matching
// the injection pattern used throughout this codebase (e.g.
// internal/intent's timeNow, internal/ledger's timeNow).
var timeNow = time.Now

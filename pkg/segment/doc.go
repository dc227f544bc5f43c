// Package segment derives phase segments from release-track milestones.
//
// Each track contributes up to four segments: an optional pre-release phase
// followed by maintenance, long-term-support and active phases, emitted in
// that order. Phases after the pre-release are computed by walking the
// milestones from the latest-starting to the earliest-starting one, each step
// narrowing a shared end cursor:
//
//	end ──────────────────────────────────────────┐
//	supported ─────────────── maintenance ────────┤ cursor = supported
//	lts ─────── long-term-support ────┤             cursor = lts
//	start ─ active ─┤
//
// A phase is emitted only when it overlaps the query window; the cursor
// advances either way. Stored dates are never clipped to the window, that
// happens at layout time.
//
// Emission order is part of the contract: the chart draws segments in list
// order, so later segments paint over earlier ones.
package segment

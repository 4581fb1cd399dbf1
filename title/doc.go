// Package title turns raw video titles into an artist/track pair and into
// filesystem-safe name fragments.
//
// Everything here is pure: no I/O, no configuration. Parse reports which
// branch produced its answer so callers and tests can tell a separator split
// from a metadata fallback.
package title

// Package signal models the two upstream deprecation feeds collected from a
// page run and decodes them from their artifact files.
//
// Issue is the structured DevTools deprecation issue: it carries a script
// identity, so its position can later be mapped through a bundle. Its column
// is 1-based.
//
// ConsoleEntry is the legacy console-log record. Only entries whose Source is
// SourceDeprecation are deprecation signals; positions are 0-based and there
// is no script identity.
//
// The package does no reconciliation: choosing which feed to trust belongs
// to internal/reconcile.
package signal

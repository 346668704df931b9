// Package diff turns raw unified-diff text into a structured, navigable
// model and optionally enriches small replacement edits with word-level
// highlighting.
//
// The pipeline is a synchronous, side-effect-free transformation with no
// error surface: Parse scans text into Files, Annotate attaches word-level
// tokens to paired delete/add lines, and Summarize folds the result into
// totals. Malformed input is never reported; unrecognized file sections,
// bad hunk headers, and anomalous change lines are silently dropped, so
// the worst outcome for garbage input is an empty result.
//
// Invariants:
//   - A Change with Kind KindAdd has NewLine > 0 and OldLine == 0.
//   - A Change with Kind KindDelete has OldLine > 0 and NewLine == 0.
//   - A Change with Kind KindNormal carries both line numbers.
//   - Within a Hunk, line numbers count up from OldStart/NewStart, one
//     step per emitted Change on the relevant side, in encounter order.
//   - Concatenating Tokenize's output reproduces its input exactly.
//   - Everything returned by Parse is owned by the caller; the package
//     keeps no state between calls, and re-parsing is idempotent.
package diff

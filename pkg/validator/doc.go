// Package validator provides single-purpose field validators sharing one
// contract: validate a single input value against a fixed rule set and report
// the first violated rule as a typed *Error with a stable Code.
//
// Validators are small value types constructed per request with the bounds
// relevant to that request, used once, and discarded. They hold no shared
// mutable state and are safe for concurrent use. Composition is shallow and
// explicit: Age delegates to a lower-bounded Numeric, the contact validators
// delegate digit and length checks to MinMaxLength, Image runs the File
// checks before decoding. There is no rule engine and no runtime rule
// composition; every validator's check order is fixed and documented on the
// type.
//
// # Failure model
//
// A violated rule is returned as a *Error carrying a Code constant and a
// human-readable message. Errors are never aggregated: the first failed check
// wins. Codes map to coarse categories (format, range, empty,
// unsupported_type, external_lookup, unresolved_domain) via Code.Category,
// which the HTTP layer uses for status-code mapping.
//
//	v := validator.Numeric{Min: validator.Bound(0), Max: validator.Bound(10)}
//	if _, err := v.Validate("15"); err != nil {
//		code := validator.CodeOf(err) // validator.CodeAboveMax
//	}
//
// # Collaborators
//
// Two validators depend on external capabilities, both injectable for tests:
// Email takes an MXResolver (default: system resolver with a bounded
// timeout), Image takes an ImageDecoder (default: stdlib image config
// decoding). A collaborator failure surfaces as a validation error, not a
// crash.
//
// # File streams
//
// File and Image read the supplied io.ReadSeeker in full and always rewind it
// to the start before returning, on success and on failure alike, so the
// stream remains fully readable by any later consumer.
package validator

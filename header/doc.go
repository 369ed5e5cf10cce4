// Package header parses and holds MIME part headers. A Header keeps its
// fields in the order they were read and looks them up by name without
// regard to case, which is what MIME requires of part headers.
//
// Parse is tolerant: text at the start of a header block that does not look
// like a field is skipped and reported through a *field.BadStartError that
// callers may treat as a warning.
package header

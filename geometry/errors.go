package geometry

import "errors"

// ErrInvalidGeometry reports malformed or degenerate input: empty point
// sets, zero-length normals, index arrays that do not describe triangles.
// Constructors wrap it with context, so callers can match with errors.Is.
var ErrInvalidGeometry = errors.New("invalid geometry")

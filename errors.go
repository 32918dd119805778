package bsptree

// Error types attached to the errors returned by this package. Check them
// with errors.IsType from github.com/aukilabs/go-tooling/pkg/errors.
const (
	// ErrTypeInvalidGeometry marks shapes rejected at construction time: too
	// few vertices or vertices that are not coplanar.
	ErrTypeInvalidGeometry = "bsptree-invalid-geometry"

	// ErrTypeDegenerate marks zero-length normals, whether passed to a plane
	// constructor or derived from collinear vertices.
	ErrTypeDegenerate = "bsptree-degenerate"
)

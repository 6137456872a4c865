package ports

import (
	"context"

	"go.trai.ch/pak/internal/core/domain"
)

// ObjectTypeTree is the object type of a source tree snapshot.
const ObjectTypeTree = "tree"

// VCSBackend exposes the version-control primitives the installer needs.
//
//go:generate mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type VCSBackend interface {
	// Clone creates a bare repository at dir from url.
	Clone(ctx context.Context, url, dir string) error

	// Fetch imports refs from url into the repository at dir using refspec.
	Fetch(ctx context.Context, dir, url, refspec string) error

	// HasObject reports whether the repository at dir holds the object hash.
	HasObject(ctx context.Context, dir string, hash domain.ContentHash) (bool, error)

	// ObjectType returns the type of the object hash, such as "tree" or "commit".
	ObjectType(ctx context.Context, dir string, hash domain.ContentHash) (string, error)

	// Checkout writes the contents of the tree hash into dest, overwriting existing files.
	Checkout(ctx context.Context, dir string, hash domain.ContentHash, dest string) error
}

// Package storage is the blob capability the gallery and backup features
// depend on: put/get/list/delete by path, nothing more.
package storage

import (
	"context"
	"io"
)

type ObjectStore interface {
	Put(ctx context.Context, path string, r io.Reader) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, path string) error
}

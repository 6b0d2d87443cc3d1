package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Put(_ context.Context, path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[path] = data
	return nil
}

func (f *fakeStore) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := f.objects[path]
	if !ok {
		return nil, fmt.Errorf("object %s not found", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (f *fakeStore) Delete(_ context.Context, path string) error {
	delete(f.objects, path)
	return nil
}

func TestNewSessionRequiresToken(t *testing.T) {
	mgr := NewManager(NewMemorySecretStore(), newFakeStore(), newFakeStore())

	_, err := mgr.NewSession(context.Background())
	assert.Error(t, err)

	require.NoError(t, mgr.StoreToken(context.Background(), "drive-token", 0))
	session, err := mgr.NewSession(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, session)
}

func TestBackupPrefixCopiesUnderDatedDir(t *testing.T) {
	source := newFakeStore()
	target := newFakeStore()
	source.objects["galleries/summer/photo.jpg"] = []byte("jpeg bytes")
	source.objects["reports/annual.pdf"] = []byte("pdf bytes")

	secrets := NewMemorySecretStore()
	mgr := NewManager(secrets, source, target)
	require.NoError(t, mgr.StoreToken(context.Background(), "drive-token", 0))

	session, err := mgr.NewSession(context.Background())
	require.NoError(t, err)

	copied, failed, err := session.BackupPrefix(context.Background(), "galleries")
	require.NoError(t, err)
	assert.Equal(t, 1, copied)
	assert.Zero(t, failed)

	stamp := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, []byte("jpeg bytes"), target.objects[stamp+"/galleries/summer/photo.jpg"])
}

package downloader_test

import (
	"context"
	"os"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/forestcarbon/biomassters/interface/store"
)

func TestDownloader(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Downloader Suite")
}

// FakeStore implements store.ObjectStore over an in-memory object map,
// recording every fetched uri
type FakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	calls   []string
}

// Download implements store.ObjectStore
func (s *FakeStore) Download(ctx context.Context, uri, localPath string) error {
	s.mu.Lock()
	s.calls = append(s.calls, uri)
	content, ok := s.objects[uri]
	s.mu.Unlock()
	if !ok {
		return store.ErrObjectNotFound{Object: uri}
	}
	return os.WriteFile(localPath, content, 0644)
}

// Name implements store.ObjectStore
func (s *FakeStore) Name() string {
	return "Fake"
}

func (s *FakeStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

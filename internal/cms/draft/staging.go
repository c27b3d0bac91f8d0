package draft

import (
	"sync"
	"time"

	"github.com/gofrs/uuid"
)

const DefaultStagingTTL = time.Hour

// Blob - содержимое файла и его тип.
type Blob struct {
	Data        []byte
	ContentType string
}

// Staging держит загруженные файлы до сохранения черновика. Каждый файл доступен по
// дескриптору blob:<uuid> и удаляется по истечении ttl.
type Staging struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]stagedBlob
}

type stagedBlob struct {
	blob    Blob
	timer   *time.Timer
	cleanup chan struct{}
}

func NewStaging(ttl time.Duration) *Staging {
	if ttl <= 0 {
		ttl = DefaultStagingTTL
	}
	return &Staging{
		ttl:     ttl,
		entries: make(map[string]stagedBlob),
	}
}

// Stage сохраняет файл и возвращает его дескриптор.
func (s *Staging) Stage(b Blob) string {
	handle := BlobScheme + uuid.Must(uuid.NewV4()).String()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := stagedBlob{
		blob:    b,
		timer:   time.NewTimer(s.ttl),
		cleanup: make(chan struct{}),
	}
	s.entries[handle] = entry
	go s.setupTimerCleanup(handle, entry.timer, entry.cleanup)
	return handle
}

// Fetch возвращает файл по дескриптору.
func (s *Staging) Fetch(handle string) (Blob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[handle]
	return e.blob, ok
}

// Release удаляет файл раньше срока.
func (s *Staging) Release(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[handle]; ok {
		close(e.cleanup)
		e.timer.Stop()
		delete(s.entries, handle)
	}
}

func (s *Staging) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Staging) setupTimerCleanup(handle string, timer *time.Timer, stopCh <-chan struct{}) {
	select {
	case <-timer.C:
		s.Release(handle)
	case <-stopCh:
		return
	}
}

package surface

import "sync"

// Scheduler хранит одноразовые обратные вызовы, которые выполняются после следующей отрисовки.
// Вызовы, зарегистрированные во время Flush, выполняются на следующем Flush.
type Scheduler struct {
	mu    sync.Mutex
	queue []func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterRender регистрирует f до следующего Flush.
func (s *Scheduler) AfterRender(f func()) {
	if f == nil {
		return
	}
	s.mu.Lock()
	s.queue = append(s.queue, f)
	s.mu.Unlock()
}

// Pending возвращает количество ожидающих вызовов.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Flush выполняет накопленные вызовы в порядке регистрации и возвращает их количество.
func (s *Scheduler) Flush() int {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, f := range queue {
		f()
	}
	return len(queue)
}

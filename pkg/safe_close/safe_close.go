// Package safe_close 提供多组件的优雅关闭协调
// 各组件通过 Attach 注册运行/关闭逻辑，任意一处 SendCloseSignal 触发整体关闭
package safe_close

import (
	"sync"
)

type SafeClose struct {
	mu sync.Mutex
	wg sync.WaitGroup

	closeSignal chan struct{}
	closed      bool
	err         error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach registers a component. f must call done() when it fully stops,
// and must return after closeSignal is closed.
// Attach 注册一个组件。f 结束时必须调用 done()，并在 closeSignal 关闭后退出。
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal triggers shutdown. The first non-nil err wins.
// SendCloseSignal 触发关闭。第一个非 nil 的 err 会被保留。
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// WaitClosed blocks until every attached component has called done()
// WaitClosed 阻塞直到所有已注册组件调用 done()
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

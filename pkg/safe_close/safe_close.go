// Package safe_close coordinates graceful shutdown of background
// services. Each service attaches a closure that receives a done callback
// and a close signal channel.
// safe_close 包负责后台服务的优雅关闭编排
package safe_close

import (
	"sync"
)

type SafeClose struct {
	mu          sync.Mutex
	closed      bool
	err         error
	closeSignal chan struct{}
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach starts f in its own goroutine. f must call done exactly once when
// it has finished and should return promptly after closeSignal is closed.
// Attach 在独立协程中启动 f，f 结束时必须调用 done
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal closes the signal channel. The first non-nil error wins,
// later calls are no-ops.
// SendCloseSignal 关闭信号通道，只有第一次调用生效
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

// ReceiveCloseSignal returns the channel closed by SendCloseSignal.
func (s *SafeClose) ReceiveCloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until every attached service has called done, then
// returns the error passed to SendCloseSignal, if any.
// WaitClosed 等待所有已附加的服务结束并返回关闭原因
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

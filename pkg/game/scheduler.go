package game

// FrameID identifies a pending frame request.
type FrameID uint64

// Scheduler queues tick callbacks, like requestAnimationFrame.
type Scheduler interface {
	// RequestFrame schedules cb for the next frame and returns its id.
	RequestFrame(cb func()) FrameID

	// CancelFrame drops a pending request. Unknown ids are ignored.
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	cb func()
}

// FrameScheduler is a Scheduler flushed once per host frame.
//
// ebiten 的 Update 循环每帧调用一次 RunPending；测试和无头工具手动调用。
type FrameScheduler struct {
	nextID  FrameID
	pending []frameRequest
}

// NewFrameScheduler creates an empty FrameScheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// RequestFrame implements Scheduler.
func (s *FrameScheduler) RequestFrame(cb func()) FrameID {
	s.nextID++
	s.pending = append(s.pending, frameRequest{id: s.nextID, cb: cb})
	return s.nextID
}

// CancelFrame implements Scheduler.
func (s *FrameScheduler) CancelFrame(id FrameID) {
	for i, req := range s.pending {
		if req.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// RunPending runs the callbacks queued before the call and returns how many
// ran. Callbacks requested while running are kept for the next call.
func (s *FrameScheduler) RunPending() int {
	if len(s.pending) == 0 {
		return 0
	}
	batch := s.pending
	s.pending = nil
	for _, req := range batch {
		req.cb()
	}
	return len(batch)
}

// Pending returns the number of queued callbacks.
func (s *FrameScheduler) Pending() int {
	return len(s.pending)
}

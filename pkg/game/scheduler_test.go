package game

import "testing"

// TestFrameScheduler_RunPending 测试只执行调用前已排队的回调
func TestFrameScheduler_RunPending(t *testing.T) {
	s := NewFrameScheduler()
	var order []int

	s.RequestFrame(func() {
		order = append(order, 1)
		s.RequestFrame(func() { order = append(order, 3) })
	})
	s.RequestFrame(func() { order = append(order, 2) })

	if n := s.RunPending(); n != 2 {
		t.Errorf("RunPending() = %d, want 2", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
	if s.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1 (requested during run)", s.Pending())
	}

	s.RunPending()
	if len(order) != 3 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

// TestFrameScheduler_CancelFrame 测试取消待执行回调
func TestFrameScheduler_CancelFrame(t *testing.T) {
	s := NewFrameScheduler()
	ran := false
	id := s.RequestFrame(func() { ran = true })
	other := s.RequestFrame(func() {})

	if id == other {
		t.Fatal("frame ids should be unique")
	}

	s.CancelFrame(id)
	s.CancelFrame(999) // 未知 id 忽略

	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}
	s.RunPending()
	if ran {
		t.Error("cancelled callback ran")
	}
}

// TestViewportWatcher 测试尺寸变化通知和监听移除
func TestViewportWatcher(t *testing.T) {
	v := NewViewportWatcher(800, 600)
	calls := 0
	var gotW, gotH int
	remove := v.AddResizeListener(func(w, h int) {
		calls++
		gotW, gotH = w, h
	})

	v.Update(800, 600) // 未变化不通知
	v.Update(1024, 768)

	if calls != 1 || gotW != 1024 || gotH != 768 {
		t.Errorf("calls=%d size=%dx%d, want 1 call with 1024x768", calls, gotW, gotH)
	}
	if w, h := v.Size(); w != 1024 || h != 768 {
		t.Errorf("Size() = %dx%d, want 1024x768", w, h)
	}

	remove()
	v.Update(640, 480)
	if calls != 1 {
		t.Errorf("removed listener still called")
	}
	if v.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d, want 0", v.ListenerCount())
	}
}

// TestSignalBox 测试信号的默认值与部分更新
func TestSignalBox(t *testing.T) {
	b := NewSignalBox()
	if sig := b.Signal(); sig.Active || sig.Intensity != 1 {
		t.Errorf("default signal = %+v, want inactive intensity 1", sig)
	}

	b.SetIntensity(2.5)
	b.SetActive(true)
	if sig := b.Signal(); !sig.Active || sig.Intensity != 2.5 {
		t.Errorf("signal = %+v, want active intensity 2.5", sig)
	}

	b.Set(false, 0.5)
	if sig := b.Signal(); sig.Active || sig.Intensity != 0.5 {
		t.Errorf("signal = %+v, want inactive intensity 0.5", sig)
	}
}

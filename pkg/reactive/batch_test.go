package reactive

import (
	"testing"
)

func TestBatchCoalescesNotifications(t *testing.T) {
	a := NewSignal(1)
	b := NewSignal(2)
	runs := 0

	NewEffect(func() Cleanup {
		_ = a.Get()
		_ = b.Get()
		runs++
		return nil
	})

	Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	// One run at creation, one for the whole batch
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
}

func TestBatchDefersNotifications(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = count.Get()
	})

	Batch(func() {
		count.Set(1)
		if listener.getDirtyCount() != 0 {
			t.Errorf("notification should be deferred inside batch, got %d", listener.getDirtyCount())
		}
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification after batch, got %d", listener.getDirtyCount())
	}
}

func TestBatchNested(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = count.Get()
	})

	Batch(func() {
		count.Set(1)
		Batch(func() {
			count.Set(2)
		})
		// Inner batch completion must not flush
		if listener.getDirtyCount() != 0 {
			t.Errorf("inner batch should not flush, got %d", listener.getDirtyCount())
		}
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification after outer batch, got %d", listener.getDirtyCount())
	}
}

func TestBatchDeduplicatesByListener(t *testing.T) {
	a := NewSignal(1)
	b := NewSignal(2)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = a.Get()
		_ = b.Get()
	})

	Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 deduplicated notification, got %d", listener.getDirtyCount())
	}
}

func TestBatchMemoSeesFinalValues(t *testing.T) {
	a := NewSignal(1)
	b := NewSignal(2)
	sum := NewMemo(func() int { return a.Get() + b.Get() })

	_ = sum.Get()

	Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	if sum.Get() != 30 {
		t.Errorf("expected 30, got %d", sum.Get())
	}
}

func TestUntracked(t *testing.T) {
	count := NewSignal(0)
	other := NewSignal(0)
	runs := 0

	NewEffect(func() Cleanup {
		_ = count.Get()
		Untracked(func() {
			_ = other.Get()
		})
		runs++
		return nil
	})

	other.Set(1)
	if runs != 1 {
		t.Errorf("untracked read should not subscribe, got %d runs", runs)
	}

	count.Set(1)
	if runs != 2 {
		t.Errorf("tracked read should still subscribe, got %d runs", runs)
	}
}

func TestUntrackedGet(t *testing.T) {
	count := NewSignal(7)
	runs := 0

	NewEffect(func() Cleanup {
		_ = UntrackedGet(count)
		runs++
		return nil
	})

	count.Set(8)
	if runs != 1 {
		t.Errorf("UntrackedGet should not subscribe, got %d runs", runs)
	}
}

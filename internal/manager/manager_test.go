package manager

import (
	"errors"
	"testing"
	"time"

	"ordersim/internal/domain"
)

func fastConfig() Config {
	return Config{
		ProcessingTime: 40 * time.Millisecond,
		Tick:           10 * time.Millisecond,
		PollTimeout:    20 * time.Millisecond,
	}
}

func slowConfig() Config {
	cfg := fastConfig()
	cfg.ProcessingTime = 5 * time.Second
	return cfg
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// --- Order / Bot Creation Tests ---

func TestManager_OrderIDsMonotonic(t *testing.T) {
	m := New(fastConfig())
	defer m.Shutdown()

	for want := int64(1); want <= 3; want++ {
		o, err := m.NewOrder(domain.ClassNormal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.ID != want {
			t.Errorf("expected id %d, got %d", want, o.ID)
		}
		if o.Status != domain.OrderPending {
			t.Errorf("new order must be PENDING, got %s", o.Status)
		}
	}
}

func TestManager_NewOrder_InvalidClass(t *testing.T) {
	m := New(fastConfig())
	defer m.Shutdown()

	if _, err := m.NewOrder("GOLD"); err == nil {
		t.Fatal("expected error for unknown class")
	}
	if m.Queue().TotalLen() != 0 {
		t.Error("rejected order must not be enqueued")
	}
}

func TestManager_BotIDsMonotonic(t *testing.T) {
	m := New(fastConfig())
	defer m.Shutdown()

	b1, err := m.AddBot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b2, err := m.AddBot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b1.ID != 1 || b2.ID != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", b1.ID, b2.ID)
	}

	// Снимается новейший
	removed, err := m.RemoveBot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.ID != 2 {
		t.Errorf("expected newest bot 2 removed, got %d", removed.ID)
	}
	if removed.State != domain.BotStopped {
		t.Errorf("removed bot must be STOPPED, got %s", removed.State)
	}
}

func TestManager_RemoveBot_NoBots(t *testing.T) {
	m := New(fastConfig())
	defer m.Shutdown()

	if _, err := m.RemoveBot(); !errors.Is(err, ErrNoBots) {
		t.Errorf("expected ErrNoBots, got %v", err)
	}
}

// --- End-to-End Tests ---

func TestManager_VIPCompletesFirst(t *testing.T) {
	m := New(fastConfig())
	defer m.Shutdown()

	normal, _ := m.NewOrder(domain.ClassNormal) // id=1
	vip, _ := m.NewOrder(domain.ClassVIP)       // id=2
	if _, err := m.AddBot(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waitFor(t, "both orders to complete", func() bool {
		return m.Status().CompletedCount == 2
	})

	st := m.Status()
	if st.CompletedIDs[0] != vip.ID {
		t.Errorf("VIP order must complete first, got order %d", st.CompletedIDs[0])
	}
	if st.CompletedIDs[1] != normal.ID {
		t.Errorf("Normal order must complete second, got order %d", st.CompletedIDs[1])
	}
	if st.Queue.TotalSize != 0 {
		t.Errorf("queue must be drained, size=%d", st.Queue.TotalSize)
	}
}

func TestManager_RemoveBot_RequeuesInFlightOrderToHead(t *testing.T) {
	m := New(slowConfig())
	defer m.Shutdown()

	if _, err := m.AddBot(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o, err := m.NewOrder(domain.ClassVIP)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waitFor(t, "bot to claim the order", func() bool {
		bots := m.Status().Bots
		return len(bots) == 1 && bots[0].State == domain.BotBusy
	})

	if _, err := m.RemoveBot(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := m.Status()
	if len(st.Bots) != 0 {
		t.Errorf("expected zero bots, got %d", len(st.Bots))
	}
	if st.Queue.VIPSize != 1 {
		t.Fatalf("expected the order back in the VIP sequence, size=%d", st.Queue.VIPSize)
	}
	if st.Queue.VIP[0] != o {
		t.Errorf("expected order %d at the head, got %d", o.ID, st.Queue.VIP[0].ID)
	}
	if st.Queue.VIP[0].Status != domain.OrderPending {
		t.Errorf("requeued order must be PENDING, got %s", st.Queue.VIP[0].Status)
	}
	if st.CompletedCount != 0 {
		t.Errorf("nothing must be completed, count=%d", st.CompletedCount)
	}
}

func TestManager_HandoffToRemainingBot(t *testing.T) {
	m := New(fastConfig())
	defer m.Shutdown()

	// Два бота; снятие одного не должно терять заказы
	m.AddBot()
	m.AddBot()
	m.NewOrder(domain.ClassVIP)
	m.NewOrder(domain.ClassNormal)
	m.RemoveBot()

	waitFor(t, "remaining bot to finish everything", func() bool {
		return m.Status().CompletedCount == 2
	})

	st := m.Status()
	if st.Queue.TotalSize != 0 {
		t.Errorf("queue must be drained, size=%d", st.Queue.TotalSize)
	}
	if len(st.Bots) != 1 {
		t.Errorf("expected one bot left, got %d", len(st.Bots))
	}
}

// --- Shutdown Tests ---

func TestManager_Shutdown(t *testing.T) {
	m := New(slowConfig())

	m.AddBot()
	m.AddBot()
	m.NewOrder(domain.ClassNormal)

	waitFor(t, "a bot to claim the order", func() bool {
		for _, b := range m.Status().Bots {
			if b.State == domain.BotBusy {
				return true
			}
		}
		return false
	})

	m.Shutdown()

	// Заказ не потерян: вернулся в очередь со сброшенным статусом
	st := m.Status()
	if len(st.Bots) != 0 {
		t.Errorf("expected zero bots after shutdown, got %d", len(st.Bots))
	}
	if st.Queue.TotalSize+st.CompletedCount != 1 {
		t.Errorf("order lost: pending=%d completed=%d", st.Queue.TotalSize, st.CompletedCount)
	}
	if st.Queue.TotalSize == 1 && st.Queue.Normal[0].Status != domain.OrderPending {
		t.Errorf("requeued order must be PENDING, got %s", st.Queue.Normal[0].Status)
	}

	if _, err := m.NewOrder(domain.ClassVIP); !errors.Is(err, ErrShutdown) {
		t.Errorf("expected ErrShutdown, got %v", err)
	}
	if _, err := m.AddBot(); !errors.Is(err, ErrShutdown) {
		t.Errorf("expected ErrShutdown, got %v", err)
	}

	// Повторный Shutdown — no-op
	m.Shutdown()
}

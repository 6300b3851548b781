package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"ordersim/internal/bot"
	"ordersim/internal/domain"
	"ordersim/internal/manager"
)

func testManager() *manager.Manager {
	return manager.New(manager.Config{
		ProcessingTime: 5 * time.Second,
		Tick:           10 * time.Millisecond,
		PollTimeout:    20 * time.Millisecond,
	})
}

// --- Dispatch Tests ---

func TestDispatch_NewOrderAliases(t *testing.T) {
	cases := []struct {
		line  string
		class domain.PriorityClass
	}{
		{"new-normal", domain.ClassNormal},
		{"nn", domain.ClassNormal},
		{"new-vip", domain.ClassVIP},
		{"nv", domain.ClassVIP},
		{"NEW-VIP", domain.ClassVIP}, // регистр не важен
		{"  nn  ", domain.ClassNormal},
	}

	for _, tc := range cases {
		m := testManager()
		res := Dispatch(m, tc.line)
		if !res.OK {
			t.Errorf("%q: expected success, got error %q", tc.line, res.Err)
			continue
		}
		o, ok := res.Data.(*domain.Order)
		if !ok {
			t.Errorf("%q: expected order payload, got %T", tc.line, res.Data)
			continue
		}
		if o.Class != tc.class {
			t.Errorf("%q: expected class %s, got %s", tc.line, tc.class, o.Class)
		}
		if m.Queue().TotalLen() != 1 {
			t.Errorf("%q: order must be enqueued", tc.line)
		}
		m.Shutdown()
	}
}

func TestDispatch_BotCommands(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	res := Dispatch(m, "+bot")
	if !res.OK {
		t.Fatalf("expected success, got %q", res.Err)
	}
	info, ok := res.Data.(bot.Info)
	if !ok {
		t.Fatalf("expected bot payload, got %T", res.Data)
	}
	if info.ID != 1 {
		t.Errorf("expected bot 1, got %d", info.ID)
	}

	if res := Dispatch(m, "add-bot"); !res.OK {
		t.Fatalf("expected success, got %q", res.Err)
	}

	res = Dispatch(m, "-bot")
	if !res.OK {
		t.Fatalf("expected success, got %q", res.Err)
	}
	if removed := res.Data.(bot.Info); removed.ID != 2 {
		t.Errorf("expected newest bot 2 removed, got %d", removed.ID)
	}

	Dispatch(m, "remove-bot")

	// Ботов не осталось
	res = Dispatch(m, "-bot")
	if res.OK {
		t.Error("expected failure when no bots remain")
	}
	if res.Err != "no bot to remove" {
		t.Errorf("unexpected error message: %q", res.Err)
	}
}

func TestDispatch_Status(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	Dispatch(m, "nv")
	Dispatch(m, "nn")

	res := Dispatch(m, "status")
	if !res.OK {
		t.Fatalf("expected success, got %q", res.Err)
	}
	st, ok := res.Data.(manager.Status)
	if !ok {
		t.Fatalf("expected status payload, got %T", res.Data)
	}
	if st.Queue.VIPSize != 1 || st.Queue.NormalSize != 1 {
		t.Errorf("unexpected queue sizes: %+v", st.Queue)
	}
}

func TestDispatch_UnknownAndEmpty(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	res := Dispatch(m, "make-me-a-sandwich")
	if res.OK {
		t.Error("expected failure for unknown command")
	}
	if res.Usage == "" {
		t.Error("unknown command must carry usage text")
	}

	res = Dispatch(m, "   ")
	if res.OK || res.Usage == "" {
		t.Error("empty command must fail with usage text")
	}

	// Состояние не изменилось
	if m.Queue().TotalLen() != 0 {
		t.Error("failed commands must not change state")
	}
}

func TestDispatch_Markers(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	if res := Dispatch(m, "clear"); !res.OK {
		t.Errorf("expected success, got %q", res.Err)
	} else if _, ok := res.Data.(ClearScreen); !ok {
		t.Errorf("expected ClearScreen marker, got %T", res.Data)
	}

	if res := Dispatch(m, "CLS"); !res.OK {
		t.Error("cls alias must work")
	}

	if res := Dispatch(m, "quit"); !res.OK {
		t.Errorf("expected success, got %q", res.Err)
	} else if _, ok := res.Data.(Exit); !ok {
		t.Errorf("expected Exit marker, got %T", res.Data)
	}

	res := Dispatch(m, "help")
	if !res.OK || res.Data.(string) == "" {
		t.Error("help must return usage text")
	}
}

// --- Output Tests ---

func TestOutput_RenderStatusTable(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	Dispatch(m, "nv")
	res := Dispatch(m, "status")

	var buf, errBuf bytes.Buffer
	out := &Output{w: &buf, errW: &errBuf}
	out.Render(res)

	text := buf.String()
	for _, want := range []string{"== Pending / VIP ==", "== Pending / Normal ==", "== Bots ==", "<empty>", "<none>"} {
		if !strings.Contains(text, want) {
			t.Errorf("status output missing %q:\n%s", want, text)
		}
	}
	if !strings.Contains(text, "VIP") || !strings.Contains(text, "PENDING") {
		t.Errorf("status output missing the pending VIP order:\n%s", text)
	}
}

func TestOutput_RenderErrorToStderr(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	var buf, errBuf bytes.Buffer
	out := &Output{w: &buf, errW: &errBuf}
	out.Render(Dispatch(m, "bogus"))

	if buf.Len() != 0 {
		t.Errorf("errors must not go to stdout: %q", buf.String())
	}
	if !strings.Contains(errBuf.String(), "unknown command") {
		t.Errorf("expected error message, got %q", errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "Commands:") {
		t.Error("expected usage text after the error")
	}
}

func TestOutput_JSONMode(t *testing.T) {
	m := testManager()
	defer m.Shutdown()

	var buf, errBuf bytes.Buffer
	out := &Output{jsonMode: true, w: &buf, errW: &errBuf}
	out.Render(Dispatch(m, "nv"))

	text := buf.String()
	if !strings.Contains(text, `"ok": true`) || !strings.Contains(text, `"cmd": "nv"`) {
		t.Errorf("unexpected JSON output: %s", text)
	}
}

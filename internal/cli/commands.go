package cli

import (
	"errors"
	"strings"

	"ordersim/internal/domain"
	"ordersim/internal/manager"
)

// Result — структурированный результат одной команды.
type Result struct {
	// OK — признак успеха.
	OK bool `json:"ok"`

	// Cmd — нормализованная команда, как она была разобрана.
	Cmd string `json:"cmd"`

	// Data — полезная нагрузка: *domain.Order, bot.Info,
	// manager.Status, ClearScreen, Exit либо строка помощи.
	Data any `json:"data,omitempty"`

	// Err — сообщение об ошибке (при OK=false).
	Err string `json:"error,omitempty"`

	// Usage — подсказка по командам, прилагается к ошибкам разбора.
	Usage string `json:"usage,omitempty"`
}

// ClearScreen — маркер "очистить экран"; на состояние системы не влияет.
type ClearScreen struct{}

// Exit — маркер "завершить сессию"; решение о выходе принимает REPL.
type Exit struct{}

// UsageText — подсказка по командам.
const UsageText = `Commands:
  new-normal | nn          - create a Normal order
  new-vip    | nv          - create a VIP order
  +bot       | add-bot     - start a new bot
  -bot       | remove-bot  - stop and remove the newest bot
  status                   - show queue and bot status
  clear      | cls         - clear the screen
  help       | h | ?       - show this help
  exit       | quit        - quit`

// Dispatch разбирает и выполняет одну команду.
//
// Команды нечувствительны к регистру. Пустая и неизвестная команды
// возвращают Result с OK=false и подсказкой, не трогая состояние.
func Dispatch(m *manager.Manager, line string) Result {
	cmd := strings.ToLower(strings.TrimSpace(line))

	switch cmd {
	case "":
		return Result{Cmd: cmd, Err: "empty command", Usage: UsageText}

	case "help", "h", "?":
		return Result{OK: true, Cmd: cmd, Data: UsageText}

	case "new-normal", "nn":
		return newOrder(m, cmd, "normal")

	case "new-vip", "nv":
		return newOrder(m, cmd, "vip")

	case "+bot", "add-bot":
		info, err := m.AddBot()
		if err != nil {
			return Result{Cmd: cmd, Err: err.Error()}
		}
		return Result{OK: true, Cmd: cmd, Data: info}

	case "-bot", "remove-bot":
		info, err := m.RemoveBot()
		if err != nil {
			if errors.Is(err, manager.ErrNoBots) {
				return Result{Cmd: cmd, Err: "no bot to remove"}
			}
			return Result{Cmd: cmd, Err: err.Error()}
		}
		return Result{OK: true, Cmd: cmd, Data: info}

	case "status":
		return Result{OK: true, Cmd: cmd, Data: m.Status()}

	case "clear", "cls":
		return Result{OK: true, Cmd: cmd, Data: ClearScreen{}}

	case "exit", "quit":
		return Result{OK: true, Cmd: cmd, Data: Exit{}}

	default:
		return Result{Cmd: cmd, Err: "unknown command: " + cmd, Usage: UsageText}
	}
}

func newOrder(m *manager.Manager, cmd, rawClass string) Result {
	class, err := domain.ParsePriorityClass(rawClass)
	if err != nil {
		return Result{Cmd: cmd, Err: err.Error()}
	}
	o, err := m.NewOrder(class)
	if err != nil {
		return Result{Cmd: cmd, Err: err.Error()}
	}
	return Result{OK: true, Cmd: cmd, Data: o}
}

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"ordersim/internal/manager"
)

// REPL — интерактивный цикл чтения команд.
type REPL struct {
	m   *manager.Manager
	out *Output
	in  io.Reader
}

// NewREPL создаёт REPL поверх менеджера; команды читаются из stdin.
func NewREPL(m *manager.Manager, out *Output) *REPL {
	return &REPL{m: m, out: out, in: os.Stdin}
}

// Run выполняет цикл до команды exit/quit или EOF.
//
// Остановка ботов не выполняется здесь: Shutdown делает вызывающая
// сторона после возврата из Run.
func (r *REPL) Run() {
	fmt.Fprintln(r.out.errW, "Type 'help' to see commands. Type 'exit' to quit.")

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out.errW, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out.errW)
			return
		}

		res := Dispatch(r.m, scanner.Text())
		r.out.Render(res)
		if _, exit := res.Data.(Exit); exit {
			return
		}
	}
}

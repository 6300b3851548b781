package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"ordersim/internal/bot"
	"ordersim/internal/domain"
	"ordersim/internal/manager"
)

// Output управляет форматированием вывода CLI.
type Output struct {
	jsonMode bool
	w        io.Writer // stdout для данных
	errW     io.Writer // stderr для сообщений
}

// NewOutput создаёт Output. Если jsonMode=true, данные выводятся в JSON.
func NewOutput(jsonMode bool) *Output {
	return &Output{
		jsonMode: jsonMode,
		w:        os.Stdout,
		errW:     os.Stderr,
	}
}

// Render печатает результат команды.
//
// Маркер ClearScreen выводит ANSI-очистку экрана, Exit не печатает
// ничего. В JSON-режиме результат выводится целиком одной структурой.
func (o *Output) Render(res Result) {
	if o.jsonMode {
		o.JSON(res)
		return
	}

	if !res.OK {
		o.Error(res.Err)
		if res.Usage != "" {
			fmt.Fprintln(o.errW, res.Usage)
		}
		return
	}

	switch data := res.Data.(type) {
	case nil:
		// успех без полезной нагрузки
	case ClearScreen:
		// ANSI: очистка экрана + курсор в левый верхний угол
		fmt.Fprint(o.w, "\033[2J\033[H")
	case Exit:
	case string:
		fmt.Fprintln(o.w, data)
	case *domain.Order:
		o.Table(
			[]string{"ID", "CLASS", "STATUS"},
			[][]string{orderRow(data)},
		)
	case bot.Info:
		o.Table(
			[]string{"BOT_ID", "STATE", "CURRENT_ORDER"},
			[][]string{botRow(data)},
		)
	case manager.Status:
		o.renderStatus(data)
	default:
		o.JSON(data)
	}
}

// renderStatus печатает сводный снимок по секциям.
func (o *Output) renderStatus(st manager.Status) {
	fmt.Fprintln(o.w, "== Pending / VIP ==")
	o.orderTable(st.Queue.VIP)

	fmt.Fprintln(o.w)
	fmt.Fprintln(o.w, "== Pending / Normal ==")
	o.orderTable(st.Queue.Normal)

	fmt.Fprintln(o.w)
	fmt.Fprintln(o.w, "== Bots ==")
	if len(st.Bots) == 0 {
		fmt.Fprintln(o.w, "<none>")
	} else {
		rows := make([][]string, len(st.Bots))
		for i, b := range st.Bots {
			rows[i] = botRow(b)
		}
		o.Table([]string{"BOT_ID", "STATE", "CURRENT_ORDER"}, rows)
	}

	fmt.Fprintln(o.w)
	fmt.Fprintf(o.w, "== Complete (last %d of %d) ==\n", len(st.CompletedIDs), st.CompletedCount)
	if len(st.CompletedIDs) == 0 {
		fmt.Fprintln(o.w, "<none>")
	} else {
		ids := make([]string, len(st.CompletedIDs))
		for i, id := range st.CompletedIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		fmt.Fprintln(o.w, strings.Join(ids, ", "))
	}
}

func (o *Output) orderTable(orders []*domain.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(o.w, "<empty>")
		return
	}
	rows := make([][]string, len(orders))
	for i, ord := range orders {
		rows[i] = orderRow(ord)
	}
	o.Table([]string{"ID", "CLASS", "STATUS"}, rows)
}

func orderRow(o *domain.Order) []string {
	return []string{strconv.FormatInt(o.ID, 10), o.Class.String(), string(o.Status)}
}

func botRow(b bot.Info) []string {
	current := "<none>"
	if b.CurrentOrderID != nil {
		current = strconv.FormatInt(*b.CurrentOrderID, 10)
	}
	return []string{strconv.FormatInt(b.ID, 10), string(b.State), current}
}

// Table выводит данные в виде таблицы через tabwriter.
func (o *Output) Table(headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)

	// Заголовки
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	// Разделитель
	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	// Строки данных
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	tw.Flush()
}

// JSON выводит данные в формате JSON с отступами.
func (o *Output) JSON(v any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// Error выводит сообщение об ошибке в stderr.
func (o *Output) Error(msg string) {
	fmt.Fprintln(o.errW, "ERR: "+msg)
}

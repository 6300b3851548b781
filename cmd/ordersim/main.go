// Ordersim — симулятор двухуровневого конвейера обработки заказов.
//
// Заказы (VIP / Normal) попадают в приоритетную очередь ожидания и
// разбираются динамическим набором ботов; каждый бот обрабатывает один
// заказ фиксированное время и может быть снят без потери заказа.
//
// Использование:
//
//	ordersim [--json]            # интерактивный REPL
//	ordersim [--json] <command>  # one-shot режим, например: ordersim nv
//
// Наберите help в REPL для списка команд.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"ordersim/internal/cli"
	"ordersim/internal/config"
	"ordersim/internal/manager"
	"ordersim/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	// .env, если есть; отсутствие файла не ошибка
	_ = godotenv.Load()

	logger := telemetry.SetupLogger()
	cfg := config.Load()

	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "ordersim [command]",
		Short:         "ordersim — two-tier order fulfillment simulator",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := manager.New(manager.Config{
				ProcessingTime: cfg.ProcessingTime,
				Tick:           cfg.Tick,
				PollTimeout:    cfg.PollTimeout,
				Logger:         logger,
			})

			telemetry.RegisterQueueDepth(m.Queue().LenVIP, m.Queue().LenNormal)
			startMetrics(cfg.MetricsPort, logger)

			// SIGINT/SIGTERM: остановить ботов, не теряя заказы
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sig
				logger.Info("signal received, shutting down")
				m.Shutdown()
				os.Exit(0)
			}()

			out := cli.NewOutput(jsonOutput)

			if len(args) > 0 {
				// one-shot: аргументы склеиваются в одну команду
				out.Render(cli.Dispatch(m, strings.Join(args, " ")))
			} else {
				cli.NewREPL(m, out).Run()
			}

			m.Shutdown()
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// startMetrics поднимает /metrics и /healthz, если порт настроен.
func startMetrics(port string, logger *slog.Logger) {
	if port == "" {
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	addr := ":" + port
	go func() {
		logger.Info("metrics listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics server error", "error", err)
		}
	}()
}

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"main/internal/dedup"
	"main/internal/executor"
	"main/internal/gateway"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/recorder"
	"main/pkg/conn"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
)

func main() {
	if err := run(); err != nil {
		log.Printf("signal: %v", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to JSON config")
	listenFlag := flag.String("listen", "", "Listen address (overrides config)")
	tokenFlag := flag.String("token", "", "Gateway access token (overrides config; generated when empty)")
	executorURL := flag.String("executor-url", "", "Execution service base URL (overrides config)")
	executorToken := flag.String("executor-token", "", "Execution service token (overrides config)")
	auditDSN := flag.String("audit-dsn", "", "PostgreSQL DSN for the signal audit table (overrides config)")
	pyroscopeAddr := flag.String("pyroscope", "", "Pyroscope server address (empty=disabled)")
	flag.Parse()

	loaded, err := ops.Load(*configPath)
	if err != nil {
		return err
	}
	applyOverrides(&loaded, *listenFlag, *tokenFlag, *executorURL, *executorToken, *auditDSN)

	if *pyroscopeAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "signal-gateway",
			ServerAddress:   *pyroscopeAddr,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
			},
		})
		if err != nil {
			return err
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	var rec *recorder.Recorder
	if loaded.AuditDSN != "" {
		db, err := conn.Postgres(conn.Option{ConnString: loaded.AuditDSN})
		if err != nil {
			return err
		}
		rec, err = recorder.New(db)
		if err != nil {
			return err
		}
	}

	// Announced exactly once; the token is never regenerated mid-process.
	if loaded.TokenGenerated {
		logs.Infof("generated gateway token: %s", loaded.Token)
	}

	metrics := obs.NewMetrics()
	gw := gateway.New(gateway.Config{
		Token:    loaded.Token,
		Executor: executor.NewQMT(loaded.Executor.BaseURL, loaded.Executor.Token, nil),
		Dedup:    dedup.New(loaded.DedupTTL, loaded.DedupMaxSize),
		Metrics:  metrics,
		Recorder: rec,
	})

	srv := &http.Server{
		Addr:    loaded.Listen,
		Handler: gw.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logs.Infof("signal gateway listening on %s", loaded.Listen)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-sys.Shutdown():
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
	}

	snap := metrics.Snapshot()
	log.Printf("metrics: received=%d rejected=%d duplicates=%d bad_symbols=%d forwarded=%d forward_failed=%d forward_latency=%+v",
		snap.Received, snap.Rejected, snap.Duplicates, snap.BadSymbols,
		snap.Forwarded, snap.ForwardFailed, snap.ForwardLatency)
	return nil
}

func applyOverrides(loaded *ops.Loaded, listen, token, executorURL, executorToken, auditDSN string) {
	if listen != "" {
		loaded.Listen = listen
	}
	if token != "" {
		loaded.Token = token
		loaded.TokenGenerated = false
	}
	if executorURL != "" {
		loaded.Executor.BaseURL = executorURL
	}
	if executorToken != "" {
		loaded.Executor.Token = executorToken
	}
	if auditDSN != "" {
		loaded.AuditDSN = auditDSN
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/powerman/structlog"
	"golang.org/x/time/rate"

	"openstruct/internal/calc/batch"
	"openstruct/internal/calc/drawing"
	"openstruct/internal/calc/importer"
	"openstruct/internal/calc/report"
	"openstruct/internal/calc/shear"
	"openstruct/internal/calc/springs"
	"openstruct/internal/config"
	"openstruct/internal/middleware"
	"openstruct/internal/respond"
	"openstruct/internal/version"
)

const (
	project     = "openStruct"
	description = "Open API for Brazilian structural engineering. Maintained by the community."
	repository  = "https://github.com/ricardocorsini/openstruct"
)

var (
	wg  sync.WaitGroup
	log = structlog.New(structlog.KeyUnit, "main")
)

func index(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"project":     project,
		"version":     version.Version,
		"description": description,
		"links": map[string]string{
			"repository": repository,
			"ping":       "/ping",
		},
		"next_steps": []string{
			"Use /ping to test the connection.",
			"POST to /api/tools/... to run a calculation.",
			"Contribute via Pull Request on GitHub.",
		},
	})
}

func ping(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"message":     project + " API is online!",
		"server_time": time.Now().Format("02/01/2006 15:04:05"),
	})
}

func HandleList(r *mux.Router, cfg *config.Config) {
	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	r.HandleFunc("/", index).Methods("GET")
	r.HandleFunc("/ping", ping).Methods("GET")

	// Registered on r itself so a method mismatch answers 405.
	api := func(path string, h http.HandlerFunc) {
		r.Handle("/api"+path, limiter.LimitMiddleware(h)).Methods("POST")
	}

	shearH := &shear.Handler{Factors: cfg.Factors}
	springsH := &springs.Handler{}
	batchH := &batch.Handler{Factors: cfg.Factors, Workers: cfg.BatchWorkers}
	reportH := &report.Handler{Factors: cfg.Factors}
	drawingH := &drawing.Handler{}
	importH := &importer.Handler{Factors: cfg.Factors}

	api("/tools/shear/calc", shearH.Calc)
	api("/tools/shear/batch", batchH.Shear)
	api("/tools/shear/report/pdf", reportH.Shear)
	api("/tools/springs/calc", springsH.Calc)
	api("/tools/springs/report", reportH.Springs)
	api("/tools/drawing/piles", drawingH.Piles)
	api("/tools/import/shear", importH.Shear)
	api("/tools/import/springs", importH.Springs)
}

// newHandler builds the full middleware chain around the router.
func newHandler(cfg *config.Config) http.Handler {
	r := mux.NewRouter()
	HandleList(r, cfg)
	return middleware.Logging(middleware.CORS(cfg.CORSOrigin, r))
}

func main() {
	config.InitLog()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.SetLogLevel(cfg.LogLevel)
	if cfg.FactorsFile != "" {
		log.Info("safety factors loaded", "file", cfg.FactorsFile,
			"gama_c", cfg.Factors.GamaC, "gama_c2", cfg.Factors.GamaC2, "gama_s", cfg.Factors.GamaS)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("starting server", "addr", cfg.Addr, "tls", cfg.TLS())
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.PrintErr("server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("shutdown failed", "err", err)
	}
	wg.Wait()
	log.Info("server stopped")
}

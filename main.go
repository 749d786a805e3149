package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/catalog"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/event"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/httpmw"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/leaderboard"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/rng"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/server"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/sim"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/telemetry"
)

func main() {
	logger := log.Default()

	port := strings.TrimSpace(os.Getenv("DENTALTYCOON_PORT"))
	if port == "" {
		port = "8321"
	}
	dataDir := strings.TrimSpace(os.Getenv("DENTALTYCOON_DATA_DIR"))
	if dataDir == "" {
		dataDir = "data"
	}

	bal := config.FromEnv()

	cat := catalog.Default()
	if path := strings.TrimSpace(os.Getenv("DENTALTYCOON_CATALOG")); path != "" {
		loaded, err := catalog.Load(path)
		if err != nil {
			log.Fatalf("load catalog %s: %v", path, err)
		}
		cat = loaded
	}

	board, err := leaderboard.OpenLevelStore(filepath.Join(dataDir, "leaderboard"))
	if err != nil {
		log.Fatalf("open leaderboard: %v", err)
	}
	defer board.Close()

	engine := &sim.Engine{
		Practice:  practice.NewMemoryRepo(practice.New("My Practice")),
		Catalog:   cat,
		Balance:   bal,
		Events:    event.NewLive(rng.NewLive()),
		Rand:      rng.NewLive(),
		Clock:     sim.RealClock{},
		Decisions: sim.DefaultDecisionRules(),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := &server.App{
		Engine:    engine,
		Board:     board,
		Telemetry: telemetry.NewMemoryRepository(),
		Metrics:   server.NewMetrics(reg),
		BootNow:   engine.Clock.Now(),
	}

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}
	server.RegisterAdminUI(mux, rr, port)
	server.RegisterAPIRoutes(mux, rr, app)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	handler := httpmw.Chain(
		mux,
		httpmw.WithAccessLog(logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(logger),
	)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Printf("dentaltycoon listening on %s (difficulty=%s, season=%d days)\n", srv.Addr, bal.Difficulty, bal.SeasonDays)
	log.Fatal(srv.ListenAndServe())
}

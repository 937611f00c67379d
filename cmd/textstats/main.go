package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"textstats/internal/analysis"
	"textstats/internal/config"
	"textstats/internal/domain"
	csvexport "textstats/internal/export/csv"
	sqliteexport "textstats/internal/export/sqlite"
	"textstats/internal/service"
	"textstats/internal/source/drive"
	"textstats/internal/source/local"
	"textstats/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, phrases string
	var noTUI bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/textstats/config.yaml if not provided)")
	flag.StringVar(&phrases, "phrases", "", "Comma separated phrases to count per episode")
	flag.BoolVar(&noTUI, "no-tui", false, "Print the report instead of starting the dashboard")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var src domain.DocumentSource
	switch cfg.Source.Type {
	case "local", "":
		lc := cfg.Source.Local
		if lc == nil {
			lc = &config.LocalSourceConfig{Dir: "texte"}
		}
		s, err := local.NewSource(local.Config{Dir: lc.Dir, Patterns: lc.Patterns, Encoding: lc.Encoding})
		if err != nil {
			log.Fatalf("local source init failed: %v", err)
		}
		src = s
	case "drive":
		if cfg.Source.Drive == nil {
			log.Fatalf("drive source config missing")
		}
		dc := cfg.Source.Drive
		s, err := drive.NewSource(drive.Config{
			BaseURL:  dc.BaseURL,
			FolderID: dc.FolderID,
			MimeType: dc.MimeType,
			TokenEnv: dc.TokenEnv,
			Timeout:  time.Duration(dc.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("drive source init failed: %v", err)
		}
		src = s
	default:
		log.Fatalf("unknown document source: %s", cfg.Source.Type)
	}

	var exp domain.StatsExporter
	switch cfg.Export.Type {
	case "csv", "":
		exp = csvexport.NewExporter(cfg.Export.Path)
	case "sqlite":
		exp = sqliteexport.NewExporter(cfg.Export.Path)
	case "none":
	default:
		log.Fatalf("unknown exporter: %s", cfg.Export.Type)
	}

	mode, err := analysis.ParseMatchMode(cfg.Analysis.PhraseMatch)
	if err != nil {
		log.Fatal(err)
	}

	svc, err := service.NewAnalyticsService(src, exp, service.Options{
		StopwordsFile:    cfg.Stopwords.File,
		BuiltinStopwords: cfg.Stopwords.Builtin,
		TopN:             cfg.Analysis.TopN,
		PhraseMatch:      mode,
	})
	if err != nil {
		log.Fatalf("service init failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := svc.Analyze(ctx)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	if noTUI {
		var rows []domain.PhraseResult
		if phrases != "" {
			rows = svc.SearchPhrases(phrases)
		}
		fmt.Println(tui.RenderReport(report, rows))
		if report.Documents > 0 {
			if err := svc.Export(ctx); err != nil && !errors.Is(err, service.ErrExportDisabled) {
				log.Fatalf("export failed: %v", err)
			}
		}
		return
	}

	m := tui.New(svc, report)
	if phrases != "" {
		m = m.Search(phrases)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}

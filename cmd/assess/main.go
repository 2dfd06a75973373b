// Command assess runs one quality assessment pass: it loads a telemetry
// batch, maps the goal model for the configured application, computes and
// interprets every selected metric, and prints the aggregated scores.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/danielpatrickdp/quality-assessor/internal/assess"
	"github.com/danielpatrickdp/quality-assessor/internal/config"
	"github.com/danielpatrickdp/quality-assessor/internal/expr"
	"github.com/danielpatrickdp/quality-assessor/internal/interpret"
	"github.com/danielpatrickdp/quality-assessor/internal/logging"
	"github.com/danielpatrickdp/quality-assessor/internal/mapper"
	"github.com/danielpatrickdp/quality-assessor/internal/metric"
	"github.com/danielpatrickdp/quality-assessor/internal/model"
	"github.com/danielpatrickdp/quality-assessor/internal/store"
	"github.com/danielpatrickdp/quality-assessor/internal/telemetry"
)

// #region main

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	telemetryPath := flag.String("telemetry", "", "path to telemetry batch (JSON)")
	goals := flag.String("goals", "", "comma-separated goal selection (default: whole model)")
	appName := flag.String("app", "", "override application name")
	appType := flag.String("app-type", "", "override application type")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *telemetryPath == "" {
		fmt.Fprintln(os.Stderr, "usage: assess --telemetry path/to/batch.json [--config path] [--goals a,b] [--app name] [--app-type type] [--json]")
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *appName != "" {
		cfg.Application.Name = *appName
	}
	if *appType != "" {
		cfg.Application.Type = *appType
	}

	logger, closeLog := logging.Setup(cfg.Logger)
	defer closeLog()

	result, err := run(cfg, logger, *telemetryPath, selection(*goals, cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		if err := printJSON(result); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	printTable(result)
}

func selection(goalsFlag string, cfg *config.Config) []string {
	if goalsFlag == "" {
		return cfg.Assessment.Goals
	}
	var out []string
	for _, g := range strings.Split(goalsFlag, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// #endregion main

// #region run

func run(cfg *config.Config, logger *slog.Logger, telemetryPath string, selected []string) (*assess.Result, error) {
	batch, err := telemetry.Load(telemetryPath)
	if err != nil {
		return nil, fmt.Errorf("load telemetry: %w", err)
	}

	tree := model.DefaultModel()
	if cfg.Assessment.Model != "" {
		tree, err = model.LoadModel(cfg.Assessment.Model)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
	}

	// expression metrics attach before mapping so composite unions see them
	for _, def := range cfg.Metrics {
		m, err := expr.Compile(def)
		if err != nil {
			return nil, err
		}
		if err := mapper.AttachMetrics(tree, def.Goal, []metric.Metric{m}); err != nil {
			return nil, err
		}
	}

	app := mapper.Application{Name: cfg.Application.Name, Type: cfg.Application.Type}
	reg := mapper.DefaultRegistry()
	if err := mapper.MapTree(tree, reg, app); err != nil {
		return nil, fmt.Errorf("map goals: %w", err)
	}
	for _, name := range mapper.Unmapped(tree, reg) {
		logger.Warn("leaf goal has no mapper", "goal", name)
	}

	benchmarks := interpret.DefaultBenchmarks()
	benchmarks.Merge(cfg.Assessment.Benchmarks)

	var db *store.Store
	if cfg.Store.Path != "" {
		db, err = store.NewStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		defer db.Close()
	}
	if cfg.Assessment.Dynamic && db != nil {
		if err := seedDynamic(db, benchmarks); err != nil {
			return nil, err
		}
	}

	engine := assess.NewEngine(tree, app, assess.Options{
		Benchmarks: benchmarks,
		Dynamic:    cfg.Assessment.Dynamic,
		Logger:     logger,
	})
	result, err := engine.Run(batch, selected)
	if err != nil {
		return nil, err
	}

	if db != nil {
		if err := db.SaveRun(result); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
	}
	return result, nil
}

// seedDynamic raises benchmarks to past run maxima, so dynamic
// normalization carries across processes, not just within one run.
func seedDynamic(db *store.Store, benchmarks interpret.Benchmarks) error {
	for acronym, current := range benchmarks {
		history, err := db.MetricHistory(acronym, dynamicHistoryDepth)
		if err != nil {
			return fmt.Errorf("metric history %s: %w", acronym, err)
		}
		for _, v := range history {
			if v > current {
				current = v
			}
		}
		benchmarks[acronym] = current
	}
	return nil
}

const dynamicHistoryDepth = 32

// #endregion run

// #region output

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable(res *assess.Result) {
	fmt.Printf("Run:         %s\n", res.RunID)
	fmt.Printf("Application: %s (%s)\n", res.Application.Name, res.Application.Type)
	fmt.Printf("Overall:     %.4f\n\n", res.Overall)

	fmt.Printf("%-50s  %8s  %7s  %7s\n", "Goal", "Score", "Weight", "Metrics")
	fmt.Printf("%-50s  %8s  %7s  %7s\n", strings.Repeat("-", 50), "--------", "-------", "-------")
	for _, g := range res.Goals {
		fmt.Printf("%-50s  %8.4f  %7.1f  %7d\n", g.Path, g.Score, g.Weight, g.Metrics)
	}

	fmt.Printf("\n%-30s  %-5s  %10s  %11s  %s\n", "Metric", "Acr", "Value", "Interpreted", "Unit")
	fmt.Printf("%-30s  %-5s  %10s  %11s  %s\n", strings.Repeat("-", 30), "-----", "----------", "-----------", "--------")
	for _, m := range res.Metrics {
		fmt.Printf("%-30s  %-5s  %10.2f  %11.4f  %s\n", m.Name, m.Acronym, m.Value, m.Interpreted, m.Unit)
	}

	if len(res.Required) > 0 {
		fmt.Printf("\nRequired telemetry: %s\n", strings.Join(res.Required, ", "))
	}
	if len(res.Unknown) > 0 {
		fmt.Printf("Unknown selections: %s\n", strings.Join(res.Unknown, ", "))
	}
	if len(res.EmptyLeaves) > 0 {
		fmt.Printf("Goals without metrics: %s\n", strings.Join(res.EmptyLeaves, ", "))
	}
}

// #endregion output

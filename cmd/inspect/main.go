// Command inspect reads the assessment database: recent runs, single-run
// detail, and the score history of one goal.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/danielpatrickdp/quality-assessor/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to assessor.db")
	last := flag.Int("last", 20, "show N most recent runs")
	run := flag.String("run", "", "show single run detail")
	goal := flag.String("goal", "", "show score history of one goal")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/assessor.db [--last N] [--run id] [--goal name] [--json]")
		os.Exit(2)
	}

	db, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	switch {
	case *run != "":
		err = runDetailMode(db, *run, *jsonOut)
	case *goal != "":
		err = runGoalMode(db, *goal, *last, *jsonOut)
	default:
		err = runListMode(db, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

func runListMode(db *store.Store, last int, jsonOut bool) error {
	runs, err := db.RecentRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}
	if jsonOut {
		return printJSON(runs)
	}

	fmt.Printf("%-12s  %-20s  %-12s  %8s  %s\n", "Run", "Application", "Type", "Overall", "Time")
	fmt.Printf("%-12s  %-20s  %-12s  %8s  %s\n",
		"------------", "--------------------", "------------", "--------", "--------------------")
	for _, r := range runs {
		fmt.Printf("%-12s  %-20s  %-12s  %8.4f  %s\n",
			shortID(r.RunID), r.AppName, r.AppType, r.Overall,
			r.CreatedAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

func runDetailMode(db *store.Store, runID string, jsonOut bool) error {
	res, err := db.RunDetail(runID)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(res)
	}

	fmt.Printf("Run:         %s\n", res.RunID)
	fmt.Printf("Application: %s (%s)\n", res.Application.Name, res.Application.Type)
	fmt.Printf("Created:     %s\n", res.CreatedAt.Format("2006-01-02T15:04:05Z"))
	fmt.Printf("Overall:     %.4f\n\n", res.Overall)

	fmt.Printf("%-50s  %8s  %7s\n", "Goal", "Score", "Weight")
	for _, g := range res.Goals {
		fmt.Printf("%-50s  %8.4f  %7.1f\n", g.Path, g.Score, g.Weight)
	}
	fmt.Printf("\n%-30s  %-5s  %10s  %11s\n", "Metric", "Acr", "Value", "Interpreted")
	for _, m := range res.Metrics {
		fmt.Printf("%-30s  %-5s  %10.2f  %11.4f\n", m.Name, m.Acronym, m.Value, m.Interpreted)
	}
	if len(res.EmptyLeaves) > 0 {
		fmt.Printf("\nGoals without metrics: %s\n", strings.Join(res.EmptyLeaves, ", "))
	}
	return nil
}

// #endregion detail-mode

// #region goal-mode

func runGoalMode(db *store.Store, goal string, last int, jsonOut bool) error {
	points, err := db.GoalHistory(goal, last)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Fprintf(os.Stderr, "no scores found for goal %q\n", goal)
		return nil
	}
	if jsonOut {
		return printJSON(points)
	}

	fmt.Printf("Score history: %s\n\n", goal)
	fmt.Printf("%-12s  %8s  %s\n", "Run", "Score", "Time")
	for _, p := range points {
		fmt.Printf("%-12s  %8.4f  %s\n",
			shortID(p.RunID), p.Score, p.CreatedAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

// #endregion goal-mode

// #region helpers

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// #endregion helpers

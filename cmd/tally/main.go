package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/ahrav/go-ballot/infrastructure/middleware"
	"github.com/ahrav/go-ballot/internal/application"
)

func main() {
	var (
		configPath = flag.String("config", "election.yaml", "Election YAML file")
		metrics    = flag.Bool("metrics", false, "Register Prometheus metrics for rule evaluations")
	)
	flag.Parse()

	registry := application.NewDefaultRuleRegistry()
	loader, err := application.NewElectionLoader(registry)
	if err != nil {
		log.Fatalf("Failed to create loader: %v", err)
	}

	ctx := context.Background()
	election, err := loader.LoadFromFile(ctx, *configPath)
	if err != nil {
		log.Fatalf("Failed to load election: %v", err)
	}

	if *metrics {
		collector := middleware.NewPrometheusMetrics()
		wrapped := election.Rules()
		for i, r := range wrapped {
			wrapped[i] = middleware.NewInstrumentedRule(r, collector)
		}
		election, err = application.NewElection(election.Name(), election.Profile(), wrapped)
		if err != nil {
			log.Fatalf("Failed to instrument election: %v", err)
		}
	}

	results, err := election.Run(ctx)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Election: %s\n", election.Name())
	fmt.Printf("- Candidates: %d\n", len(election.Profile().Candidates()))
	fmt.Printf("- Voters: %d\n", len(election.Profile().Voters()))
	fmt.Println()

	for _, name := range names {
		res := results[name]
		if res.Winner == nil {
			fmt.Printf("%-24s no winner (all candidates eliminated in %d rounds)\n", name, res.Rounds)
			continue
		}
		line := fmt.Sprintf("%-24s winner: candidate %d", name, *res.Winner)
		if len(res.Scores) > 0 {
			line += fmt.Sprintf(" (score %d)", res.WinningScore)
		}
		if len(res.TiedWith) > 1 {
			line += fmt.Sprintf(" [tie among %v]", res.TiedWith)
		}
		fmt.Println(line)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/ahrav/go-ballot/internal/testutils"
)

func main() {
	var (
		name       = flag.String("name", "synthetic-election", "Election name")
		candidates = flag.Int("candidates", 5, "Number of candidates")
		voters     = flag.Int("voters", 20, "Number of voters")
		seed       = flag.Int64("seed", 0, "Random seed (0 uses current time)")
		outputPath = flag.String("output", "testdata/elections/synthetic_election.yaml", "Output file path")
	)
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	config, err := testutils.GenerateElectionConfig(*name, *candidates, *voters, *seed)
	if err != nil {
		log.Fatalf("Failed to generate election: %v", err)
	}

	if err := testutils.SaveElectionConfig(config, *outputPath); err != nil {
		log.Fatalf("Failed to save election: %v", err)
	}

	fmt.Printf("Generated election dataset:\n")
	fmt.Printf("- Path: %s\n", *outputPath)
	fmt.Printf("- Candidates: %d\n", len(config.Candidates))
	fmt.Printf("- Ballots: %d\n", len(config.Ballots))
	fmt.Printf("- Rules: %d\n", len(config.Rules))
	fmt.Printf("- Seed: %d\n", *seed)
}

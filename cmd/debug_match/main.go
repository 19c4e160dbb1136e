package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"tablet-ingest/core/config"
	"tablet-ingest/core/serial"
	"tablet-ingest/core/team"
	"tablet-ingest/feature/tracker"
)

// Prints the closest tracker serials for each serial given on the command line.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_match <serial>...")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}
	profiles, err := team.LoadProfiles(cfg.Team.ProfilesFile)
	if err != nil {
		log.Fatal(err)
	}
	profile, err := profiles.Get(cfg.Team.Name)
	if err != nil {
		log.Fatal(err)
	}

	path := cfg.Paths.TrackerFor(cfg.Team.Name)
	candidates, err := tracker.Load(path, profile.TrackerSlots)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Loaded %d tracker serials from %s\n", len(candidates), path)

	for _, arg := range os.Args[1:] {
		query := serial.Number(arg)
		fmt.Printf("\n=== %s (valid: %v) ===\n", arg, serial.IsValid(arg))

		best, score, ok := serial.BestMatch(query, candidates)
		if !ok {
			fmt.Println("No candidates")
			continue
		}
		fmt.Printf("Best match: %s (%.1f)\n", best, score)

		// Runners-up help spot transposed digits
		ranked := make([]serial.Number, len(candidates))
		copy(ranked, candidates)
		sort.SliceStable(ranked, func(i, j int) bool {
			return serial.Similarity(query, ranked[i]) > serial.Similarity(query, ranked[j])
		})
		for _, c := range ranked[:min(5, len(ranked))] {
			fmt.Printf("  %s  %.1f\n", c, serial.Similarity(query, c))
		}
	}
}

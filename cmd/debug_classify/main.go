package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"tablet-ingest/core/config"
	"tablet-ingest/feature/naming"
)

// Prints how each path given on the command line is classified by the
// configured team's naming rules. Paths ending in "/" are taken as directories.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_classify <path>...")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	sets := map[string]func() (naming.RuleSet, error){
		"inventory": func() (naming.RuleSet, error) { return naming.Inventory(cfg.Team.Name) },
		"storybook": func() (naming.RuleSet, error) { return naming.Events(cfg.Team.Name, naming.Storybooks) },
		"video":     func() (naming.RuleSet, error) { return naming.Events(cfg.Team.Name, naming.Videos) },
	}

	fmt.Printf("Team: %s\n", cfg.Team.Name)
	for _, path := range os.Args[1:] {
		isDir := len(path) > 1 && path[len(path)-1] == '/'
		fmt.Printf("\n=== %s ===\n", path)

		for _, name := range []string{"inventory", "storybook", "video"} {
			rules, err := sets[name]()
			if err != nil {
				fmt.Printf("  %-9s  no rules\n", name)
				continue
			}

			a, err := rules.Classify(path, isDir)
			switch {
			case errors.Is(err, naming.ErrUnrecognized):
				fmt.Printf("  %-9s  unrecognized\n", name)
			case err != nil:
				fmt.Printf("  %-9s  rule=%s segment=%q fatal=%v: %v\n", name, a.Rule, a.Segment, naming.IsFatal(err), err)
			default:
				fmt.Printf("  %-9s  rule=%s kind=%s archived=%v segment=%q serial=%q legacy=%v\n",
					name, a.Rule, a.Kind, a.Archived, a.Segment, a.Serial, a.Legacy)
			}
		}
	}
}

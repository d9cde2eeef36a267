package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Rl0h4w/mealty-food-creator/internal/catalog"
	"github.com/Rl0h4w/mealty-food-creator/internal/config"
	"github.com/Rl0h4w/mealty-food-creator/internal/database"
	"github.com/Rl0h4w/mealty-food-creator/internal/diet"
	"github.com/Rl0h4w/mealty-food-creator/internal/nutrition"
	"github.com/Rl0h4w/mealty-food-creator/internal/planner"
	"github.com/Rl0h4w/mealty-food-creator/internal/scraper"
	"github.com/Rl0h4w/mealty-food-creator/internal/solver"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store := catalog.NewStore(db.SQL)
	catalogSvc := catalog.NewService(store, scraper.New(cfg.MealtyBaseURL))

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "refresh":
		items, err := catalogSvc.Refresh(ctx)
		if err != nil {
			log.Fatalf("Catalog refresh failed: %v", err)
		}
		fmt.Printf("Fetched %d products from %s\n", len(items), cfg.MealtyBaseURL)
	case "status":
		count, err := store.Count(ctx)
		if err != nil {
			log.Fatalf("Failed to read catalog: %v", err)
		}
		if count == 0 {
			fmt.Println("Catalog is empty. Run 'mealty refresh' first.")
			return
		}
		updated, err := store.LastUpdated(ctx)
		if err != nil {
			log.Fatalf("Failed to read catalog timestamp: %v", err)
		}
		stale, err := store.NeedsRefresh(ctx)
		if err != nil {
			log.Fatalf("Failed to check catalog freshness: %v", err)
		}
		fmt.Printf("Products: %d\nLast updated: %s\nStale: %v\n", count, updated.Format("2006-01-02"), stale)
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		weight := planCmd.Float64("weight", 0, "Body weight in kg")
		height := planCmd.Float64("height", 0, "Height in cm")
		age := planCmd.Int("age", 0, "Age in years")
		gender := planCmd.String("gender", "male", "Gender: male or female")
		bodyFat := planCmd.Float64("bodyfat", 0, "Body fat percent (0 to estimate from gender formula)")
		activity := planCmd.String("activity", "sedentary", "Activity: sedentary, light, moderate, high, extra")
		goal := planCmd.String("goal", "maintain", "Goal: lose, maintain, gain")
		exclude := planCmd.String("exclude", "", "Comma-separated product names to exclude")
		planCmd.Parse(os.Args[2:])

		profile, err := buildProfile(*weight, *height, *age, *gender, *bodyFat, *activity, *goal)
		if err != nil {
			log.Fatalf("Invalid flags: %v", err)
		}

		items, err := catalogSvc.Ensure(ctx)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
		items = catalog.Filter(items, splitExclusions(*exclude))
		if len(items) == 0 {
			log.Fatal("No products left after exclusions")
		}

		target := nutrition.TargetFor(profile)
		fmt.Printf("Daily targets: %.0f kcal, P %.0fg / F %.0fg / C %.0fg\n\n",
			target.Calories, target.Proteins, target.Fats, target.Carbs)

		engine := diet.NewEngine(solver.NewBranchBound(cfg.SolveTimeLimit), diet.Options{})
		if err := runWeek(ctx, engine, items, target); err != nil {
			log.Fatalf("Planning failed: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// runWeek plans a full week accepting the first proposal for every day, the
// non-interactive counterpart of the bot's accept/reject flow.
func runWeek(ctx context.Context, engine planner.SearchEngine, items []catalog.Item, target nutrition.Target) error {
	week := planner.NewWeek(engine, items, target)
	for {
		proposal, err := week.Propose(ctx)
		if err != nil {
			return err
		}
		if proposal == nil {
			break
		}
		if err := week.Accept(); err != nil {
			return err
		}
	}

	plan, err := week.Plan()
	if err != nil {
		return err
	}

	for _, day := range plan.Days {
		fmt.Printf("Day %d:\n", day.Day)
		if day.Failed() {
			fmt.Println("  no feasible diet")
			continue
		}
		for _, p := range day.Solution.Portions {
			fmt.Printf("  %dx %s (%.0f RUB)\n", p.Quantity, p.Item.Name, p.Item.Price*float64(p.Quantity))
		}
		totals := day.Solution.Totals()
		fmt.Printf("  totals: %.0f kcal, P %.1fg / F %.1fg / C %.1fg, %.2f RUB\n",
			totals.Calories, totals.Proteins, totals.Fats, totals.Carbs, day.Cost)
	}
	fmt.Printf("\nWeek total: %.2f RUB\n", plan.TotalCost())
	return nil
}

func buildProfile(weight, height float64, age int, gender string, bodyFat float64, activity, goal string) (nutrition.Profile, error) {
	p := nutrition.Profile{Weight: weight, Height: height, Age: age}

	if weight <= 0 || height <= 0 || age <= 0 {
		return p, fmt.Errorf("-weight, -height and -age are required")
	}

	switch gender {
	case "male":
		p.Gender = nutrition.Male
	case "female":
		p.Gender = nutrition.Female
	default:
		return p, fmt.Errorf("unknown gender %q", gender)
	}

	if bodyFat > 0 && bodyFat < 100 {
		p.BodyFat = &bodyFat
	}

	switch activity {
	case "sedentary":
		p.Activity = nutrition.Sedentary
	case "light":
		p.Activity = nutrition.LightlyActive
	case "moderate":
		p.Activity = nutrition.ModeratelyActive
	case "high":
		p.Activity = nutrition.VeryActive
	case "extra":
		p.Activity = nutrition.ExtraActive
	default:
		return p, fmt.Errorf("unknown activity level %q", activity)
	}

	switch goal {
	case "lose":
		p.Goal = nutrition.LoseWeight
	case "maintain":
		p.Goal = nutrition.MaintainWeight
	case "gain":
		p.Goal = nutrition.GainWeight
	default:
		return p, fmt.Errorf("unknown goal %q", goal)
	}

	return p, nil
}

func splitExclusions(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printUsage() {
	fmt.Println("Usage: mealty <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  refresh    Re-scrape the Mealty catalog into the local cache")
	fmt.Println("  status     Show cached catalog size and freshness")
	fmt.Println("  plan       Plan a week non-interactively (see 'plan -h' for flags)")
}

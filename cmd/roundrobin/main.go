package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/excel"
	"github.com/derekprior/roundrobin/internal/logging"
	"github.com/derekprior/roundrobin/internal/schedule"
	"github.com/derekprior/roundrobin/internal/store"
	"github.com/derekprior/roundrobin/internal/validator"
)

const defaultConfigFile = "league.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "roundrobin",
		Short: "Round-robin league schedule generator",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter league.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate, validate and repair schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: league.yaml in current directory)")

	var outputFile, dbPath string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), configPath, outputFile, dbPath)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")
	generateCmd.Flags().StringVar(&dbPath, "db", "", "Also store the season in this SQLite database")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx>",
		Short:        "Validate a schedule against the league roster",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath, args[0])
		},
	}

	normalizeCmd := &cobra.Command{
		Use:          "normalize <schedule.xlsx>",
		Short:        "Repair hand-edited weeks so every team plays or sits exactly once",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runNormalize(configPath, args[0])
		},
	}

	scheduleCmd.AddCommand(generateCmd, validateCmd, normalizeCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd, newServeCmd())
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# League Configuration
# ====================
# This file defines the roster and season length for a round-robin schedule.

# League identifies who the schedule belongs to. The owner is used as the
# storage key when the season is saved to a database; it defaults to the name.
league:
  name: Friday Night League
  owner: "0x4b1c3f0a9e2d7c8b6a5f4e3d2c1b0a9f8e7d6c5b"

# Season length in weeks. With N teams every team meets every other team once
# per cycle; a cycle is N-1 weeks (N weeks when N is odd, since one team sits
# out each week). Longer seasons keep rotating, swapping home and away on
# alternate cycles.
season:
  total_weeks: 9

# Teams are identified by id, compared without regard to case, and each id may
# appear only once. Names are only used for display. Ids that are empty or the
# all-zero address are ignored.
teams:
  - id: "0x1111111111111111111111111111111111111111"
    name: Angels
  - id: "0x2222222222222222222222222222222222222222"
    name: Astros
  - id: "0x3333333333333333333333333333333333333333"
    name: Cubs
  - id: "0x4444444444444444444444444444444444444444"
    name: Padres
  - id: "0x5555555555555555555555555555555555555555"
    name: Phillies
`

type teamMetrics struct {
	Home, Away, Byes int
}

func computeMetrics(season schedule.Season) map[string]*teamMetrics {
	metrics := make(map[string]*teamMetrics)
	get := func(t schedule.Team) *teamMetrics {
		m, ok := metrics[t.Key()]
		if !ok {
			m = &teamMetrics{}
			metrics[t.Key()] = m
		}
		return m
	}
	for _, wk := range season {
		for _, p := range wk {
			switch p := p.(type) {
			case schedule.Match:
				get(p.Home).Home++
				get(p.Away).Away++
			case schedule.Bye:
				get(p.Team).Byes++
			}
		}
	}
	return metrics
}

func runGenerate(ctx context.Context, configPath, outputPath, dbPath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	roster := cfg.Roster()
	fmt.Printf("Scheduling %d teams over %d weeks...\n", len(roster), cfg.Season.TotalWeeks)

	season := schedule.GenerateSeason(roster, cfg.Season.TotalWeeks)
	fmt.Printf("✓ %d weeks generated\n", len(season))

	metrics := computeMetrics(season)
	fmt.Println("\nPer Team Metrics:")
	fmt.Printf("  %-20s %5s %5s %5s\n", "Team", "Home", "Away", "Byes")
	for _, team := range roster {
		m := metrics[team.ID]
		if m == nil {
			m = &teamMetrics{}
		}
		fmt.Printf("  %-20s %5d %5d %5d\n", team.DisplayName(), m.Home, m.Away, m.Byes)
	}

	warnings := 0
	for _, v := range validator.ValidateSeason(cfg, season) {
		if v.Type == "warning" {
			warnings++
			fmt.Printf("  ⚠ %s\n", v.Message)
		}
	}
	if warnings == 0 {
		fmt.Println("\n✓ No guideline violations")
	}

	if err := excel.Save(cfg, season, outputPath); err != nil {
		return err
	}
	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)

	if dbPath != "" {
		if err := persist(ctx, dbPath, cfg, season); err != nil {
			return err
		}
		fmt.Printf("✓ Season stored in %s for %s\n", dbPath, cfg.League.Owner)
	}
	return nil
}

func persist(ctx context.Context, dbPath string, cfg *config.Config, season schedule.Season) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	st, err := store.Open(ctx, dbPath, logging.New("warn", os.Stderr))
	if err != nil {
		return err
	}
	defer st.Close()

	return st.SaveLeague(ctx, store.League{
		Owner:      schedule.Team{ID: cfg.League.Owner}.Key(),
		TotalWeeks: cfg.Season.TotalWeeks,
		Teams:      cfg.Roster(),
		Season:     season,
	})
}

func runValidate(configPath, schedulePath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Rule violation: %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ Guideline violation: %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d rule violations, %d guideline violations\n", errors, warnings)

	// Regenerate team sheets from master schedule
	if err := excel.UpdateTeamSheets(schedulePath, cfg); err != nil {
		return fmt.Errorf("updating team sheets: %w", err)
	}
	fmt.Printf("✓ Team sheets updated in %s\n", schedulePath)

	if errors > 0 {
		return fmt.Errorf("%d constraint violations found", errors)
	}
	return nil
}

func runNormalize(configPath, schedulePath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	problems, err := validator.NormalizeFile(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("normalizing: %w", err)
	}

	weeks := make([]int, 0, len(problems))
	for wk := range problems {
		weeks = append(weeks, wk)
	}
	sort.Ints(weeks)
	for _, wk := range weeks {
		fmt.Printf("⚠ Week %d repaired:\n", wk)
		for _, msg := range problems[wk] {
			fmt.Printf("    %s\n", msg)
		}
	}

	if len(weeks) == 0 {
		fmt.Println("✓ Every week was already valid")
	} else {
		fmt.Printf("\n%d weeks repaired\n", len(weeks))
	}
	fmt.Printf("✓ Schedule rewritten to %s\n", schedulePath)
	return nil
}

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mikey/cafe-hours/internal/core"
	"github.com/mikey/cafe-hours/internal/di"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flags    di.CLIFlags
	at       string
	jsonOut  bool
	atLayout = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "cafe-hours",
		Short:        "Evaluate café opening hours and manage saved spots",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return parseAt()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "Path to config file")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose logging")
	pf.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	pf.StringVar(&flags.Locale, "locale", "", "Language for status texts (en, de, fr, es)")
	pf.StringVar(&at, "at", "", "Evaluate at this local time instead of now (2006-01-02 15:04)")
	pf.BoolVar(&jsonOut, "json", false, "Print results as JSON")

	root.AddCommand(
		newStatusCommand(),
		newParseCommand(),
		newNormalizeCommand(),
		newSpotsCommand(),
	)
	return root
}

func parseAt() error {
	if at == "" {
		return nil
	}
	for _, layout := range atLayout {
		if t, err := time.ParseInLocation(layout, at, time.Local); err == nil {
			flags.At = t
			return nil
		}
	}
	return fmt.Errorf("invalid --at time %q", at)
}

// invoke builds the CLI container and runs fn with its dependencies
func invoke(fn interface{}) error {
	container, err := di.BuildCLIContainer(&flags)
	if err != nil {
		return fmt.Errorf("failed to build dependency container: %w", err)
	}
	if err := container.Invoke(fn); err != nil {
		return err
	}
	return container.Invoke(func(logger *zap.Logger) {
		_ = logger.Sync()
	})
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status [opening-hours]",
		Short: "Report whether a place with the given opening hours is open",
		Long: `Report whether a place with the given opening hours is open.
Without an argument every line of stdin is evaluated.`,
		Example: `  cafe-hours status "Mo-Fr 08:00-18:00; Sa 09:00-14:00"
  cafe-hours status --at "2024-01-15 10:00" --locale de "Mo-Fr 08:00-18:00"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(func(evaluator *core.Evaluator) error {
				if len(args) > 0 {
					result := evaluator.Evaluate(strings.Join(args, " "))
					if jsonOut {
						return printJSON(result)
					}
					fmt.Println(result.StatusText)
					return nil
				}

				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					line := scanner.Text()
					result := evaluator.Evaluate(line)
					if jsonOut {
						if err := printJSON(struct {
							Hours string `json:"hours"`
							core.EvaluationResult
						}{line, result}); err != nil {
							return err
						}
						continue
					}
					fmt.Printf("%-18s %s\n", result.StatusText, line)
				}
				return scanner.Err()
			})
		},
	}
}

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <opening-hours>",
		Short: "Print the weekly schedule parsed from opening hours",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(func(evaluator *core.Evaluator) error {
				hours := strings.Join(args, " ")
				if core.IsAlwaysOpen(hours) {
					fmt.Println("Open 24/7")
					return nil
				}

				schedule, err := evaluator.Parse(hours)
				if err != nil {
					return err
				}
				if jsonOut {
					return printJSON(scheduleDays(schedule))
				}
				if len(schedule) == 0 {
					fmt.Println("No opening hours in effect")
					return nil
				}
				for day := time.Sunday; day <= time.Saturday; day++ {
					intervals, ok := schedule[day]
					if !ok {
						continue
					}
					ranges := make([]string, 0, len(intervals))
					for _, interval := range intervals {
						ranges = append(ranges, formatInterval(interval))
					}
					fmt.Printf("%-10s %s\n", day, strings.Join(ranges, ", "))
				}
				return nil
			})
		},
	}
}

func newNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <free-form hours>",
		Short: "Rewrite free-form opening hours into the supported syntax",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(func(service *core.SpotService, repo core.SpotRepository, normalizer core.HoursNormalizer) error {
				defer repo.Close()
				if !service.CanNormalize() {
					return fmt.Errorf("hours normalizer is disabled, set normalizer.enabled in the config")
				}
				defer closeNormalizer(normalizer)

				normalized, err := service.NormalizeHours(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				if jsonOut {
					return printJSON(map[string]string{"opening_hours": normalized})
				}
				fmt.Println(normalized)
				return nil
			})
		},
	}
}

type dayIntervals struct {
	Day       string          `json:"day"`
	Intervals []core.Interval `json:"intervals"`
}

func scheduleDays(schedule core.Schedule) []dayIntervals {
	days := []dayIntervals{}
	for day := time.Sunday; day <= time.Saturday; day++ {
		if intervals, ok := schedule[day]; ok {
			days = append(days, dayIntervals{Day: day.String(), Intervals: intervals})
		}
	}
	return days
}

func closeNormalizer(normalizer core.HoursNormalizer) {
	if closer, ok := normalizer.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

func formatInterval(interval core.Interval) string {
	end := formatHHMM(interval.End)
	if interval.End > 2400 {
		end = formatHHMM(interval.End-2400) + " (+1)"
	}
	return formatHHMM(interval.Start) + "-" + end
}

func formatHHMM(v int) string {
	return fmt.Sprintf("%02d:%02d", v/100, v%100)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

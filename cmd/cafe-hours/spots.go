package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mikey/cafe-hours/internal/core"
	"github.com/spf13/cobra"
)

func newSpotsCommand() *cobra.Command {
	var user string

	spots := &cobra.Command{
		Use:   "spots",
		Short: "Manage a user's saved spots",
	}
	spots.PersistentFlags().StringVarP(&user, "user", "u", "", "User whose spots to manage")
	_ = spots.MarkPersistentFlagRequired("user")

	spots.AddCommand(
		newSpotsListCommand(&user),
		newSpotsAddCommand(&user),
		newSpotsRemoveCommand(&user),
		newSpotsImportCommand(&user),
	)
	return spots
}

func newSpotsListCommand(user *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved spots with their opening status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(func(service *core.SpotService, repo core.SpotRepository) error {
				defer repo.Close()

				statuses, err := service.ListSpots(cmd.Context(), *user)
				if err != nil {
					return err
				}
				if jsonOut {
					return printJSON(statuses)
				}
				return printSpots(os.Stdout, statuses)
			})
		},
	}
}

func newSpotsAddCommand(user *string) *cobra.Command {
	spot := core.Spot{}

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Save a spot",
		Example: `  cafe-hours spots add -u alice --place osm:123 --name "Kaffeehaus" --hours "Mo-Fr 08:00-18:00"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(func(service *core.SpotService, repo core.SpotRepository) error {
				defer repo.Close()

				spot.UserID = *user
				saved, err := service.SaveSpot(cmd.Context(), &spot)
				if err != nil {
					return err
				}
				if jsonOut {
					return printJSON(saved)
				}
				fmt.Printf("Saved %s (%s)\n", saved.Name, saved.ID)
				if saved.RawOpeningHours != "" {
					fmt.Printf("Opening hours rewritten to %q\n", saved.OpeningHours)
				}
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&spot.ID, "id", "", "Spot ID; generated when empty")
	f.StringVar(&spot.PlaceID, "place", "", "Place ID of the café")
	f.StringVar(&spot.Name, "name", "", "Display name")
	f.StringVar(&spot.Address, "address", "", "Street address")
	f.Float64Var(&spot.Latitude, "lat", 0, "Latitude")
	f.Float64Var(&spot.Longitude, "lng", 0, "Longitude")
	f.StringVar(&spot.OpeningHours, "hours", "", "Opening hours")
	_ = cmd.MarkFlagRequired("place")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSpotsRemoveCommand(user *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <spot-id>",
		Short: "Remove a saved spot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke(func(service *core.SpotService, repo core.SpotRepository) error {
				defer repo.Close()

				if err := service.DeleteSpot(cmd.Context(), *user, args[0]); err != nil {
					return err
				}
				fmt.Printf("Removed %s\n", args[0])
				return nil
			})
		},
	}
}

func newSpotsImportCommand(user *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Save every spot of a YAML list (stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = os.Stdin
			if len(args) == 1 {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open input file: %w", err)
				}
				defer file.Close()
				in = file
			}

			return invoke(func(service *core.SpotService, repo core.SpotRepository) error {
				defer repo.Close()

				n, err := service.ImportSpots(cmd.Context(), *user, in)
				if err != nil {
					return err
				}
				fmt.Printf("Imported %d spots\n", n)
				return nil
			})
		},
	}
}

func printSpots(w io.Writer, statuses []core.SpotStatus) error {
	if len(statuses) == 0 {
		_, err := fmt.Fprintln(w, "No saved spots")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tHOURS")
	for _, status := range statuses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			status.Spot.ID, status.Spot.Name, status.Hours.StatusText, status.Spot.OpeningHours)
	}
	return tw.Flush()
}

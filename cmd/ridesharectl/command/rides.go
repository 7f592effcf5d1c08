package command

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spec-kit/rideshare-client/internal/booking"
	"github.com/spec-kit/rideshare-client/internal/domain"
	"github.com/spec-kit/rideshare-client/internal/gateway"
)

var ridesCmd = &cobra.Command{
	Use:   "rides",
	Short: "Browse, search and post rides",
}

var ridesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available rides",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dashboard, err := booking.NewDashboard(cmd.Context(), client.gateway, client.store, client.nav, client.logger)
		if err != nil {
			return redirectError(err)
		}
		if dashboard.Phase() == booking.PhaseFailed {
			return fmt.Errorf("could not load rides, please try again")
		}
		printRides(dashboard.Rides())
		return nil
	},
}

var ridesSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search rides by route and filters",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dashboard, err := booking.NewDashboard(cmd.Context(), client.gateway, client.store, client.nav, client.logger)
		if err != nil {
			return redirectError(err)
		}

		query := gateway.SearchQuery{}
		query.Source, _ = cmd.Flags().GetString("from")
		query.Destination, _ = cmd.Flags().GetString("to")
		query.Date, _ = cmd.Flags().GetString("date")
		query.VehicleModel, _ = cmd.Flags().GetString("vehicle")
		if cmd.Flags().Changed("min-fare") {
			fare, _ := cmd.Flags().GetFloat64("min-fare")
			query.MinFare = &fare
		}
		if cmd.Flags().Changed("max-fare") {
			fare, _ := cmd.Flags().GetFloat64("max-fare")
			query.MaxFare = &fare
		}

		if err := dashboard.Search(cmd.Context(), query); err != nil {
			return err
		}
		if dashboard.Phase() == booking.PhaseFailed {
			return fmt.Errorf("search failed, please try again")
		}
		printRides(dashboard.Rides())
		return nil
	},
}

var ridesPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a ride offer (drivers only)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, err := booking.NewPostRidePage(client.gateway, client.store, client.nav, client.logger)
		if err != nil {
			return redirectError(err)
		}

		form := booking.PostRideForm{}
		form.Source, _ = cmd.Flags().GetString("from")
		form.Destination, _ = cmd.Flags().GetString("to")
		form.Date, _ = cmd.Flags().GetString("date")
		form.Time, _ = cmd.Flags().GetString("time")
		form.AvailableSeats, _ = cmd.Flags().GetInt("seats")
		form.FarePerSeat, _ = cmd.Flags().GetFloat64("fare")
		form.SourceLat = floatFlag(cmd, "source-lat")
		form.SourceLng = floatFlag(cmd, "source-lng")
		form.DestLat = floatFlag(cmd, "dest-lat")
		form.DestLng = floatFlag(cmd, "dest-lng")

		if err := page.Submit(cmd.Context(), form); err != nil {
			return fmt.Errorf("%s", page.Error())
		}
		fmt.Println(page.Info())
		return nil
	},
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book seats on a ride",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dashboard, err := booking.NewDashboard(cmd.Context(), client.gateway, client.store, client.nav, client.logger)
		if err != nil {
			return redirectError(err)
		}

		rideID, _ := cmd.Flags().GetInt64("ride")
		if cmd.Flags().Changed("seats") {
			seats, _ := cmd.Flags().GetInt("seats")
			dashboard.SetSeats(rideID, seats)
		}

		if err := dashboard.Book(cmd.Context(), rideID); err != nil {
			return err
		}
		fmt.Println("Booking confirmed. Updated availability:")
		printRides(dashboard.Rides())
		return nil
	},
}

func floatFlag(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetFloat64(name)
	return &value
}

func printRides(rides []domain.Ride) {
	if len(rides) == 0 {
		fmt.Println("No rides found")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFROM\tTO\tDEPARTURE\tSEATS\tFARE")
	for _, ride := range rides {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%.2f\n",
			ride.ID, ride.Source, ride.Destination, ride.DepartureTime, ride.AvailableSeats, ride.FarePerSeat)
	}
	_ = w.Flush()
}

func init() {
	ridesSearchCmd.Flags().String("from", "", "source city")
	ridesSearchCmd.Flags().String("to", "", "destination city")
	ridesSearchCmd.Flags().String("date", "", "departure date (yyyy-MM-dd)")
	ridesSearchCmd.Flags().Float64("min-fare", 0, "minimum fare per seat")
	ridesSearchCmd.Flags().Float64("max-fare", 0, "maximum fare per seat")
	ridesSearchCmd.Flags().String("vehicle", "", "vehicle model filter")

	ridesPostCmd.Flags().String("from", "", "source city")
	ridesPostCmd.Flags().String("to", "", "destination city")
	ridesPostCmd.Flags().String("date", "", "departure date (yyyy-MM-dd)")
	ridesPostCmd.Flags().String("time", "", "departure time (HH:mm)")
	ridesPostCmd.Flags().Int("seats", 0, "available seats")
	ridesPostCmd.Flags().Float64("fare", 0, "fare per seat")
	ridesPostCmd.Flags().Float64("source-lat", 0, "source latitude")
	ridesPostCmd.Flags().Float64("source-lng", 0, "source longitude")
	ridesPostCmd.Flags().Float64("dest-lat", 0, "destination latitude")
	ridesPostCmd.Flags().Float64("dest-lng", 0, "destination longitude")

	bookCmd.Flags().Int64("ride", 0, "ride id to book")
	bookCmd.Flags().Int("seats", 1, "seats to book")

	ridesCmd.AddCommand(ridesListCmd, ridesSearchCmd, ridesPostCmd)
	rootCmd.AddCommand(ridesCmd, bookCmd)
}

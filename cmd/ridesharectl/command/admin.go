package command

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spec-kit/rideshare-client/internal/admin"
	"github.com/spec-kit/rideshare-client/internal/domain"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Moderate users, rides, bookings and payments",
}

func newConsole(cmd *cobra.Command) (*admin.Console, error) {
	console, err := admin.NewConsole(cmd.Context(), client.gateway, client.store, client.nav,
		client.dispatcher, client.cfg.UI.BannerTTL(), client.logger)
	if err != nil {
		return nil, redirectError(err)
	}
	return console, nil
}

var adminUsersCmd = &cobra.Command{
	Use:   "users [tab]",
	Short: "List accounts, optionally filtered by tab (team, drivers, users, requests)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		console, err := newConsole(cmd)
		if err != nil {
			return err
		}
		if console.Error() != "" {
			return fmt.Errorf("%s", console.Error())
		}

		users := console.Users()
		if len(args) == 1 {
			console.SetTab(admin.Tab(args[0]))
			users = console.DisplayUsers()
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tBLOCKED\tVERIFIED\tVEHICLE")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%t\t%s\n",
				u.ID, u.Name, u.Email, u.Role.Short(), u.Blocked, u.DriverVerified, u.VehicleModel)
		}
		_ = w.Flush()

		fmt.Printf("team=%d drivers=%d users=%d rides=%d requests=%d\n",
			console.CountTeam(), console.CountDrivers(), console.CountUsers(),
			console.CountRides(), console.CountRequests())
		return nil
	},
}

var adminRidesCmd = &cobra.Command{
	Use:   "rides",
	Short: "List all rides",
	RunE: func(cmd *cobra.Command, _ []string) error {
		console, err := newConsole(cmd)
		if err != nil {
			return err
		}
		printRides(console.Rides())
		return nil
	},
}

var adminBookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List all bookings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		console, err := newConsole(cmd)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPASSENGER\tRIDE\tSEATS\tSTATUS")
		for _, b := range console.Bookings() {
			fmt.Fprintf(w, "%d\t%s\t%s -> %s\t%d\t%s\n",
				b.ID, b.Passenger.Email, b.Ride.Source, b.Ride.Destination, b.SeatsBooked, b.Status)
		}
		return w.Flush()
	},
}

var adminPaymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "List all payments",
	RunE: func(cmd *cobra.Command, _ []string) error {
		console, err := newConsole(cmd)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tAMOUNT\tSTATUS\tCREATED\tBOOKING")
		for _, p := range console.Payments() {
			fmt.Fprintf(w, "%d\t%.2f\t%s\t%s\t%d\n", p.ID, p.Amount, p.Status, p.CreatedAt, p.Booking.ID)
		}
		return w.Flush()
	},
}

var adminBlockCmd = &cobra.Command{
	Use:   "block",
	Short: "Block or unblock a user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		console, err := newConsole(cmd)
		if err != nil {
			return err
		}
		id, _ := cmd.Flags().GetInt64("id")
		blocked, _ := cmd.Flags().GetBool("blocked")
		if err := console.SetBlocked(cmd.Context(), id, blocked); err != nil {
			return fmt.Errorf("%s", console.Error())
		}
		fmt.Printf("User %d blocked=%t\n", id, blocked)
		return nil
	},
}

var adminVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Mark a driver as verified",
	RunE: func(cmd *cobra.Command, _ []string) error {
		console, err := newConsole(cmd)
		if err != nil {
			return err
		}
		id, _ := cmd.Flags().GetInt64("id")
		if err := console.VerifyDriver(cmd.Context(), id); err != nil {
			return fmt.Errorf("%s", console.Error())
		}
		fmt.Printf("Driver %d verified\n", id)
		return nil
	},
}

var adminUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Edit a user in place",
	RunE: func(cmd *cobra.Command, _ []string) error {
		console, err := newConsole(cmd)
		if err != nil {
			return err
		}

		id, _ := cmd.Flags().GetInt64("id")
		console.Select(id)
		console.StartEditFromToolbar()
		if console.EditingUser() == nil {
			return fmt.Errorf("user %d not found", id)
		}

		edit := console.EditModel()
		if cmd.Flags().Changed("name") {
			edit.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("phone") {
			edit.Phone, _ = cmd.Flags().GetString("phone")
		}
		if cmd.Flags().Changed("role") {
			roleStr, _ := cmd.Flags().GetString("role")
			role, err := domain.ParseRole(roleStr)
			if err != nil {
				return err
			}
			edit.Role = role
		}
		if cmd.Flags().Changed("blocked") {
			edit.Blocked, _ = cmd.Flags().GetBool("blocked")
		}
		if cmd.Flags().Changed("verified") {
			edit.DriverVerified, _ = cmd.Flags().GetBool("verified")
		}
		if cmd.Flags().Changed("vehicle-model") {
			edit.VehicleModel, _ = cmd.Flags().GetString("vehicle-model")
		}
		if cmd.Flags().Changed("license-plate") {
			edit.LicensePlate, _ = cmd.Flags().GetString("license-plate")
		}
		if cmd.Flags().Changed("capacity") {
			edit.Capacity, _ = cmd.Flags().GetInt("capacity")
		}

		if err := console.SaveEdit(cmd.Context()); err != nil {
			return fmt.Errorf("%s", console.Error())
		}
		fmt.Printf("User %d updated\n", id)
		return nil
	},
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a user (requires --yes to confirm)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		console, err := newConsole(cmd)
		if err != nil {
			return err
		}

		id, _ := cmd.Flags().GetInt64("id")
		console.Select(id)
		console.DeleteFromToolbar(cmd.Context())
		if console.PendingDelete() == 0 {
			return fmt.Errorf("no user selected for deletion")
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			console.CancelDelete()
			return fmt.Errorf("refusing to delete user %d without --yes", id)
		}

		if err := console.ConfirmDelete(cmd.Context()); err != nil {
			return fmt.Errorf("%s", console.Error())
		}
		fmt.Println(console.Banner())
		return nil
	},
}

func init() {
	adminBlockCmd.Flags().Int64("id", 0, "user id")
	adminBlockCmd.Flags().Bool("blocked", true, "blocked state to set")

	adminVerifyCmd.Flags().Int64("id", 0, "user id")

	adminUpdateCmd.Flags().Int64("id", 0, "user id")
	adminUpdateCmd.Flags().String("name", "", "full name")
	adminUpdateCmd.Flags().String("phone", "", "phone number")
	adminUpdateCmd.Flags().String("role", "", "account role")
	adminUpdateCmd.Flags().Bool("blocked", false, "blocked state")
	adminUpdateCmd.Flags().Bool("verified", false, "driver verified state")
	adminUpdateCmd.Flags().String("vehicle-model", "", "vehicle model")
	adminUpdateCmd.Flags().String("license-plate", "", "license plate")
	adminUpdateCmd.Flags().Int("capacity", 0, "vehicle capacity")

	adminDeleteCmd.Flags().Int64("id", 0, "user id")
	adminDeleteCmd.Flags().Bool("yes", false, "confirm the deletion")

	adminCmd.AddCommand(adminUsersCmd, adminRidesCmd, adminBookingsCmd, adminPaymentsCmd,
		adminBlockCmd, adminVerifyCmd, adminUpdateCmd, adminDeleteCmd)
	rootCmd.AddCommand(adminCmd)
}

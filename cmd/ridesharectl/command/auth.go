package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/rideshare-client/internal/auth"
	"github.com/spec-kit/rideshare-client/internal/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and persist the session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		page := auth.NewLoginPage(client.store, client.nav, client.logger)
		if err := page.Submit(cmd.Context(), email, password); err != nil {
			return fmt.Errorf("%s", page.Error())
		}

		identity := client.store.Current()
		fmt.Printf("Logged in as %s (%s)\n", identity.Name, identity.Role.Short())
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and start a session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		roleStr, _ := cmd.Flags().GetString("role")
		role, err := domain.ParseRole(roleStr)
		if err != nil {
			return err
		}

		form := auth.RegisterForm{Role: role}
		form.Name, _ = cmd.Flags().GetString("name")
		form.Email, _ = cmd.Flags().GetString("email")
		form.Phone, _ = cmd.Flags().GetString("phone")
		form.Password, _ = cmd.Flags().GetString("password")
		form.ConfirmPassword = form.Password
		form.VehicleModel, _ = cmd.Flags().GetString("vehicle-model")
		form.LicensePlate, _ = cmd.Flags().GetString("license-plate")
		form.Capacity, _ = cmd.Flags().GetInt("capacity")

		page := auth.NewRegisterPage(client.store, client.nav, client.logger)
		if err := page.Submit(cmd.Context(), form); err != nil {
			return fmt.Errorf("%s", page.Error())
		}

		fmt.Printf("Account created for %s\n", form.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := client.store.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(_ *cobra.Command, _ []string) error {
		identity := client.store.Current()
		if identity == nil {
			fmt.Println("Not logged in")
			return nil
		}
		fmt.Printf("%s <%s> role=%s id=%d\n", identity.Name, identity.Email, identity.Role.Short(), identity.ID)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")

	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("phone", "", "phone number")
	registerCmd.Flags().String("password", "", "account password")
	registerCmd.Flags().String("role", "PASSENGER", "account role: DRIVER or PASSENGER")
	registerCmd.Flags().String("vehicle-model", "", "vehicle model (drivers)")
	registerCmd.Flags().String("license-plate", "", "license plate (drivers)")
	registerCmd.Flags().Int("capacity", 0, "vehicle capacity (drivers)")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

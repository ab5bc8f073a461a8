package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrJinPro/SVOD/internal/output"
	"github.com/MrJinPro/SVOD/internal/pages"
	"github.com/MrJinPro/SVOD/pkg/models"
)

// Variables to hold flag values
var (
	userName     string
	userPassword string
	userEmail    string
	userRole     string
	userInactive bool
	userActive   string
)

// Parent Command
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage operator accounts",
	Long:  `List, create and update accounts. Requires an administrator token.`,
}

// loadUsers fetches the account list and exits on failure.
func loadUsers(cmd *cobra.Command) *pages.UsersPage {
	p := pages.NewUsersPage(cmd.Context(), getClient())
	p.Wait()
	if err := p.State().Err; err != nil {
		fail("Error fetching users", err)
	}
	return p
}

// findUser resolves an id or username against the fetched list.
func findUser(p *pages.UsersPage, key string) models.User {
	u, ok := p.Find(key)
	if !ok {
		fmt.Printf("Error: user '%s' not found.\n", key)
		os.Exit(1)
	}
	return u
}

// List Command
var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Run: func(cmd *cobra.Command, args []string) {
		p := loadUsers(cmd)
		defer p.Close()
		users := p.State().Data

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(users)
			return
		}

		if len(users) == 0 {
			fmt.Println("No users found.")
			return
		}
		output.Table(output.UserHeaders, output.UserRows(users))
	},
}

// Create Command
var usersCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create an account",
	Example: `  svod-cli users create --username op3 --password secret --role analyst`,
	Run: func(cmd *cobra.Command, args []string) {
		p := pages.NewUsersPage(cmd.Context(), getClient())
		defer p.Close()

		fmt.Printf("Creating user '%s' ...\n", userName)

		u, err := p.Create(cmd.Context(), models.CreateUserRequest{
			Username: userName,
			Password: userPassword,
			Email:    userEmail,
			Role:     models.UserRole(userRole),
			IsActive: !userInactive,
		})
		if err != nil {
			fail("Error creating user", err)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(u)
			return
		}
		output.Success("User %s created with id %s.", u.Username, u.ID)
	},
}

// Update Command
var usersUpdateCmd = &cobra.Command{
	Use:     "update <id|username>",
	Short:   "Change username, email, role or active flag",
	Args:    cobra.ExactArgs(1),
	Example: `  svod-cli users update op1 --role admin --active=false`,
	Run: func(cmd *cobra.Command, args []string) {
		p := loadUsers(cmd)
		defer p.Close()
		target := findUser(p, args[0])

		var req models.UpdateUserRequest
		flags := cmd.Flags()
		if flags.Changed("username") {
			req.Username = &userName
		}
		if flags.Changed("email") {
			req.Email = &userEmail
		}
		if flags.Changed("role") {
			role := models.UserRole(userRole)
			req.Role = &role
		}
		if flags.Changed("active") {
			active := strings.EqualFold(userActive, "true") || userActive == "1"
			req.IsActive = &active
		}
		if req.Empty() {
			fmt.Println("Nothing to update.")
			return
		}

		u, err := p.Update(cmd.Context(), target.ID, req)
		if err != nil {
			fail("Error updating user", err)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			printJSON(u)
			return
		}
		output.Success("User %s updated.", u.Username)
	},
}

// Password Command
var usersPasswordCmd = &cobra.Command{
	Use:   "password <id|username>",
	Short: "Set a new password",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := loadUsers(cmd)
		defer p.Close()
		target := findUser(p, args[0])

		if err := p.SetPassword(cmd.Context(), target.ID, userPassword); err != nil {
			fail("Error setting password", err)
		}
		output.Success("Password of %s changed.", target.Username)
	},
}

// Toggle Command
var usersToggleCmd = &cobra.Command{
	Use:   "toggle <id|username>",
	Short: "Activate a deactivated account or deactivate an active one",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := loadUsers(cmd)
		defer p.Close()
		target := findUser(p, args[0])

		u, err := p.ToggleActive(cmd.Context(), target)
		if err != nil {
			fail("Error updating user", err)
		}
		state := "activated"
		if !u.IsActive {
			state = "deactivated"
		}
		output.Success("User %s %s.", u.Username, state)
	},
}

func init() {
	// Register parent
	rootCmd.AddCommand(usersCmd)

	// Register List
	usersCmd.AddCommand(usersListCmd)

	// Register Create
	usersCmd.AddCommand(usersCreateCmd)
	usersCreateCmd.Flags().StringVar(&userName, "username", "", "Username")
	usersCreateCmd.Flags().StringVar(&userPassword, "password", "", "Initial password")
	usersCreateCmd.Flags().StringVar(&userEmail, "email", "", "Email")
	usersCreateCmd.Flags().StringVar(&userRole, "role", string(models.RoleOperator), "Role (operator, admin, analyst)")
	usersCreateCmd.Flags().BoolVar(&userInactive, "inactive", false, "Create the account deactivated")
	_ = usersCreateCmd.MarkFlagRequired("username")
	_ = usersCreateCmd.MarkFlagRequired("password")

	// Register Update
	usersCmd.AddCommand(usersUpdateCmd)
	usersUpdateCmd.Flags().StringVar(&userName, "username", "", "New username")
	usersUpdateCmd.Flags().StringVar(&userEmail, "email", "", "New email")
	usersUpdateCmd.Flags().StringVar(&userRole, "role", "", "New role (operator, admin, analyst)")
	usersUpdateCmd.Flags().StringVar(&userActive, "active", "", "true or false")

	// Register Password
	usersCmd.AddCommand(usersPasswordCmd)
	usersPasswordCmd.Flags().StringVar(&userPassword, "password", "", "New password")
	_ = usersPasswordCmd.MarkFlagRequired("password")

	// Register Toggle
	usersCmd.AddCommand(usersToggleCmd)
}

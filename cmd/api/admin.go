package main

import (
	"fmt"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/Biriato/ProyectoWeb/internal/repository"
	"github.com/Biriato/ProyectoWeb/internal/service"
	"github.com/Biriato/ProyectoWeb/internal/validation"
	"github.com/gin-gonic/gin/binding"
	"github.com/sethvargo/go-password/password"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Long: `Create an administrator account together with its list.

When --password is omitted a random password is generated and printed once.`,
	RunE: runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "Admin", "Display name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Login email (required)")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password (generated when empty)")
	_ = createAdminCmd.MarkFlagRequired("email")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	generated := adminPassword == ""
	secret := adminPassword
	if generated {
		var err error
		if secret, err = generatePassword(); err != nil {
			return err
		}
	}

	req := service.CreateUserRequest{
		Name:     adminName,
		Email:    adminEmail,
		Password: secret,
		Role:     models.RoleAdmin,
	}
	validation.RegisterWithGin()
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return validation.FromBindError(err)
	}

	a, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	users := service.NewUserService(repository.NewStore(a.db), service.NewScoreRecomputer(nil))
	user, err := users.Create(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	a.logger.Info("admin created", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	if generated {
		fmt.Fprintf(cmd.OutOrStdout(), "Generated password for %s: %s\n", user.Email, secret)
	}
	return nil
}

// generatePassword returns a random password that satisfies the password rule.
func generatePassword() (string, error) {
	for range 10 {
		candidate, err := password.Generate(16, 3, 3, false, false)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		if validation.PasswordProblem(candidate) == "" {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("failed to generate a compliant password")
}

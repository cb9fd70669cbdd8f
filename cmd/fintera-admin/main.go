package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/sjperalta/fintera-homes/internal/config"
	"github.com/sjperalta/fintera-homes/internal/database"
	"github.com/sjperalta/fintera-homes/internal/models"
	"github.com/sjperalta/fintera-homes/internal/repository"
	"github.com/sjperalta/fintera-homes/internal/services"
	"github.com/sjperalta/fintera-homes/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fintera-admin",
		Short: "Fintera Homes administration tool",
	}

	rootCmd.AddCommand(
		migrateCmd(),
		createUserCmd(),
		markOverdueCmd(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect loads configuration and opens the database
func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Setup(cfg.Environment)

	db, err := database.Connect(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			fmt.Println("Database migrated.")
			return nil
		},
	}
}

func createUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")
			role, _ := cmd.Flags().GetString("role")

			cfg, db, err := connect()
			if err != nil {
				return err
			}

			repos := repository.NewRepositories(db)
			auth := services.NewAuthService(repos.User, repos.RefreshToken, cfg)

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			user, err := auth.CreateUser(ctx, email, password, name, role)
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			fmt.Printf("Created %s user %s (id %d)\n", user.Role, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().String("email", "", "login email")
	cmd.Flags().String("password", "", "initial password (8 characters or more)")
	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("role", models.RoleAgent, "admin or agent")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func markOverdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-overdue",
		Short: "Flag pending installments past their due date once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}

			svcs := services.NewServices(repository.NewRepositories(db), nil, cfg, db)
			marked, err := svcs.Contract.MarkOverdueInstallments(cmd.Context(), time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Printf("Marked %d installments overdue.\n", marked)
			return nil
		},
	}
}

package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/logistics-backoffice/internal/admin"
	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/fixtures"
	"github.com/logistics-backoffice/internal/repository"
	"github.com/logistics-backoffice/internal/service"
	"github.com/logistics-backoffice/internal/session"
	"github.com/logistics-backoffice/internal/validation"
)

var newUser struct {
	username    string
	password    string
	email       string
	firstName   string
	lastName    string
	staff       bool
	superuser   bool
	permissions []string
}

var createUserCmd = &cobra.Command{
	Use:   "createuser",
	Short: "Create an active user account",
	Long: `Creates an active account with a bcrypt-hashed password.

Example:
  api createuser --username dispatcher --password secret \
    --permission dictionary.view_employees_list`,
	Args: cobra.NoArgs,
	RunE: runCreateUser,
}

var loadDataCmd = &cobra.Command{
	Use:   "loaddata <file.yaml>...",
	Short: "Load fixtures from YAML files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLoadData,
}

var clearSessionsCmd = &cobra.Command{
	Use:   "clearsessions",
	Short: "Delete expired sessions from the database store",
	Args:  cobra.NoArgs,
	RunE:  runClearSessions,
}

func init() {
	f := createUserCmd.Flags()
	f.StringVar(&newUser.username, "username", "", "login name")
	f.StringVar(&newUser.password, "password", "", "raw password")
	f.StringVar(&newUser.email, "email", "", "email address")
	f.StringVar(&newUser.firstName, "first-name", "", "first name")
	f.StringVar(&newUser.lastName, "last-name", "", "last name")
	f.BoolVar(&newUser.staff, "staff", false, "allow access to the admin")
	f.BoolVar(&newUser.superuser, "superuser", false, "grant every permission, implies --staff")
	f.StringSliceVar(&newUser.permissions, "permission", nil, "permission codename, repeatable")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	db, closeDB, err := openDB()
	if err != nil {
		logger.Error("failed to prepare database", slog.Any("error", err))
		return err
	}
	defer closeDB()

	user := &domain.User{
		Username:    newUser.username,
		Email:       newUser.email,
		FirstName:   newUser.firstName,
		LastName:    newUser.lastName,
		IsActive:    true,
		IsStaff:     newUser.staff || newUser.superuser,
		IsSuperuser: newUser.superuser,
	}
	if err := validation.New().Struct(user); err != nil {
		return err
	}

	authService := service.NewAuthService(repository.NewUserRepository(db), logger)
	if err := authService.CreateUser(cmd.Context(), user, newUser.password, newUser.permissions); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			logger.Error("username is already taken", slog.String("username", user.Username))
		}
		return err
	}

	logger.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.Bool("staff", user.IsStaff),
		slog.Bool("superuser", user.IsSuperuser),
	)
	return nil
}

func runLoadData(cmd *cobra.Command, args []string) error {
	db, closeDB, err := openDB()
	if err != nil {
		logger.Error("failed to prepare database", slog.Any("error", err))
		return err
	}
	defer closeDB()

	registry := admin.Default()
	if err := syncPermissions(cmd.Context(), db, registry); err != nil {
		return err
	}

	loader := fixtures.NewLoader(db, registry, logger)
	for _, path := range args {
		n, err := loader.LoadFile(cmd.Context(), path)
		if err != nil {
			logger.Error("failed to load fixtures", slog.String("file", path), slog.Any("error", err))
			return err
		}
		cmd.Printf("Installed %d object(s) from %s\n", n, path)
	}
	return nil
}

func runClearSessions(cmd *cobra.Command, args []string) error {
	if cfg.Session.Backend == "redis" {
		logger.Info("redis sessions expire by TTL, nothing to clear")
		return nil
	}

	db, closeDB, err := openDB()
	if err != nil {
		logger.Error("failed to prepare database", slog.Any("error", err))
		return err
	}
	defer closeDB()

	removed, err := session.NewGormStore(db).DeleteExpired(cmd.Context())
	if err != nil {
		logger.Error("failed to clear sessions", slog.Any("error", err))
		return err
	}
	logger.Info("expired sessions removed", slog.Int64("count", removed))
	return nil
}

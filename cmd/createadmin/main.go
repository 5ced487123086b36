package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"restaurante-be/internal/config"
	"restaurante-be/internal/db"
	"restaurante-be/internal/logger"
	"restaurante-be/internal/mailer"
	"restaurante-be/internal/user"

	"go.uber.org/zap"
)

const defaultCPF = "000.000.000-00"

// adminCreator is the slice of user.Service this command needs.
type adminCreator interface {
	CreateOrPromoteAdmin(ctx context.Context, req user.AdminRequest) (*user.User, bool, error)
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("database init failed", zap.Error(err))
	}
	defer database.Close()

	svc := user.NewService(user.NewRepository(database), nil, mailer.NewSMTPSender(cfg), cfg.PublicBaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, svc, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "createadmin:", err)
		os.Exit(1)
	}
}

// run creates the admin account, or promotes an existing user of the same
// name and resets its password.
func run(ctx context.Context, svc adminCreator, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	fs.SetOutput(out)

	username := fs.String("username", "admin", "admin username")
	email := fs.String("email", "admin@restaurant.com", "admin email")
	password := fs.String("password", "", "admin password (required)")
	cpf := fs.String("cpf", defaultCPF, "admin CPF")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		return fmt.Errorf("-password is required")
	}

	u, created, err := svc.CreateOrPromoteAdmin(ctx, user.AdminRequest{
		Username: *username,
		Email:    *email,
		CPF:      *cpf,
		Password: *password,
	})
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(out, "Admin %q created (id %d)\n", u.Username, u.ID)
	} else {
		fmt.Fprintf(out, "User %q promoted to admin (id %d)\n", u.Username, u.ID)
	}
	return nil
}

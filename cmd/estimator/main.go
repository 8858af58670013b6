package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/Temutjin2k/fare-estimator/config"
	"github.com/Temutjin2k/fare-estimator/internal/app"
	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/internal/service/auth"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
)

func main() {
	flag.Parse()
	if *config.HelpFlag {
		config.PrintHelp(os.Stdout)
		return
	}

	if *config.IssueTokenFlag != "" {
		if err := issueToken(*config.IssueTokenFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	ctx := context.Background()
	log := logger.InitLogger("fare-estimator", logger.LevelDebug)

	cfg, err := config.NewConfig()
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp(os.Stderr)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error(ctx, "invalid configuration", err)
		config.PrintHelp(os.Stderr)
		os.Exit(1)
	}

	// Printing configuration
	config.PrintConfig(os.Stdout, *cfg)

	level := cfg.LogLevel
	if !logger.ValidateLogLevel(level) {
		level = logger.LevelInfo
	}
	log = logger.InitLogger(string(cfg.Mode), level)

	// Creating application
	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	// Running the application
	if err = application.Run(ctx); err != nil {
		log.Error(ctx, "failed to run application", err)
		os.Exit(1)
	}
}

// issueToken prints an access token signed with the configured secret.
func issueToken(role string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	r := types.UserRole(strings.ToUpper(role))
	if r != types.RolePassenger && r != types.RoleAdmin {
		return fmt.Errorf("role must be %s or %s", types.RolePassenger, types.RoleAdmin)
	}

	token, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL).
		Issue(&models.User{ID: uuid.NewString(), Role: r})
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

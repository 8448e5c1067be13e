// issue-token выпускает bearer-токен для пользователя справочника.
// Секрет, издатель и срок жизни берутся из той же конфигурации, что и сервер.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/municipal_incidents/internal/auth"
	"github.com/shenikar/municipal_incidents/internal/config"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		userID string
		ttl    time.Duration
	)
	flagSet := pflag.NewFlagSet("issue-token", pflag.ContinueOnError)
	flagSet.StringVarP(&userID, "user", "u", "", "user ID (UUID) to issue the token for")
	flagSet.DurationVar(&ttl, "ttl", 0, "token lifetime (default: JWT_TTL)")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("--user must be a valid UUID: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = cfg.JWTTTL
	}

	token, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, ttl).Issue(id)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

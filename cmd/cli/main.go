package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Dan9191/finance-service/cmd/cli/commands"
	"github.com/Dan9191/finance-service/internal/app"
	"github.com/Dan9191/finance-service/internal/config"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	var a *app.App
	provide := func() (commands.Backend, error) {
		if a != nil {
			return a.Service, nil
		}
		cfg, err := config.NewConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		a, err = app.New(cfg, logger)
		if err != nil {
			return nil, err
		}
		return a.Service, nil
	}

	err := commands.NewRoot(provide).ExecuteContext(context.Background())
	if a != nil {
		a.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

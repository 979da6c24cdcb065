package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/myume/agora/internal/config"
	"github.com/myume/agora/internal/logging"
	"github.com/myume/agora/internal/server"
	"github.com/spf13/cobra"
)

var (
	port       uint16
	configPath string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reverse proxy",
	RunE:  runStart,
}

func init() {
	startCmd.Flags().Uint16VarP(&port, "port", "p", 8080, "port to listen on")
	startCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to route config JSON file")
}

func runStart(cmd *cobra.Command, args []string) error {
	logger := logging.New(verbose)

	var cfg *config.ServerConfig
	if configPath == "" {
		logger.Info("no config supplied, starting with an empty route table")
		cfg = &config.ServerConfig{}
	} else {
		f, err := os.Open(configPath)
		if err != nil {
			return err
		}
		defer f.Close()

		cfg, err = config.Load(f)
		if err != nil {
			return err
		}
		logger.WithField("routes", len(cfg.Routes)).Info("config loaded")
	}

	srv, err := server.Listen(int(port), cfg, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	return nil
}

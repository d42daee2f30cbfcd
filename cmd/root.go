// Package cmd holds the contactus command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/contactus/internal/app"
	"github.com/zjrosen/contactus/internal/config"
	"github.com/zjrosen/contactus/internal/contact"
	"github.com/zjrosen/contactus/internal/log"
	"github.com/zjrosen/contactus/internal/mode"
	"github.com/zjrosen/contactus/internal/telemetry"
	"github.com/zjrosen/contactus/internal/ui/styles"
)

// version is set at build time via SetVersion.
var version = "dev"

var (
	cfgFile string
	v       = config.NewViper()
)

var rootCmd = &cobra.Command{
	Use:   "contactus",
	Short: "Send us a message from your terminal",
	Long: `contactus opens a contact form in your terminal and submits it to a
GraphQL backend.

Leaving the form with unsaved edits asks for confirmation first.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.RunE = runApp

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is "+config.DefaultPath()+")")
	flags.BoolP("debug", "d", false, "write a debug log")
	flags.String("endpoint", "", "GraphQL endpoint that receives submissions")

	bindFlags(v)
}

func bindFlags(v *viper.Viper) {
	flags := rootCmd.PersistentFlags()
	_ = v.BindPFlag("log.debug", flags.Lookup("debug"))
	_ = v.BindPFlag("api.endpoint", flags.Lookup("endpoint"))
}

// SetVersion records the build version.
func SetVersion(ver string) {
	version = ver
	rootCmd.Version = ver
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(v *viper.Viper) (config.Config, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// initLogging always keeps the in-memory buffer for the log overlay and adds
// the file only in debug mode.
func initLogging(cfg config.LogConfig) (func(), error) {
	level, ok := log.ParseLevel(cfg.Level)
	if cfg.Debug {
		cleanup, err := log.InitWithTeaLog(cfg.Path, "contactus", cfg.BufferSize)
		if err != nil {
			return nil, fmt.Errorf("opening debug log: %w", err)
		}
		log.SetMinLevel(level)
		if !ok {
			log.Warn(log.CatConfig, "unknown log level, using debug", "level", cfg.Level)
		}
		return cleanup, nil
	}
	log.InitBufferOnly(cfg.BufferSize, level)
	return func() {}, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	cleanup, err := initLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer cleanup()
	log.Info(log.CatConfig, "starting", "version", version, "endpoint", cfg.API.Endpoint)

	if err := styles.ApplyTheme(cfg.UI.Theme); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	shutdown, err := telemetry.Setup(ctx, cfg.Tracing, version)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdown(flushCtx); err != nil {
			log.ErrorErr(log.CatConfig, "tracer shutdown failed", err)
		}
	}()

	client, err := contact.NewClient(contact.ClientConfig{
		Endpoint: cfg.API.Endpoint,
		Timeout:  cfg.API.Timeout,
		Headers:  cfg.API.Headers,
	})
	if err != nil {
		return err
	}

	zone.NewGlobal()
	defer zone.Close()

	model := app.New(mode.Services{
		Ctx:       ctx,
		Config:    &cfg,
		Submitter: client,
		Clock:     mode.RealClock{},
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	if path := v.ConfigFileUsed(); path != "" {
		if err := config.Watch(ctx, path, func() { reloadConfig(p, path) }); err != nil {
			log.ErrorErr(log.CatConfig, "config hot reload disabled", err)
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running contactus: %w", err)
	}
	return nil
}

// reloadConfig re-reads path with the command line flags still applied and
// hands the result to the running program. Invalid files are logged and
// ignored so a half-saved edit never takes the app down.
func reloadConfig(p *tea.Program, path string) {
	rv := config.NewViper()
	bindFlags(rv)
	cfg, err := config.Load(rv, path)
	if err != nil {
		log.ErrorErr(log.CatConfig, "config reload failed", err)
		return
	}
	p.Send(app.ConfigReloadedMsg{Config: cfg})
}

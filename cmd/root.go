package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/pmxbuilder/internal/config"
	"github.com/zjrosen/pmxbuilder/internal/flags"
	"github.com/zjrosen/pmxbuilder/internal/log"
	"github.com/zjrosen/pmxbuilder/internal/tracing"
)

const tracingShutdownTimeout = 5 * time.Second

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
	v       = config.NewViper()
)

var rootCmd = &cobra.Command{
	Use:   "pmx-builder",
	Short: "Provision and wire a pmx mixing topology",
	Long: `pmx-builder reads the configured inputs and outputs from the pmx registry,
provisions channel strips, loopers, group buses and an output stage through the
pmx factory, and links everything together in the PipeWire graph.

Each run creates a complete new topology. The summary is printed as JSON.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runBuild,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .pmx/config.yaml, then ~/.config/pmx-builder/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "log at DEBUG level")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")

	rootCmd.Flags().String("registry-url", "", "pmx registry service URL")
	rootCmd.Flags().String("factory-url", "", "pmx factory service URL")
	rootCmd.Flags().String("pipewire-url", "", "pipewire graph service URL")
	rootCmd.Flags().Duration("timeout", 0, "per-call timeout for service requests")
	rootCmd.Flags().Bool("strict", false, "fail the run when any link could not be created")
	rootCmd.Flags().Bool("progress", false, "stream stage and link events to stderr as JSON lines")

	// Bind flags to viper
	_ = v.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = v.BindPFlag("services.registry_url", rootCmd.Flags().Lookup("registry-url"))
	_ = v.BindPFlag("services.factory_url", rootCmd.Flags().Lookup("factory-url"))
	_ = v.BindPFlag("services.pipewire_url", rootCmd.Flags().Lookup("pipewire-url"))
	_ = v.BindPFlag("services.call_timeout", rootCmd.Flags().Lookup("timeout"))
	_ = v.BindPFlag("build.strict", rootCmd.Flags().Lookup("strict"))
}

func initConfig() {
	config.Locate(v, cfgFile)
	loaded, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		loaded = config.Defaults()
	}
	cfg = loaded
}

// configFilePath is the file config:init and config:set write to.
func configFilePath(vp *viper.Viper) string {
	if used := vp.ConfigFileUsed(); used != "" {
		return used
	}
	if cfgFile != "" {
		return cfgFile
	}
	return config.LocalConfigPath
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanup, err := setupLogging(cfg.Log)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := newTracingProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer shutdownTracing(ctx, provider)

	services, closeServices, err := dialServices(cfg.Services, provider.Tracer())
	if err != nil {
		return err
	}
	defer closeServices()

	env := buildEnv{
		cfg:      cfg,
		flags:    flags.New(cfg.Flags),
		tracer:   provider.Tracer(),
		services: services,
		out:      cmd.OutOrStdout(),
	}
	if progress, _ := cmd.Flags().GetBool("progress"); progress {
		env.progress = cmd.ErrOrStderr()
	}
	_, err = executeBuild(ctx, env)
	return err
}

// shutdownTracing flushes spans even when ctx was canceled by a signal, so
// an interrupted run still exports its partial trace.
func shutdownTracing(ctx context.Context, provider *tracing.Provider) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tracingShutdownTimeout)
	defer cancel()
	if err := provider.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatConfig, "Tracing shutdown failed", err)
	}
}

func setupLogging(lc config.LogConfig) (func(), error) {
	cleanup, err := log.Init(lc.File)
	if err != nil {
		return nil, err
	}
	if lc.Debug {
		log.SetMinLevel(log.LevelDebug)
	}
	return cleanup, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(ver string) {
	version = ver
	rootCmd.Version = ver
}

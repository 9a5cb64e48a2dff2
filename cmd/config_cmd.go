package cmd

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/pmxbuilder/internal/config"
	"github.com/zjrosen/pmxbuilder/internal/flags"
)

var configShowCmd = &cobra.Command{
	Use:   "config:show",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after defaults, the config file, PMX_* environment
variables and flags have been merged.

Examples:
  pmx-builder config:show
  PMX_SERVICES_REGISTRY_URL=http://studio:50001 pmx-builder config:show`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.Render(cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "config:init",
	Short: "Write a commented default config file",
	Long: `Write the default configuration to the config path (default .pmx/config.yaml).
An existing file is left alone unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath(v)
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return err
	},
}

var configSetCmd = &cobra.Command{
	Use:   "config:set",
	Short: "Persist service addresses and feature flags to the config file",
	Long: `Update the services and flags sections of the config file. Other sections,
and comments outside the updated sections, are kept. The file is created when
it does not exist.

Examples:
  pmx-builder config:set --registry-url http://studio:50001 --factory-url http://studio:50002
  pmx-builder config:set --timeout 30s
  pmx-builder config:set --flag concurrent-wiring=true --flag journal-links=false`,
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, _ []string) error {
	services := cfg.Services
	set := cmd.Flags()
	servicesChanged := false
	for name, dst := range map[string]*string{
		"registry-url": &services.RegistryURL,
		"factory-url":  &services.FactoryURL,
		"pipewire-url": &services.PipewireURL,
	} {
		if set.Changed(name) {
			*dst, _ = set.GetString(name)
			servicesChanged = true
		}
	}
	if set.Changed("timeout") {
		services.CallTimeout, _ = set.GetDuration("timeout")
		servicesChanged = true
	}

	raw, _ := set.GetStringToString("flag")
	if !servicesChanged && len(raw) == 0 {
		return fmt.Errorf("nothing to set (see --help)")
	}

	path := configFilePath(v)
	if servicesChanged {
		if err := config.ValidateServices(services); err != nil {
			return fmt.Errorf("invalid services: %w", err)
		}
		if err := config.SaveServices(path, services); err != nil {
			return err
		}
	}
	if len(raw) > 0 {
		merged := maps.Clone(cfg.Flags)
		if merged == nil {
			merged = map[string]bool{}
		}
		for name, value := range raw {
			if !slices.Contains(flags.Known(), name) {
				return fmt.Errorf("unknown flag %q (known: %v)", name, flags.Known())
			}
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("flag %s: %w", name, err)
			}
			merged[name] = enabled
		}
		if err := config.SaveFlags(path, merged); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", path)
	return err
}

func addConfigSetFlags(cmd *cobra.Command) {
	cmd.Flags().String("registry-url", "", "pmx registry service URL")
	cmd.Flags().String("factory-url", "", "pmx factory service URL")
	cmd.Flags().String("pipewire-url", "", "pipewire graph service URL")
	cmd.Flags().Duration("timeout", 0, "per-call timeout for service requests")
	cmd.Flags().StringToString("flag", nil, "feature flag as name=true|false (repeatable)")
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	addConfigSetFlags(configSetCmd)

	rootCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configSetCmd)
}

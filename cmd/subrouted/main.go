package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dmitrymomot/subroute"
	"github.com/dmitrymomot/subroute/internal/config"
	"github.com/dmitrymomot/subroute/internal/daemon"
	"github.com/dmitrymomot/subroute/middlewares"
	"github.com/dmitrymomot/subroute/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error during execution:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "subrouted",
		Short:         "Route HTTP requests to upstreams by subdomain",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to the YAML config file")
	root.PersistentFlags().Bool("strict", false, "Reject unknown subdomains with 404")
	root.PersistentFlags().StringSlice("known-hosts", nil, "Base hosts tried before TLD-based extraction")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the routing server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, v)
		},
	}
	serve.Flags().StringP("address", "a", "", "Listen address")
	serve.Flags().String("log-level", "", "Log level (debug, info, warn, error)")
	serve.Flags().String("log-format", "", "Log format (json, text)")

	resolve := &cobra.Command{
		Use:   "resolve HOST...",
		Short: "Print how each host would be routed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, v, args)
		},
	}

	root.AddCommand(serve, resolve)

	bind(v, root.PersistentFlags().Lookup("strict"), "strict")
	bind(v, root.PersistentFlags().Lookup("known-hosts"), "known_hosts")
	bind(v, serve.Flags().Lookup("address"), "address")
	bind(v, serve.Flags().Lookup("log-level"), config.Key("log", "level"))
	bind(v, serve.Flags().Lookup("log-format"), config.Key("log", "format"))

	return root
}

// bind maps flag onto key in v. It panics when the flag does not exist.
func bind(v *viper.Viper, flag *pflag.Flag, key string) {
	if flag == nil {
		panic(errors.New("can't set up flags: " + key))
	}
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Errorf("can't set up flags: %w", err))
	}
}

func load(cmd *cobra.Command, v *viper.Viper) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(v, path)
}

func runServe(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := load(cmd, v)
	if err != nil {
		return err
	}

	log, err := logger.NewWithSentry(cfg.Log, cfg.Sentry, middlewares.RequestIDExtractor())
	if err != nil {
		return err
	}

	d, err := daemon.New(cfg, log)
	if err != nil {
		return err
	}

	opts := append(d.Options(), subroute.WithContext(cmd.Context()))
	return subroute.Run(opts...)
}

func runResolve(cmd *cobra.Command, v *viper.Viper, hosts []string) error {
	cfg, err := load(cmd, v)
	if err != nil {
		return err
	}

	d, err := daemon.New(cfg, logger.NewNope())
	if err != nil {
		return err
	}
	return daemon.WriteYAML(cmd.OutOrStdout(), d.Resolve(hosts...))
}

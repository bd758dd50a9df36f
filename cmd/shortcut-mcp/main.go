// shortcut-mcp: Shortcut project-management MCP Server
//
// Exposes a Shortcut workspace (stories, epics, milestones, iterations,
// projects, workflows, members, labels, teams) to any MCP-capable AI tool
// as tools and resources.
//
// Usage:
//
//	shortcut-mcp serve      # Start MCP server (stdio transport)
//	shortcut-mcp version    # Print the version
package main

import (
	"fmt"
	"os"

	"github.com/HendryAvila/shortcut-mcp/internal/config"
	"github.com/HendryAvila/shortcut-mcp/internal/logging"
	mcpserver "github.com/HendryAvila/shortcut-mcp/internal/server"
	"github.com/HendryAvila/shortcut-mcp/internal/shortcut"
	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:           "shortcut-mcp",
		Short:         "Shortcut project-management MCP server",
		Long:          usage,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(v), newVersionCmd())
	return root
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(v, cmd); err != nil {
				return err
			}
			return run(v, envFile)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.String("api-url", "", "Shortcut API base URL (env SHORTCUT_API_URL)")
	flags.Duration("timeout", 0, "per-request timeout (env SHORTCUT_TIMEOUT)")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (env SHORTCUT_LOG_LEVEL)")
	flags.String("log-format", "", "log format: text or json (env SHORTCUT_LOG_FORMAT)")

	return cmd
}

// bindFlags registers config defaults on v and lets explicitly set flags
// override the environment.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if err := config.SetDefaults(v, mcpserver.Version); err != nil {
		return err
	}
	for key, flag := range map[string]string{
		config.KeyAPIURL:    "api-url",
		config.KeyTimeout:   "timeout",
		config.KeyLogLevel:  "log-level",
		config.KeyLogFormat: "log-format",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return errors.Wrapf(err, "binding --%s", flag)
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shortcut-mcp v%s\n", mcpserver.Version)
		},
	}
}

// run loads configuration, wires the server and blocks serving stdio.
// A missing API token fails here, before anything talks to Shortcut.
func run(v *viper.Viper, envFile string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}

	client, err := shortcut.New(cfg.Shortcut(), shortcut.WithLogger(log))
	if err != nil {
		return errors.Wrap(err, "creating Shortcut client")
	}

	s := mcpserver.New(client, log)

	log.WithFields(logrus.Fields{
		"version": mcpserver.Version,
		"api_url": cfg.APIURL,
		"timeout": cfg.Timeout,
	}).Info("starting Shortcut MCP server")

	return server.ServeStdio(s, server.WithErrorLogger(logging.StdLogger(log)))
}

const usage = `Shortcut project-management MCP server.

Configuration (environment or .env):
  SHORTCUT_API_TOKEN    API token (required)
  SHORTCUT_API_URL      API base URL (default https://api.app.shortcut.com/api/v3)
  SHORTCUT_USER_AGENT   User-Agent header (default shortcut-mcp/<version>)
  SHORTCUT_TIMEOUT      per-request timeout (default 30s)
  SHORTCUT_LOG_LEVEL    log level (default info)
  SHORTCUT_LOG_FORMAT   text or json (default text)

Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "shortcut": {
        "command": "shortcut-mcp",
        "args": ["serve"],
        "env": { "SHORTCUT_API_TOKEN": "..." }
      }
    }
  }`

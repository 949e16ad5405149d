package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minemarker/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMaxTimeout  time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the minemarker SSH server",
	Long: `Start an SSH server that lets users connect, pick a scenario and watch
its replay.

Each SSH connection gets its own session with a scenario menu.
Results are stored per-server (all users share the same results board).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses ssh.host_key_path from the config, generating it if missing

Examples:
  minemarker serve                           # Listen on :23235
  minemarker serve --ssh :2222               # Listen on port 2222
  minemarker serve --host-key ./my_host_key  # Use specific host key
  minemarker serve --db ./results.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting")
	serveCmd.Flags().DurationVar(&flagMaxTimeout, "max-timeout", 0, "Maximum session length")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := tui.SSHServerConfig{
		SSH:    appConfig.SSH,
		Replay: appConfig.Replay,
	}
	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}
	if flagMaxTimeout > 0 {
		cfg.SSH.MaxTimeout = flagMaxTimeout
	}

	loader, err := scenarioLoader()
	if err != nil {
		return err
	}
	if _, err := loader.LoadAll(); err != nil {
		return err
	}
	warnSkipped(loader)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, loader, store, logger.WithPrefix("minemarker-ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting minemarker SSH server on %s\n", server.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/sitepush/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push a site snapshot to the Engine API",
	Long: `Loads the snapshot, authenticates against the endpoint and runs every
planned writer in order. The first failing writer stops the push.`,
	Example: `  sitepush push --deploy deploy.yml --env staging --snapshot site.yaml --data
  sitepush push --uri https://www.example.com/locomotive/api --email me@example.com --snapshot site.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deploy, _ := cmd.Flags().GetString("deploy")
		env, _ := cmd.Flags().GetString("env")
		snapshotFile, _ := cmd.Flags().GetString("snapshot")
		lockRedis, _ := cmd.Flags().GetString("lock-redis")
		metricsFile, _ := cmd.Flags().GetString("metrics-textfile")
		graphFile, _ := cmd.Flags().GetString("graph")
		logLevel, _ := cmd.Flags().GetString("log-level")

		stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		_, err := cli.RunPush(ctx, cli.PushConfig{
			DeployFile:      deploy,
			Env:             env,
			SnapshotFile:    snapshotFile,
			Params:          collectParams(cmd),
			LockRedis:       lockRedis,
			MetricsTextfile: metricsFile,
			GraphFile:       graphFile,
			LogLevel:        logLevel,
			Styled:          stdoutTTY,
			PromptPassword:  passwordPrompt(),
			Out:             cmd.OutOrStdout(),
		})
		if sig := ctx.Signal(); sig != nil {
			return fmt.Errorf("interrupted by %s: %w", sig, err)
		}
		return err
	},
}

// passwordPrompt reads a password from the terminal without echo, or
// returns nil when stdin is not a terminal.
func passwordPrompt() func() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return func() (string, error) {
		fmt.Fprint(os.Stderr, "Password: ")
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(pw), err
	}
}

func init() {
	rootCmd.AddCommand(pushCmd)

	addOptionFlags(pushCmd)
	pushCmd.Flags().StringP("snapshot", "s", "site.yaml", "Snapshot file to push")
	pushCmd.Flags().String("lock-redis", "", "Redis address used to serialize pushes to the same endpoint")
	pushCmd.Flags().String("metrics-textfile", "", "Write Prometheus metrics of the run to this file")
	pushCmd.Flags().String("graph", "", "Write a Mermaid chart of the run to this file")
	pushCmd.Flags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

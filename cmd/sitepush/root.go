package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/aretw0/sitepush"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sitepush",
	Short: "sitepush pushes a site snapshot to an Engine API",
	Long: `sitepush authenticates against a remote Engine API and pushes a site
(site settings, snippets, content types, content entries, translations,
pages and theme assets) in dependency order.`,
	Version:      strings.TrimSpace(sitepush.Version),
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sitepush version and the Go runtime it was built with",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sitepush version %s (%s %s/%s)\n",
			rootCmd.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("sitepush version {{.Version}}\n")
	rootCmd.PersistentFlags().String("deploy", "", "Deploy file (YAML or JSON) keyed by environment")
	rootCmd.PersistentFlags().StringP("env", "e", "production", "Environment to read from the deploy file")
	rootCmd.AddCommand(versionCmd)
}

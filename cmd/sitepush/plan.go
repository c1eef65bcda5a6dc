package main

import (
	"os"

	"github.com/aretw0/sitepush/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the writers a push would run",
	Long:  `Computes the writer plan from the deploy file and flags. Nothing is contacted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deploy, _ := cmd.Flags().GetString("deploy")
		env, _ := cmd.Flags().GetString("env")
		format, _ := cmd.Flags().GetString("format")

		return cli.RunPlan(cli.PlanConfig{
			DeployFile: deploy,
			Env:        env,
			Params:     collectParams(cmd),
			Format:     format,
			Styled:     term.IsTerminal(int(os.Stdout.Fd())),
			Out:        cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	addOptionFlags(planCmd)
	planCmd.Flags().StringP("format", "f", cli.FormatText, "Output format (text, markdown, mermaid)")
}

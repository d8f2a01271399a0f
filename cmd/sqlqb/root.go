package main

import (
	"io"

	"github.com/spf13/cobra"
)

type options struct {
	configFile string
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:          "sqlqb",
		Short:        "Render and execute SQL statements described in YAML files",
		SilenceUsage: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVarP(
		&opts.configFile, "config", "c", "",
		"configuration file (YAML, JSON or TOML); SQLQB_* environment variables override it",
	)

	cmd.AddCommand(
		newRenderCmd(opts),
		newExecCmd(opts),
	)

	return cmd
}

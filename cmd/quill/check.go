package main

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:          "check ./folder|file.ql",
	Short:        "Type check a quill program without running it",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

func runCheck(cmd *cobra.Command, args []string) error {
	return runPipeline(args[0], true)
}

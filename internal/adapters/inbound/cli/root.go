package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "aquacheck",
		Short: "Verify fixes in the ShellCon aquarium performance lab",
		Long: "aquacheck inspects the lab services' challenge code and benchmarks the running " +
			"environment to decide whether a planted defect has been fixed.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a config file (defaults to <workspace>/.aquacheck.yaml)")
	cmd.PersistentFlags().StringVar(&opts.workspace, "workspace", ".", "Lab workspace root containing the services/ tree")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newVerifyCmd(opts))
	cmd.AddCommand(newChallengesCmd(opts))
	cmd.AddCommand(newLectureCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

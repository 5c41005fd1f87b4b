package credtool

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the credtool command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "credtool",
		Short:        "Password record and API token utility for credvault",
		SilenceUsage: true,
	}

	root.AddCommand(
		suitesCmd(),
		hashCmd(),
		verifyCmd(),
		generateCmd(),
		sealCmd(),
		openCmd(),
		checkCmd(),
	)

	var addr string
	remote := &remoteOptions{addr: &addr}
	root.PersistentFlags().StringVarP(&addr, "addr", "a", "localhost:50051", "credvault server address")
	root.AddCommand(
		signupCmd(remote),
		getKeyCmd(remote),
		newKeyCmd(remote),
		passwdCmd(remote),
		authCmd(remote),
		whoAmICmd(remote),
	)

	return root
}

// Execute runs credtool with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

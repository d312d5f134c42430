package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	tpnode "github.com/TopiaNetwork/tokenmarket/node"
)

const (
	nodeFuncName = "node"
	nodeCmdDes   = "Operate a node: start."
)

var nodeID string

var nodeStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Starts the node.",
	Long:  `Starts a token market node over the local ledger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			return fmt.Errorf("trailing args detected")
		}
		// Parsing of the command line is done so silence cmd usage
		cmd.SilenceUsage = true

		n := tpnode.NewNode(nodeID)
		n.Start()
		return nil
	},
}

func startCmd() *cobra.Command {
	flags := nodeStartCmd.PersistentFlags()
	flags.StringVarP(&nodeID, "nodeid", "", "tokenmarket-node", "the node id")
	return nodeStartCmd
}

var nodeCmd = &cobra.Command{
	Use:   nodeFuncName,
	Short: fmt.Sprint(nodeCmdDes),
	Long:  fmt.Sprint(nodeCmdDes),
}

func NodeCmd() *cobra.Command {
	nodeCmd.AddCommand(startCmd())

	return nodeCmd
}

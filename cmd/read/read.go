// cmd/read/read.go

package read

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/StrataNetworks/fabricsync/pkg/cli"
	"github.com/StrataNetworks/fabricsync/pkg/config"
	"github.com/StrataNetworks/fabricsync/pkg/netdb"
	"github.com/StrataNetworks/fabricsync/pkg/relevance"
)

// ReadCmd represents the base read command.
var ReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read controller-relevant network state",
	Long: `Read the subset of networks, segments, ports, instances and bindings
that the relevance filter would export to the fabric controller.`,
}

// Initialize subcommands for read
func init() {
	ReadCmd.AddCommand(readTenantsCmd)
	ReadCmd.AddCommand(readNetworksCmd)
	ReadCmd.AddCommand(readSegmentsCmd)
	ReadCmd.AddCommand(readInstancesCmd)
	ReadCmd.AddCommand(readPortsCmd)
	ReadCmd.AddCommand(readBindingsCmd)
	ReadCmd.AddCommand(readBindingLevelsCmd)
}

// openRelevance connects to the store and wires the accessor layer with
// the live policy snapshot provider.
func openRelevance(rc *cli.RuntimeContext) (*relevance.DB, error) {
	gdb, err := netdb.Connect(config.StoreDSN())
	if err != nil {
		return nil, err
	}
	return relevance.New(gdb, config.CurrentPolicy, rc.Log), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

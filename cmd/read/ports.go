// cmd/read/ports.go

package read

import (
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/StrataNetworks/fabricsync/pkg/cli"
	"github.com/StrataNetworks/fabricsync/pkg/netdb"
	"github.com/StrataNetworks/fabricsync/pkg/syncerr"
)

var (
	portRole        string
	portID          string
	includeInactive bool
)

var readPortsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List ports the relevance filter would export",
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		db, err := openRelevance(rc)
		if err != nil {
			return err
		}

		var ports []netdb.Port
		switch portRole {
		case "":
			ports, err = db.GetPorts(rc.Ctx, nil, "", portID, !includeInactive)
		case "dhcp":
			ports, err = db.GetDhcpPorts(rc.Ctx, portID)
		case "router":
			ports, err = db.GetRouterPorts(rc.Ctx, portID)
		case "vm":
			ports, err = db.GetVMPorts(rc.Ctx, portID)
		case "baremetal":
			ports, err = db.GetBaremetalPorts(rc.Ctx, portID)
		default:
			return syncerr.Expectedf("unknown role %q (want dhcp, router, vm or baremetal)", portRole)
		}
		if err != nil {
			return err
		}
		otelzap.Ctx(rc.Ctx).Info("Ports resolved",
			zap.String("role", portRole), zap.Int("count", len(ports)))
		return printJSON(ports)
	}),
}

func init() {
	readPortsCmd.Flags().StringVar(&portRole, "role", "", "dhcp, router, vm or baremetal")
	readPortsCmd.Flags().StringVar(&portID, "port-id", "", "narrow to one port id")
	readPortsCmd.Flags().BoolVar(&includeInactive, "include-inactive", false,
		"also list ports that are not ACTIVE (ignored with --role)")
}

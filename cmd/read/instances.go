// cmd/read/instances.go

package read

import (
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/StrataNetworks/fabricsync/pkg/cli"
	"github.com/StrataNetworks/fabricsync/pkg/relevance"
	"github.com/StrataNetworks/fabricsync/pkg/syncerr"
)

var (
	instanceRole string
	instanceID   string
)

var readInstancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "List instances (one row per device) with relevant ports",
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		db, err := openRelevance(rc)
		if err != nil {
			return err
		}

		var instances []relevance.Instance
		switch instanceRole {
		case "":
			instances, err = db.GetInstances(rc.Ctx, nil, "", instanceID)
		case "dhcp":
			instances, err = db.GetDhcpInstances(rc.Ctx, instanceID)
		case "router":
			instances, err = db.GetRouterInstances(rc.Ctx, instanceID)
		case "vm":
			instances, err = db.GetVMInstances(rc.Ctx, instanceID)
		case "baremetal":
			instances, err = db.GetBaremetalInstances(rc.Ctx, instanceID)
		default:
			return syncerr.Expectedf("unknown role %q (want dhcp, router, vm or baremetal)", instanceRole)
		}
		if err != nil {
			return err
		}
		otelzap.Ctx(rc.Ctx).Info("Instances resolved",
			zap.String("role", instanceRole), zap.Int("count", len(instances)))
		return printJSON(instances)
	}),
}

func init() {
	readInstancesCmd.Flags().StringVar(&instanceRole, "role", "", "dhcp, router, vm or baremetal")
	readInstancesCmd.Flags().StringVar(&instanceID, "instance-id", "", "narrow to one device id")
}

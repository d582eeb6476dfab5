// cmd/read/tenants.go

package read

import (
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/StrataNetworks/fabricsync/pkg/cli"
)

var tenantID string

var readTenantsCmd = &cobra.Command{
	Use:   "tenants",
	Short: "List tenants referenced by any network or port",
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		db, err := openRelevance(rc)
		if err != nil {
			return err
		}

		tenants, err := db.GetTenants(rc.Ctx, tenantID)
		if err != nil {
			return err
		}
		otelzap.Ctx(rc.Ctx).Info("Tenants resolved", zap.Int("count", len(tenants)))
		return printJSON(tenants)
	}),
}

func init() {
	readTenantsCmd.Flags().StringVar(&tenantID, "tenant-id", "", "narrow to one tenant id")
}

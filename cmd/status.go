// cmd/status.go

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/StrataNetworks/fabricsync/pkg/cli"
	"github.com/StrataNetworks/fabricsync/pkg/config"
	"github.com/StrataNetworks/fabricsync/pkg/netdb"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity to the network store",
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		log := otelzap.Ctx(rc.Ctx)

		db, err := netdb.Open(rc.Ctx, config.StoreDSN())
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := netdb.Health(db); err != nil {
			return err
		}
		log.Info("Network store reachable", zap.String("store", "postgres"))
		return nil
	}),
}

// cmd/read/networks.go

package read

import (
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/StrataNetworks/fabricsync/pkg/cli"
)

var (
	networkID string
	segmentID string
)

var readNetworksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List networks visible to the fabric controller",
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		db, err := openRelevance(rc)
		if err != nil {
			return err
		}

		networks, err := db.GetNetworks(rc.Ctx, networkID)
		if err != nil {
			return err
		}
		otelzap.Ctx(rc.Ctx).Info("Networks resolved", zap.Int("count", len(networks)))
		return printJSON(networks)
	}),
}

var readSegmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "List segments of supported network types",
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		db, err := openRelevance(rc)
		if err != nil {
			return err
		}

		segments, err := db.GetSegments(rc.Ctx, segmentID)
		if err != nil {
			return err
		}
		otelzap.Ctx(rc.Ctx).Info("Segments resolved", zap.Int("count", len(segments)))
		return printJSON(segments)
	}),
}

func init() {
	readNetworksCmd.Flags().StringVar(&networkID, "network-id", "", "narrow to one network id")
	readSegmentsCmd.Flags().StringVar(&segmentID, "segment-id", "", "narrow to one segment id")
}

// cmd/read/bindings.go

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
	bindingPortID string
	bindingHost   string
	switchID      string
	switchPort    string

	levelPortID string
	levelHost   string
)

var readBindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "List relevant port bindings (regular and distributed)",
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		db, err := openRelevance(rc)
		if err != nil {
			return err
		}

		var key *relevance.BindingKey
		switch {
		case bindingPortID == "" && (bindingHost != "" || switchID != "" || switchPort != ""):
			return syncerr.Expectedf("--port-id is required with --host or --switch-id/--switch-port")
		case bindingPortID != "" && bindingHost == "" && switchID == "" && switchPort == "":
			return syncerr.Expectedf("--host or --switch-id/--switch-port is required with --port-id")
		case bindingPortID != "":
			k := relevance.BindingKey{
				PortID:     bindingPortID,
				Host:       bindingHost,
				SwitchID:   switchID,
				SwitchPort: switchPort,
			}
			key = &k
		}

		bindings, err := db.GetPortBindings(rc.Ctx, key)
		if err != nil {
			return err
		}
		otelzap.Ctx(rc.Ctx).Info("Bindings resolved", zap.Int("count", len(bindings)))
		return printJSON(bindings)
	}),
}

var readBindingLevelsCmd = &cobra.Command{
	Use:   "binding-levels",
	Short: "List binding levels, outermost (level 0) first",
	RunE: cli.Wrap(func(rc *cli.RuntimeContext, cmd *cobra.Command, args []string) error {
		db, err := openRelevance(rc)
		if err != nil {
			return err
		}

		levels, err := db.GetPortBindingLevels(rc.Ctx, relevance.BindingLevelFilter{
			PortID: levelPortID,
			Host:   levelHost,
		})
		if err != nil {
			return err
		}
		otelzap.Ctx(rc.Ctx).Info("Binding levels resolved", zap.Int("count", len(levels)))
		return printJSON(levels)
	}),
}

func init() {
	readBindingsCmd.Flags().StringVar(&bindingPortID, "port-id", "", "narrow to one port id")
	readBindingsCmd.Flags().StringVar(&bindingHost, "host", "", "match bindings by exact host")
	readBindingsCmd.Flags().StringVar(&switchID, "switch-id", "", "match the binding profile by switch id")
	readBindingsCmd.Flags().StringVar(&switchPort, "switch-port", "", "match the binding profile by switch port")

	readBindingLevelsCmd.Flags().StringVar(&levelPortID, "port-id", "", "narrow to one port id")
	readBindingLevelsCmd.Flags().StringVar(&levelHost, "host", "", "narrow to one host")
}

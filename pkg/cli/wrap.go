// pkg/cli/wrap.go

package cli

import (
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/StrataNetworks/fabricsync/pkg/logger"
	"github.com/StrataNetworks/fabricsync/pkg/syncerr"
	"github.com/StrataNetworks/fabricsync/pkg/telemetry"
)

// Wrap adapts a handler to cobra's RunE, injecting the runtime context:
// a per-command logger and span, panic recovery, and outcome logging that
// distinguishes operator errors from system errors.
func Wrap(fn func(rc *RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		start := time.Now()
		ctx, span := telemetry.Start(cmd.Context(), cmd.Name())
		log := logger.L().Named(cmd.Name())

		rc := &RuntimeContext{
			Ctx:       ctx,
			Log:       log,
			Span:      span,
			Command:   cmd.Name(),
			Timestamp: start,
		}

		defer func() {
			if r := recover(); r != nil {
				err = cerr.AssertionFailedf("panic: %v", r)
				log.Error("Panic recovered", zap.Any("panic", r))
			}

			duration := time.Since(start)
			switch {
			case err == nil:
				log.Debug("Command finished", zap.Duration("duration", duration))
			case syncerr.IsExpectedUserError(err):
				log.Warn("Command rejected", zap.Error(err), zap.Duration("duration", duration))
			default:
				log.Error("Command failed", zap.Error(err), zap.Duration("duration", duration))
			}

			span.End()
			logger.Sync()
		}()

		err = fn(rc, cmd, args)
		return err
	}
}

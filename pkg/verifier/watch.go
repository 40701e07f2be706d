package verifier

import (
	"context"

	"attest-hq/attest/pkg/claim/parser"
)

// Watch verifies once, then re-verifies whenever the watched spec path
// changes, until the context is cancelled. Failures of individual runs are
// logged by the watcher and do not stop watching.
func (v *Verifier) Watch(ctx context.Context, specPath string) error {
	if _, err := v.Run(ctx); err != nil {
		v.logger.Error("initial verification failed", "error", err)
	}

	watcher := parser.NewSpecWatcher(specPath, v.logger)
	return watcher.Watch(ctx, func() error {
		_, err := v.Run(ctx)
		return err
	})
}

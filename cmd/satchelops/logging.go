package main

import (
	"context"
	"time"

	"github.com/satchelworks/satchelops/internal/logging"
)

// withCmdRunLogger emits a start log line and returns a context with the
// namespace attached to the logger, plus a cleanup function that records the
// success or failure line with the elapsed time.
//
// Usage:
//
//	ctx, cleanup := withCmdRunLogger(ctx, "provision", namespace)
//	defer func() { cleanup(err) }()
//
// Log message format:
// - Start:   CMD:<operation>/S
// - Success: CMD:<operation>/EOK
// - Failure: CMD:<operation>/EFAIL
//
// All lines use INFO level; the records are mechanical, not diagnostic.
func withCmdRunLogger(ctx context.Context, operation, namespace string) (context.Context, func(err error)) {
	startAt := time.Now()

	logger := logging.FromContext(ctx)
	if namespace != "" {
		logger = logger.With("namespace", namespace)
	}
	ctx = logging.WithLogger(ctx, logger)

	logger.Info(ctx, "CMD:"+operation+"/S")

	cleanup := func(err error) {
		elapsed := time.Since(startAt).Seconds()
		if err == nil {
			logger.Info(ctx, "CMD:"+operation+"/EOK", "elapsed", elapsed)
			return
		}
		errStr := err.Error()
		if len(errStr) > 32 {
			errStr = errStr[:32] + "..."
		}
		logger.Info(ctx, "CMD:"+operation+"/EFAIL", "err", errStr, "elapsed", elapsed)
	}

	return ctx, cleanup
}

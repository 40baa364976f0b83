package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/dbx"
)

// bound limits a store round trip to timeout.
func bound(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// storeErr marks connectivity and timeout failures as common.ErrStoreUnavailable
// and passes everything else through.
func storeErr(err error) error {
	if dbx.IsUnavailable(err) {
		return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	return err
}

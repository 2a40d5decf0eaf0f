package forms

import (
	"context"
	"time"
)

// Submitter stands in for the network request a form would make. A non-nil
// error is reported to the user as the form's generic failure message.
type Submitter func(ctx context.Context) error

// Delay returns a Submitter that waits d before succeeding.
func Delay(d time.Duration) Submitter {
	return func(ctx context.Context) error {
		if d <= 0 {
			return nil
		}
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Instant succeeds immediately.
func Instant(context.Context) error {
	return nil
}

// Failing returns a Submitter that always fails with err.
func Failing(err error) Submitter {
	return func(context.Context) error {
		return err
	}
}

// run awaits s. The simulated request is never cancelled once started, so the
// caller's cancellation is detached here.
func (s Submitter) run(ctx context.Context) error {
	if s == nil {
		s = Delay(DefaultSubmitDelay)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return s(context.WithoutCancel(ctx))
}

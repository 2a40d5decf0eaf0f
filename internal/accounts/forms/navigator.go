package forms

import (
	"context"
	"sync"
)

// Navigator changes the current route. It is the only side effect a form has.
type Navigator interface {
	Navigate(ctx context.Context, target string)
}

// NavigatorFunc adapts a plain function to the Navigator interface.
type NavigatorFunc func(ctx context.Context, target string)

// Navigate calls f.
func (f NavigatorFunc) Navigate(ctx context.Context, target string) {
	f(ctx, target)
}

// NopNavigator discards navigation requests.
type NopNavigator struct{}

// Navigate does nothing.
func (NopNavigator) Navigate(context.Context, string) {}

// RecordingNavigator keeps every target it was asked to navigate to. The HTTP
// layer turns the last recorded target into a redirect.
type RecordingNavigator struct {
	mu      sync.Mutex
	targets []string
}

// Navigate records target.
func (n *RecordingNavigator) Navigate(_ context.Context, target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, target)
}

// Targets returns a copy of the recorded targets in call order.
func (n *RecordingNavigator) Targets() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.targets...)
}

// Last returns the most recent target, if any.
func (n *RecordingNavigator) Last() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.targets) == 0 {
		return "", false
	}
	return n.targets[len(n.targets)-1], true
}

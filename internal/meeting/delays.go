package meeting

import "time"

// Settle delays and wait budgets for the Meet pre-join surface. Each value
// tolerates asynchronous rendering that no checkable element reflects.
const (
	// permissionSurfaceSettle covers the window after navigation where Meet
	// requests device permissions and builds the pre-join controls.
	permissionSurfaceSettle = 5 * time.Second
	// deviceToggleSettle follows a mute click; the toggle animates and
	// persists its state change, and a second interaction too soon can undo
	// it.
	deviceToggleSettle = 2 * time.Second
	// preJoinClickSettle precedes the join click; the pre-join layout keeps
	// reflowing briefly and the control can move out from under the click.
	preJoinClickSettle = 2 * time.Second
	// postJoinSettle follows the join click; the whole surface is swapped
	// for the in-meeting one before any indicator exists to probe.
	postJoinSettle = 5 * time.Second

	// defaultDeviceTimeout is the per-candidate budget for mute controls.
	defaultDeviceTimeout = 5 * time.Second
	// defaultJoinTimeout is the per-candidate budget for the join control,
	// which can take longer to become clickable while Meet warms up media.
	defaultJoinTimeout = 10 * time.Second
	// defaultIndicatorTimeout is the per-candidate budget for advisory
	// in-meeting indicators.
	defaultIndicatorTimeout = 3 * time.Second
)

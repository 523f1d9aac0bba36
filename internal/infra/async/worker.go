package async

import "context"

// Worker is a long running loop started by the hub process. Run blocks until
// the context is cancelled and calls done on return; Shutdown releases
// whatever Run left behind.
type Worker interface {
	Run(context.Context, func())
	Shutdown()
}

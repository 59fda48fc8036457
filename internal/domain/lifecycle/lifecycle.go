// Package lifecycle holds shared settings for starting and stopping components.
package lifecycle

import "time"

// DefaultTimeout bounds how long a component may take to shut down.
const DefaultTimeout = 10 * time.Second

package platform

import "errors"

// ErrClosed is reported when emitting on a closed channel.
var ErrClosed = errors.New("platform: channel closed")

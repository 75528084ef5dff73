package sim

import (
	"log"
)

// A LogHook is a hook that writes what happens in the host into a logger.
type LogHook interface {
	Hook
}

// LogHookBase provides the logger shared by all LogHooks.
type LogHookBase struct {
	*log.Logger
}

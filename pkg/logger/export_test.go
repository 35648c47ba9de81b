package logger

import (
	"sync"

	"github.com/rs/zerolog"
)

// Reset tears down the singleton so that the next Init call rebuilds it.
func Reset() {
	once = sync.Once{}
	instance = zerolog.Logger{}
	initialized = false
}

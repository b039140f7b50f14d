// Package timeout collects sentinel durations. The supervisor passes
// [Infinity] as its own GenServer start timeout; ShutdownOpt and mailbox
// receives express "wait forever" their own way (Infinity flag, zero
// timeout) rather than through this package.
package timeout

import (
	"time"

	"github.com/fizzAI/fauxtp/chronos"
)

// Infinity represents "wait forever" wherever a time.Duration parameter is
// expected, since Go has no dedicated sentinel for it.
const Infinity time.Duration = 1<<63 - 1

// Default is the fallback timeout for operations that don't specify one.
var Default = chronos.Dur("5s")

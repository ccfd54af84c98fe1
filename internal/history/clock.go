package history

import "github.com/jonboulle/clockwork"

// clock is the package time source, only consulted when the feed declares
// neither a range end nor a generation timestamp. Tests freeze it.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

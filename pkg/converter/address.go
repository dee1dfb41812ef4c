package converter

import "fmt"

// Limits of the user facing address fields
const (
	MaxChannel = 16
	MaxGroup   = 63
	MaxSource  = 5
)

// NewAddress validates user facing values and converts the 1-based MIDI
// channel to its 0-based wire value.
func NewAddress(channel, group, source int) (Address, error) {
	if channel < 1 || channel > MaxChannel {
		return Address{}, fmt.Errorf("channel %d out of range 1-%d", channel, MaxChannel)
	}
	if group < 0 || group > MaxGroup {
		return Address{}, fmt.Errorf("group %d out of range 0-%d", group, MaxGroup)
	}
	if source < 0 || source > MaxSource {
		return Address{}, fmt.Errorf("source %d out of range 0-%d", source, MaxSource)
	}
	return Address{
		Channel: uint8(channel - 1),
		Group:   uint8(group),
		Source:  uint8(source),
	}, nil
}

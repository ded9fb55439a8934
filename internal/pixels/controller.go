// Package pixels implements the Pixel Manager: the single actor with
// exclusive ownership of the hardware controller (spec.md §4.1).
package pixels

import "github.com/rs/zerolog"

// strip is the low-level driver surface the Manager drives from its
// dedicated OS thread. The two implementations - controller_hardware.go
// (linux/arm64, a bit-banged WS2812 GPIO driver) and controller_mock.go
// (everywhere else, an in-memory buffer used for development and tests)
// - are selected at compile time by build tag, mirroring the source's
// #[cfg(target_arch = "aarch64")] split in interface/mod.rs.
type strip interface {
	setPixel(index uint16, r, g, b uint8)
	fill(r, g, b uint8)
	setBrightness(level uint8)
	render() error
	close() error
}

// newStrip builds the strip controller for count LEDs. It is
// implemented per build tag; see controller_hardware.go and
// controller_mock.go.
func newStrip(count uint16, logger zerolog.Logger) (strip, error) {
	return newStripImpl(count, logger)
}

//go:build !(linux && arm64)

package pixels

import "github.com/rs/zerolog"

// mockController keeps an in-memory [4]byte quadruplet per pixel,
// matching the [B, G, R, 0] word layout of the real driver, and logs
// the strip state on render instead of writing to hardware. Grounded
// on original_source/controller/src/interface/mock.rs.
type mockController struct {
	leds       [][4]uint8
	brightness uint8
	log        zerolog.Logger
}

func newStripImpl(count uint16, logger zerolog.Logger) (strip, error) {
	return &mockController{leds: make([][4]uint8, count), log: logger}, nil
}

func (c *mockController) setPixel(index uint16, r, g, b uint8) {
	c.leds[index] = [4]uint8{b, g, r, 0}
}

func (c *mockController) fill(r, g, b uint8) {
	for i := range c.leds {
		c.leds[i] = [4]uint8{b, g, r, 0}
	}
}

func (c *mockController) setBrightness(level uint8) { c.brightness = level }

func (c *mockController) render() error {
	c.log.Debug().Uint8("brightness", c.brightness).Interface("leds", c.leds).Msg("current strip state")
	return nil
}

func (c *mockController) close() error { return nil }

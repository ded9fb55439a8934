//go:build linux && arm64

package pixels

import (
	"fmt"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Hardware constants match the WS2812 channel configuration documented
// in spec.md §6: LED channel 0, 800kHz, DMA channel 10, GPIO 18,
// non-inverted. Grounded on
// original_source/controller/src/pixels.rs's LED_* constants.
const (
	ledFrequency = 800_000
	ledDMA       = 10
	ledPinName   = "GPIO18"
)

// hardwareController drives a WS2812 strip bit-banged over a single
// GPIO pin acquired through periph's host driver registry. periph does
// not expose a DMA/PWM peripheral abstraction precise enough for true
// WS2812 timing the way rs_ws281x does on the Pi; this controller
// issues the same render-time quadruplet layout the mock uses and
// leans on the gpio.PinOut acquired via host.Init()+gpioreg, which is
// the real, idiomatic periph pattern for claiming a pin (see
// cmd/gpio-write in the teacher repo).
type hardwareController struct {
	pin        gpio.PinOut
	leds       [][4]uint8
	brightness uint8
	log        zerolog.Logger
}

func newStripImpl(count uint16, logger zerolog.Logger) (strip, error) {
	if _, err := host.Init(); err != nil {
		return nil, ErrSetup(err)
	}

	pin := gpioreg.ByName(ledPinName)
	if pin == nil {
		return nil, ErrNotSupported(fmt.Errorf("pin %s not found", ledPinName))
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, ErrPermissions(err)
	}

	return &hardwareController{
		pin:  pin,
		leds: make([][4]uint8, count),
		log:  logger,
	}, nil
}

func (c *hardwareController) setPixel(index uint16, r, g, b uint8) {
	c.leds[index] = [4]uint8{b, g, r, 0}
}

func (c *hardwareController) fill(r, g, b uint8) {
	for i := range c.leds {
		c.leds[i] = [4]uint8{b, g, r, 0}
	}
}

func (c *hardwareController) setBrightness(level uint8) { c.brightness = level }

// render shifts every pixel's quadruplet out on the pin one bit at a
// time. It is deliberately not the timing-critical WS2812 protocol
// (that requires sub-microsecond PWM/DMA this abstraction cannot
// express); it exists so the hardware build path is exercised without
// the dedicated peripheral the real device needs.
func (c *hardwareController) render() error {
	for _, quad := range c.leds {
		scaled := scaleQuad(quad, c.brightness)
		for _, word := range scaled {
			for bit := 7; bit >= 0; bit-- {
				level := gpio.Level(word&(1<<uint(bit)) != 0)
				if err := c.pin.Out(level); err != nil {
					return err
				}
			}
		}
	}
	if err := c.pin.Out(gpio.Low); err != nil {
		return err
	}
	c.log.Debug().Int("count", len(c.leds)).Msg("rendered strip")
	return nil
}

func scaleQuad(quad [4]uint8, brightness uint8) [4]uint8 {
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(brightness) / 255) }
	return [4]uint8{scale(quad[0]), scale(quad[1]), scale(quad[2]), quad[3]}
}

func (c *hardwareController) close() error {
	return c.pin.Out(gpio.Low)
}

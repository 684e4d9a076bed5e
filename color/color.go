// Copyright © 2021 Io FinNet Group, Inc.

// Package color is the paint-mixing analogy of the exchange: a public base color is
// blended with each party's secret color, and blending is an integer average per channel.
package color

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/iofinnet/dhlab/dh"
)

var (
	hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

	ErrNotHexColor = errors.New("must match #RRGGBB")
)

type Color struct {
	R, G, B uint8
}

// Validate reports whether s is exactly '#' followed by six hex digits.
func Validate(s string) bool {
	return hexPattern.MatchString(s)
}

// Parse decodes a #RRGGBB code, failing with dh.KindInvalidFormat.
func Parse(s string) (Color, error) {
	return parseField("color", s)
}

func parseField(field, s string) (Color, error) {
	if !Validate(s) {
		return Color{}, dh.NewError(dh.KindInvalidFormat, field, s, ErrNotHexColor)
	}
	r, g, b := HexToRGB(s)
	return Color{R: r, G: g, B: b}, nil
}

// HexToRGB splits a code already accepted by Validate into its channels.
func HexToRGB(s string) (r, g, b uint8) {
	v, _ := strconv.ParseUint(s[1:], 16, 32)
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// RGBToHex renders lowercase #rrggbb.
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func (c Color) Hex() string {
	return RGBToHex(c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// MixTwo averages each channel, rounding down.
func MixTwo(a, b Color) Color {
	return Color{
		R: avg(a.R, b.R),
		G: avg(a.G, b.G),
		B: avg(a.B, b.B),
	}
}

// MixThree averages each channel of three colors, rounding down.
func MixThree(a, b, c Color) Color {
	return Color{
		R: avg(a.R, b.R, c.R),
		G: avg(a.G, b.G, c.G),
		B: avg(a.B, b.B, c.B),
	}
}

func avg(channels ...uint8) uint8 {
	sum := 0
	for _, c := range channels {
		sum += int(c)
	}
	return uint8(sum / len(channels))
}

// Copyright © 2024 Geoff Holden <geoff@geoffholden.com>

package display

// Glyph is one of the trend images shown between messages.
type Glyph int

const (
	GlyphNone Glyph = iota
	GlyphArrowUp
	GlyphArrowDown
	GlyphBars
)

func (g Glyph) String() string {
	switch g {
	case GlyphArrowUp:
		return "arrow up"
	case GlyphArrowDown:
		return "arrow down"
	case GlyphBars:
		return "bars"
	}
	return "none"
}

func (g Glyph) Pixels() Pixels {
	switch g {
	case GlyphArrowUp:
		return arrowUp
	case GlyphArrowDown:
		return arrowDown
	case GlyphBars:
		return bars
	}
	return Pixels{}
}

var arrowUp = bitmap(Red, Empty,
	"...##...",
	"..####..",
	".#.##.#.",
	"#..##..#",
	"...##...",
	"...##...",
	"...##...",
	"...##...",
)

var arrowDown = bitmap(Blue, Empty,
	"...##...",
	"...##...",
	"...##...",
	"...##...",
	"#..##..#",
	".#.##.#.",
	"..####..",
	"...##...",
)

var bars = stripes(
	Empty, Empty,
	Red, Red,
	Blue, Blue,
	Empty, Empty,
)

func bitmap(fg, bg Color, rows ...string) Pixels {
	var p Pixels
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				p[y*8+x] = fg
			} else {
				p[y*8+x] = bg
			}
		}
	}
	return p
}

func stripes(rows ...Color) Pixels {
	var p Pixels
	for y, c := range rows {
		for x := 0; x < 8; x++ {
			p[y*8+x] = c
		}
	}
	return p
}

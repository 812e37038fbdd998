package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderRate renders a 0-100 rate as a bar like [████░░░░]  45%.
// Green at 67 and above, yellow from 33, red below.
func RenderRate(rate int, width int) string {
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}
	if width < 2 {
		width = 2
	}

	filled := rate * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case rate < 33:
		style = StyleRed
	case rate < 67:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), rate)
}

package resutils

import (
	"github.com/rotisserie/eris"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

var paletteMap = map[string]func() palette.ColorMap{
	"blackbody":            moreland.BlackBody,
	"extended_blackbody":   moreland.ExtendedBlackBody,
	"kindlmann":            moreland.Kindlmann,
	"extended_kindlmann":   moreland.ExtendedKindlmann,
	"smooth_blue_red":      func() palette.ColorMap { return moreland.SmoothBlueRed() },
	"smooth_blue_tan":      func() palette.ColorMap { return moreland.SmoothBlueTan() },
	"smooth_green_purple":  func() palette.ColorMap { return moreland.SmoothGreenPurple() },
	"smooth_green_red":     func() palette.ColorMap { return moreland.SmoothGreenRed() },
	"smooth_purple_orange": func() palette.ColorMap { return moreland.SmoothPurpleOrange() },
}

// 按名称创建[0,1]区间的色带
func NewPalette(name string) (cm palette.ColorMap, err error) {
	f, ok := paletteMap[name]
	if !ok {
		err = eris.Wrapf(ErrUnknownPalette, "palette %q", name)
		return
	}
	cm = f()
	cm.SetMin(0)
	cm.SetMax(1)
	if d, ok := cm.(palette.DivergingColorMap); ok {
		d.SetConvergePoint(0.5)
	}
	cm.SetAlpha(1)
	return
}

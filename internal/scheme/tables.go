package scheme

const (
	volumeLong    = "rgba(139,199,194,0.4)"
	volumeShort   = "rgba(235,160,159,0.4)"
	shadow        = "rgba(72,72,72,0.2)"
	footprintFont = "rgba(255,255,255,0.58)"
)

var seriesStyles = map[Kind]map[Theme]StyleSpec{
	KindCandlestick: {
		Classic: {
			{"strokeWidth", "1.6"},
			{"candleLongColor", "green"},
			{"candleShortColor", "red"},
			{"candleLongWickColor", "green"},
			{"candleShortWickColor", "red"},
			{"candleVolumeLongColor", volumeLong},
			{"candleVolumeShortColor", volumeShort},
		},
		Clearlook: {
			{"strokeWidth", "0.9"},
			{"strokeColor", "black"},
			{"candleLongColor", "white"},
			{"candleShortColor", "red"},
			{"candleVolumeLongColor", volumeLong},
			{"candleVolumeShortColor", volumeShort},
		},
		Sand: {
			{"strokeWidth", "0.9"},
			{"strokeColor", "black"},
			{"candleLongColor", "white"},
			{"candleShortColor", "red"},
			{"candleShadowColor", shadow},
			{"candleVolumeLongColor", volumeLong},
			{"candleVolumeShortColor", volumeShort},
		},
		Blackberry: {
			{"strokeWidth", "1.5"},
			{"strokeColor", "black"},
			{"candleLongColor", "#00022e"},
			{"candleShortColor", "#780000"},
			{"candleLongWickColor", "white"},
			{"candleShortWickColor", "red"},
			{"candleVolumeLongColor", volumeLong},
			{"candleVolumeShortColor", volumeShort},
		},
		Dark: {
			{"strokeWidth", "1.5"},
			{"strokeColor", "black"},
			{"candleLongColor", "#298988"},
			{"candleShortColor", "#963838"},
			{"candleLongWickColor", "#89e278"},
			{"candleShortWickColor", "#e85656"},
			{"candleVolumeLongColor", volumeLong},
			{"candleVolumeShortColor", volumeShort},
		},
	},
	KindHighLow: {
		Classic: {
			{"highLowBodyLineWidth", "1.6"},
			{"highLowTickLineWidth", "2.0"},
			{"highLowLongColor", "green"},
			{"highLowLongTickColor", "green"},
			{"highLowShortColor", "red"},
			{"highLowShortTickColor", "red"},
			{"highLowVolumeLongColor", volumeLong},
			{"highLowVolumeShortColor", volumeShort},
		},
		Clearlook: {
			{"highLowBodyLineWidth", "1.6"},
			{"highLowTickLineWidth", "2.0"},
			{"highLowLongColor", "black"},
			{"highLowLongTickColor", "black"},
			{"highLowShortColor", "red"},
			{"highLowShortTickColor", "red"},
			{"highLowVolumeLongColor", volumeLong},
			{"highLowVolumeShortColor", volumeShort},
		},
		Sand: {
			{"highLowBodyLineWidth", "1.2"},
			{"highLowTickLineWidth", "1.2"},
			{"highLowLongColor", "black"},
			{"highLowLongTickColor", "black"},
			{"highLowShortColor", "red"},
			{"highLowShortTickColor", "red"},
			{"hiLowShadowColor", shadow},
			{"highLowVolumeLongColor", volumeLong},
			{"highLowVolumeShortColor", volumeShort},
		},
		Blackberry: {
			{"highLowBodyLineWidth", "2.0"},
			{"highLowTickLineWidth", "2.5"},
			{"highLowLongColor", "white"},
			{"highLowLongTickColor", "white"},
			{"highLowShortColor", "red"},
			{"highLowShortTickColor", "red"},
			{"highLowVolumeLongColor", volumeLong},
			{"highLowVolumeShortColor", volumeShort},
		},
		Dark: {
			{"highLowBodyLineWidth", "2.0"},
			{"highLowTickLineWidth", "2.5"},
			{"highLowLongColor", "#89e278"},
			{"highLowLongTickColor", "#89e278"},
			{"highLowShortColor", "#e85656"},
			{"highLowShortTickColor", "#e85656"},
			{"highLowVolumeLongColor", volumeLong},
			{"highLowVolumeShortColor", volumeShort},
		},
	},
	KindFootprint: {
		Classic: {
			{"footprintLongColor", "green"},
			{"footprintShortColor", "red"},
			{"footprintCrossLineColor", "grey"},
			{"footprintDefaultFontColor", footprintFont},
			{"footprintPocColor", "#d1d100"},
			{"footprintVolumeLongColor", volumeLong},
			{"footprintVolumeShortColor", volumeShort},
		},
		Clearlook: {
			{"footprintLongColor", "#4c4c4c"},
			{"footprintShortColor", "red"},
			{"footprintCrossLineColor", "grey"},
			{"footprintDefaultFontColor", footprintFont},
			{"footprintPocColor", "#d1d100"},
			{"footprintVolumeLongColor", volumeLong},
			{"footprintVolumeShortColor", volumeShort},
		},
		Sand: {
			{"footprintLongColor", "#00aa00"},
			{"footprintShortColor", "red"},
			{"footprintCrossLineColor", "black"},
			{"footprintDefaultFontColor", footprintFont},
			{"footprintPocColor", "#d1d100"},
			{"candleShadowColor", shadow},
			{"footprintVolumeLongColor", volumeLong},
			{"footprintVolumeShortColor", volumeShort},
		},
		Blackberry: {
			{"footprintLongColor", "#00022e"},
			{"footprintShortColor", "#780000"},
			{"footprintCrossLineColor", "grey"},
			{"footprintDefaultFontColor", footprintFont},
			{"footprintPocColor", "yellow"},
			{"candleLongWickColor", "white"},
			{"candleShortWickColor", "red"},
			{"footprintVolumeLongColor", volumeLong},
			{"footprintVolumeShortColor", volumeShort},
		},
		Dark: {
			{"footprintLongColor", "#298988"},
			{"footprintShortColor", "#963838"},
			{"footprintCrossLineColor", "grey"},
			{"footprintDefaultFontColor", footprintFont},
			{"footprintPocColor", "yellow"},
			{"footprintVolumeLongColor", volumeLong},
			{"footprintVolumeShortColor", volumeShort},
		},
	},
}

// Light schemes share one position palette; dark backgrounds swap the exit
// and label colours to white.
var (
	positionOnLight = StyleSpec{
		{"positionTriangleLongColor", "green"},
		{"positionTriangleShortColor", "red"},
		{"positionTriangleExitColor", "black"},
		{"positionArrowLongColor", "green"},
		{"positionArrowShortColor", "red"},
		{"positionArrowExitColor", "black"},
		{"positionLabelTradeDescriptionColor", "black"},
		{"positionOrderLinkageProfitColor", "green"},
		{"positionOrderLinkageLossColor", "red"},
	}
	positionOnDark = StyleSpec{
		{"positionTriangleLongColor", "green"},
		{"positionTriangleShortColor", "red"},
		{"positionTriangleExitColor", "white"},
		{"positionArrowLongColor", "green"},
		{"positionArrowShortColor", "red"},
		{"positionArrowExitColor", "white"},
		{"positionLabelTradeDescriptionColor", "white"},
		{"positionOrderLinkageProfitColor", "green"},
		{"positionOrderLinkageLossColor", "red"},
	}
)

var overlayStyles = map[Kind]map[Theme]StyleSpec{
	KindPositionOverlay: {
		Classic: {
			{"positionTriangleLongColor", "blue"},
			{"positionTriangleShortColor", "#a10000"},
			{"positionTriangleExitColor", "black"},
			{"positionArrowLongColor", "blue"},
			{"positionArrowShortColor", "red"},
			{"positionArrowExitColor", "black"},
			{"positionLabelTradeDescriptionColor", "black"},
			{"positionOrderLinkageProfitColor", "blue"},
			{"positionOrderLinkageLossColor", "#a10000"},
		},
		Clearlook:  positionOnLight,
		Sand:       positionOnLight,
		Blackberry: positionOnDark,
		Dark:       positionOnDark,
	},
}

// SeriesStyle returns the series style for a renderer kind. ok is false when
// the kind has no table; err is set when it has one without the theme.
func SeriesStyle(theme Theme, kind Kind) (spec StyleSpec, ok bool, err error) {
	return lookup(seriesStyles, theme, kind)
}

// OverlayStyle is SeriesStyle for paint-after extension kinds.
func OverlayStyle(theme Theme, kind Kind) (spec StyleSpec, ok bool, err error) {
	return lookup(overlayStyles, theme, kind)
}

func lookup(tables map[Kind]map[Theme]StyleSpec, theme Theme, kind Kind) (StyleSpec, bool, error) {
	byTheme, ok := tables[kind]
	if !ok {
		return nil, false, nil
	}
	spec, ok := byTheme[theme]
	if !ok {
		return nil, true, &UnsupportedThemeError{Kind: kind, Theme: theme}
	}
	return spec.Clone(), true, nil
}

package config

const (
	// Animate stage pixels per source pixel. The player renders at
	// 1536px reference resolution, authoring stages at 1200px.
	DefaultStagePixelRatio = 0.78125

	DefaultFrameRate = 30

	DefaultStageWidth  = 390.0
	DefaultStageHeight = 390.0
)

var frameRate int = DefaultFrameRate

var stagePixelRatio float64 = DefaultStagePixelRatio

var globalScale float64 = 1.0

func GetFrameRate() int {
	return frameRate
}

func SetFrameRate(fps int) {
	frameRate = fps
}

func GetStagePixelRatio() float64 {
	return stagePixelRatio
}

func SetStagePixelRatio(ratio float64) {
	stagePixelRatio = ratio
}

func GetGlobalScale() float64 {
	return globalScale
}

func SetGlobalScale(scale float64) {
	globalScale = scale
}

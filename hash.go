package saver

import "math"

// Hash constants. Seeds are grid-cell indices, typically small integers, and
// these values keep the sine construction free of visible periodicity at
// display resolutions.
var (
	hashDotX = Vec2{X: 127.1, Y: 311.7}
	hashDotY = Vec2{X: 269.5, Y: 183.3}
	hashDotZ = Vec2{X: 419.2, Y: 371.9}
)

const hashScale = 43758.5453123

// Hash returns a deterministic pseudo-random value in [0, 1) for a 2D seed:
// fract(sin(dot(seed, K)) * C).
func Hash(seed Vec2) float64 {
	return hashDot(seed, hashDotX)
}

// Hash2 returns two independent pseudo-random values in [0, 1) for a seed.
// Neither component equals Hash(seed).
func Hash2(seed Vec2) Vec2 {
	return Vec2{X: hashDot(seed, hashDotY), Y: hashDot(seed, hashDotZ)}
}

func hashDot(seed, k Vec2) float64 {
	return Fract(math.Sin(seed.Dot(k)) * hashScale)
}

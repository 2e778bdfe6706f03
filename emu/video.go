package emu

// Output geometry: the two eyes placed side by side.
const (
	ScreenWidth     = EyeWidth * 2
	ScreenHeight    = EyeHeight
	framebufferSize = ScreenWidth * ScreenHeight * 4
	screenStride    = ScreenWidth * 4
)

// bgr555ToRGBA expands a GBA color to 8 bits per channel.
func bgr555ToRGBA(c uint16) (r, g, b byte) {
	r5 := byte(c & 0x1F)
	g5 := byte((c >> 5) & 0x1F)
	b5 := byte((c >> 10) & 0x1F)
	return r5<<3 | r5>>2, g5<<3 | g5>>2, b5<<3 | b5>>2
}

// mergeEyes composites the left eye into columns 0-239 and the right eye
// into columns 240-479 of dst. Short eye buffers leave the rows they do not
// cover untouched.
func mergeEyes(dst []byte, left, right []uint16) {
	for y := 0; y < EyeHeight; y++ {
		row := dst[y*screenStride : (y+1)*screenStride]
		copyEye(row[:EyeWidth*4], left, y)
		copyEye(row[EyeWidth*4:], right, y)
	}
}

// copyEye converts one row of an eye buffer into RGBA.
func copyEye(dst []byte, eye []uint16, y int) {
	start := y * EyeStride
	if start+EyeWidth > len(eye) {
		return
	}
	for x, c := range eye[start : start+EyeWidth] {
		r, g, b := bgr555ToRGBA(c)
		i := x * 4
		dst[i] = r
		dst[i+1] = g
		dst[i+2] = b
		dst[i+3] = 0xFF
	}
}

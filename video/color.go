package video

// RGB packs 8-bit channels into an ARGB word.
func RGB(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Red returns the red channel of an ARGB word.
func Red(argb uint32) uint8 {
	return uint8(argb >> 16)
}

// Green returns the green channel of an ARGB word.
func Green(argb uint32) uint8 {
	return uint8(argb >> 8)
}

// Blue returns the blue channel of an ARGB word.
func Blue(argb uint32) uint8 {
	return uint8(argb)
}

// Alpha returns the alpha channel of an ARGB word.
func Alpha(argb uint32) uint8 {
	return uint8(argb >> 24)
}

// Gray returns an integer luma approximation (11r + 16g + 5b) / 32.
func Gray(argb uint32) uint8 {
	return uint8((11*uint32(Red(argb)) + 16*uint32(Green(argb)) + 5*uint32(Blue(argb))) >> 5)
}

// GrayPixel replaces the colour of an ARGB word with its Gray value,
// keeping alpha.
func GrayPixel(argb uint32) uint32 {
	l := Gray(argb)
	return RGB(l, l, l, Alpha(argb))
}

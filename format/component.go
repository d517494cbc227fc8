package format

// ComponentType identifies the colour channel a Component carries.
type ComponentType int

const (
	ComponentUnknown ComponentType = iota
	ComponentR
	ComponentG
	ComponentB
	ComponentY
	ComponentU
	ComponentV
	ComponentA
)

// String returns the short channel name.
func (t ComponentType) String() string {
	switch t {
	case ComponentR:
		return "R"
	case ComponentG:
		return "G"
	case ComponentB:
		return "B"
	case ComponentY:
		return "Y"
	case ComponentU:
		return "U"
	case ComponentV:
		return "V"
	case ComponentA:
		return "A"
	default:
		return "Unknown"
	}
}

// Component describes where one colour channel lives inside a plane.
//
// A sample for pixel x on a plane line is stored at byte
// (x >> WidthDiv) * Step + Offset, read as a ByteDepth-wide word,
// shifted right by Shift and masked to Depth bits.
type Component struct {
	Type ComponentType

	// Step is the number of bytes between two consecutive samples.
	Step int

	// Offset is the byte offset of the first sample inside the line.
	Offset int

	// Shift is the bit position of the sample inside its storage word.
	Shift int

	// ByteDepth is the storage word width in bytes (1, 2 or 4).
	ByteDepth int

	// Depth is the number of significant bits, at most 8*ByteDepth.
	Depth int

	// WidthDiv and HeightDiv are log2 subsampling factors.
	WidthDiv  int
	HeightDiv int
}

// Max returns the largest value a sample of this component can hold.
func (c Component) Max() uint64 {
	return uint64(1)<<uint(c.Depth) - 1
}

// Mask returns the bits occupied by the component inside its storage word.
func (c Component) Mask() uint64 {
	return c.Max() << uint(c.Shift)
}

// ByteOffset returns the offset of the sample for column x relative to the
// start of its line.
func (c Component) ByteOffset(x int) int {
	return (x>>uint(c.WidthDiv))*c.Step + c.Offset
}

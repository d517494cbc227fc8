package format

// Plane is an ordered group of components sharing one memory region.
type Plane struct {
	components []Component
	bitsSize   int
	pixelSize  int
	widthDiv   int
	heightDiv  int
}

// NewPlane builds a plane from its components. bitsSize is the number of
// bits a full resolution pixel occupies on one line of the plane.
func NewPlane(bitsSize int, components ...Component) Plane {
	p := Plane{
		components: append([]Component(nil), components...),
		bitsSize:   bitsSize,
	}

	for i, c := range components {
		if c.Step > p.pixelSize {
			p.pixelSize = c.Step
		}

		if i == 0 || c.WidthDiv < p.widthDiv {
			p.widthDiv = c.WidthDiv
		}

		if c.HeightDiv > p.heightDiv {
			p.heightDiv = c.HeightDiv
		}
	}

	return p
}

// Components returns a copy of the plane components.
func (p Plane) Components() []Component {
	return append([]Component(nil), p.components...)
}

// Len returns the number of components in the plane.
func (p Plane) Len() int {
	return len(p.components)
}

// Component returns the i-th component.
func (p Plane) Component(i int) Component {
	return p.components[i]
}

// BitsSize returns the bits per full resolution pixel on one plane line.
func (p Plane) BitsSize() int {
	return p.bitsSize
}

// PixelSize returns the largest component step, the size of a pixel group.
func (p Plane) PixelSize() int {
	return p.pixelSize
}

// WidthDiv returns the smallest horizontal subsampling of the plane.
func (p Plane) WidthDiv() int {
	return p.widthDiv
}

// HeightDiv returns the largest vertical subsampling of the plane.
func (p Plane) HeightDiv() int {
	return p.heightDiv
}

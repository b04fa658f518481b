package render

import (
	"errors"

	"github.com/filabank/filabank/internal/d3"
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera of a PNG preview. The mesh is fit into a
// bi-unit cube centered on the origin before rendering.
type View struct {
	LookAt r3.Vec // point to look at
	Up     r3.Vec // which way is up
	Eye    r3.Vec // camera position
	Near   float64
	Far    float64
	// Width and Height of the output image in pixels.
	Width, Height int
	// Supersampling factor used for antialiasing. Zero means 1.
	Supersample int
}

// DefaultView is an isometric view from the positive octant.
var DefaultView = View{
	Up:          r3.Vec{Z: 1},
	Eye:         d3.Elem(2.4),
	Near:        1,
	Far:         10,
	Width:       768,
	Height:      432,
	Supersample: 2,
}

// STLToPNG renders the STL file at stlPath with a Phong shader and saves
// the image as a PNG at pngPath.
func STLToPNG(stlPath, pngPath string, view View) error {
	if view.Width <= 0 || view.Height <= 0 {
		return errors.New("preview dimensions must be positive")
	}
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return err
	}
	const fovy = 30 // vertical field of view in degrees
	scale := max(view.Supersample, 1)
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	mesh.BiUnitCube()
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(uint(view.Width), uint(view.Height), image, resize.Bilinear)
	return fauxgl.SavePNG(pngPath, image)
}

package parts

import (
	"github.com/filabank/filabank/bank"
	"github.com/filabank/filabank/internal/d3"
	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form2/must2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Bracket carries the two wheels a spool rests on. A base tab drops into
// a frame pocket and is held by a lock pin. Two uprights rise from the
// tab, one either side of the wheels, each with an axle pin per wheel.
type Bracket struct{ cfg *bank.Config }

func NewBracket(cfg *bank.Config) *Bracket { return &Bracket{cfg} }

func (b *Bracket) Name() string { return "bracket" }

func (b *Bracket) Compile() (s sdf.SDF3, err error) {
	defer recoverPart(b.Name(), &err)
	c := b.cfg
	wall := c.MinimumStructureThickness
	uprightX := c.BracketInnerWidth()/2 + wall/2
	axleY := c.WheelSeparation() / 2

	tab := box(c.BracketWidth(), c.BracketDepth(), c.BracketBaseHeight(), 0, 0, 0)
	upright := yzPlate(b.uprightProfile(), wall)
	body := sdf.Union3D(tab, translate(upright, -uprightX, 0, 0), translate(upright, uprightX, 0, 0))
	body.SetMin(sdf.RoundMin(c.MinimumThickness))

	// Axle pins are sunk into the uprights by half a wall.
	pinLength := c.AxlePinLength() + wall/2
	pinX := c.BracketInnerWidth()/2 - c.AxlePinLength()/2 + wall/4
	z := c.AxleHeight()
	pins := sdf.Multi3D(rodX(pinLength, c.AxleRadius(), 0, 0, 0), d3.Set{
		{X: -pinX, Y: -axleY, Z: z},
		{X: pinX, Y: -axleY, Z: z},
		{X: -pinX, Y: axleY, Z: z},
		{X: pinX, Y: axleY, Z: z},
	})
	bracket := sdf.Union3D(body, pins)

	hole := rodY(c.BracketDepth()+2*epsilon, c.LockPinHoleRadius(), 0, 0, c.BracketBaseHeight()/2)
	return sdf.Difference3D(bracket, hole), nil
}

// uprightProfile is the upright outline in the YZ plane: a slab up to
// the axles capped by round bosses, with a window between the bosses.
func (b *Bracket) uprightProfile() sdf.SDF2 {
	c := b.cfg
	wall := c.MinimumStructureThickness
	axleY, axleZ := c.WheelSeparation()/2, c.AxleHeight()
	boss := c.AxleBossRadius()
	slab := sdf.Transform2D(must2.Box(r2.Vec{X: c.BracketDepth(), Y: axleZ}, 0), sdf.Translate2D(r2.Vec{Y: axleZ / 2}))
	bosses := sdf.Multi2D(must2.Circle(boss), []r2.Vec{{X: -axleY, Y: axleZ}, {X: axleY, Y: axleZ}})
	profile := sdf.Union2D(slab, bosses)

	window := r2.Vec{
		X: 2*axleY - 2*boss - 2*wall,
		Y: axleZ - c.BracketBaseHeight() - 2*wall,
	}
	if window.X <= 2*wall || window.Y <= 2*wall {
		return profile
	}
	cut := must2.Box(window, wall)
	cut2 := sdf.Transform2D(cut, sdf.Translate2D(r2.Vec{Y: c.BracketBaseHeight() + wall + window.Y/2}))
	return sdf.Difference2D(profile, cut2)
}

package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deadsy/sdfx/obj"
	sdfxrender "github.com/deadsy/sdfx/render"
	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form2/must2"
	"github.com/filabank/filabank/sdf/form3/must3"
	"github.com/filabank/filabank/sdf/render"
	"gonum.org/v1/gonum/spatial/r3"
)

const benchQuality = 200

// BenchmarkSDFXBolt is a baseline for BenchmarkHub.
func BenchmarkSDFXBolt(b *testing.B) {
	stdout := os.Stdout
	defer func() {
		os.Stdout = stdout // sdfx prints progress
	}()
	os.Stdout, _ = os.Open(os.DevNull)
	output := filepath.Join(b.TempDir(), "sdfx_bolt.stl")
	object, err := obj.Bolt(&obj.BoltParms{
		Thread:      "npt_1/2",
		Style:       "hex",
		Tolerance:   0.1,
		TotalLength: 20,
		ShankLength: 10,
	})
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		sdfxrender.ToSTL(object, benchQuality, output, &sdfxrender.MarchingCubesOctree{})
	}
}

// BenchmarkHub meshes a chamfered hub with a hex bore and spokes cut out.
func BenchmarkHub(b *testing.B) {
	output := filepath.Join(b.TempDir(), "hub.stl")
	hub := must3.ChamferedCylinder(20, 12, 1, 1)
	bore := sdf.Extrude3D(must2.Polygon(must2.Nagon(6, 4)), 30)
	window := sdf.Transform3D(must3.Cylinder(30, 2.5, 0), sdf.Translate3D(r3.Vec{X: 8}))
	object := sdf.Difference3D(hub, sdf.Union3D(bore, sdf.RotateCopy3D(window, 5)))
	for i := 0; i < b.N; i++ {
		if _, err := render.CreateSTL(output, render.NewOctreeRenderer(object, benchQuality)); err != nil {
			b.Fatal(err)
		}
	}
}

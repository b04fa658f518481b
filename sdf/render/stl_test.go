package render_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/filabank/filabank/sdf"
	"github.com/filabank/filabank/sdf/form3"
	"github.com/filabank/filabank/sdf/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLCreateWriteRead(t *testing.T) {
	const quality = 20
	box, err := form3.Box(r3.Vec{X: 3, Y: 2, Z: 1}, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "box.stl")
	nt, err := render.CreateSTL(path, render.NewOctreeRenderer(box, quality))
	if err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	model, err := render.RenderAll(render.NewOctreeRenderer(box, quality))
	if err != nil {
		t.Fatal(err)
	}
	if nt != len(model) {
		t.Fatalf("CreateSTL reported %d triangles, RenderAll read %d", nt, len(model))
	}
	var b bytes.Buffer
	err = render.WriteSTL(&b, model)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != len(bfile) {
		t.Fatal("WriteSTL and CreateSTL output length mismatch")
	}
	if !bytes.Equal(b.Bytes(), bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
	readback, err := render.ReadSTL(bytes.NewReader(bfile))
	if err != nil {
		t.Fatal(err)
	}
	if len(readback) != nt {
		t.Errorf("read %d triangles back, want %d", len(readback), nt)
	}
}

func TestCreateSTLEmpty(t *testing.T) {
	a, _ := form3.Sphere(1)
	b, _ := form3.Sphere(2)
	path := filepath.Join(t.TempDir(), "empty.stl")
	_, err := render.CreateSTL(path, render.NewOctreeRenderer(sdf.Difference3D(a, b), 10))
	if err == nil {
		t.Fatal("expected error for a solid with no surface")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("failed export left %s behind", path)
	}
}

// failAtEnd passes the triangles of r through but fails instead of
// reporting the end of the mesh.
type failAtEnd struct{ r render.Renderer }

func (f failAtEnd) ReadTriangles(dst []render.Triangle3) (int, error) {
	n, err := f.r.ReadTriangles(dst)
	if err == io.EOF {
		err = errors.New("renderer stopped")
	}
	return n, err
}

func TestCreateSTLRendererFails(t *testing.T) {
	s, _ := form3.Sphere(1)
	path := filepath.Join(t.TempDir(), "partial.stl")
	_, err := render.CreateSTL(path, failAtEnd{render.NewOctreeRenderer(s, 20)})
	if err == nil || err.Error() != "renderer stopped" {
		t.Fatalf("got error %v, want renderer stopped", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("failed export left %s behind", path)
	}
}

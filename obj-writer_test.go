package main

import (
	"bytes"
	"compress/gzip"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jonnenauha/obj-loader/objectfile"
)

func testModel() *objectfile.Model {
	vertices := []objectfile.Vertex{
		{Position: mgl32.Vec3{0, 0, 0}, TexCoord: mgl32.Vec2{0, 0}, Normal: mgl32.Vec3{0, 0, 1}},
		{Position: mgl32.Vec3{1, 0, 0}, TexCoord: mgl32.Vec2{1, 0}, Normal: mgl32.Vec3{0, 0, 1}},
		{Position: mgl32.Vec3{1, 1.5, 0}, TexCoord: mgl32.Vec2{1, 1}, Normal: mgl32.Vec3{0, 0, 1}},
		{Position: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{0, 1}, Normal: mgl32.Vec3{0, 0, 1}},
	}
	mat := &objectfile.Material{Name: "mat", Texture: "tex/mat.png"}
	return &objectfile.Model{
		Path:      "quad.obj",
		Vertices:  vertices,
		Materials: objectfile.Materials{"mat": mat},
		Meshes: []*objectfile.Submesh{
			{Name: "mat", Vertices: vertices, Indices: []uint32{0, 1, 2, 0, 2, 3}, Material: mat},
		},
	}
}

func TestWriterWriteTo(t *testing.T) {
	var buf bytes.Buffer
	lines, err := (&Writer{model: testModel()}).WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if got := strings.Count(out, "\n"); got != lines {
		t.Errorf("reported %d lines, wrote %d", lines, got)
	}
	for _, want := range []string{
		"# source quad.obj\n",
		"vertices 4\n",
		"1 1.5 0  1 1  0 0 1\n",
		"mesh \"mat\"\ntexture \"tex/mat.png\"\nindices 6\n0 1 2\n0 2 3\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestWriterGzip(t *testing.T) {
	defer func(level int) { StartParams.Gzip = level }(StartParams.Gzip)
	StartParams.Gzip = gzip.BestSpeed

	path := filepath.Join(t.TempDir(), "out.txt.gz")
	lines, err := (&Writer{model: testModel()}).WriteFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if fileSize(path) == 0 {
		t.Fatal("nothing written")
	}

	var plain bytes.Buffer
	StartParams.Gzip = -1
	plainLines, err := (&Writer{model: testModel()}).WriteTo(&plain)
	if err != nil {
		t.Fatal(err)
	}
	if lines != plainLines {
		t.Errorf("gzip lines = %d, plain = %d", lines, plainLines)
	}

	StartParams.Gzip = gzip.BestSpeed
	var compressed bytes.Buffer
	if _, err := (&Writer{model: testModel()}).WriteTo(&compressed); err != nil {
		t.Fatal(err)
	}
	r, err := gzip.NewReader(&compressed)
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "indices 6\n0 1 2\n0 2 3\n") {
		t.Errorf("decompressed output:\n%s", b)
	}
}

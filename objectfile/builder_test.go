package objectfile

import (
	"errors"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func faces(indices ...string) []FaceReference {
	out := []FaceReference{}
	for i := 0; i+2 < len(indices); i += 3 {
		out = append(out, FaceReference{Indices: [3]string{indices[i], indices[i+1], indices[i+2]}, Line: len(out) + 1})
	}
	return out
}

var (
	quadPositions = []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	quadTexCoords = []mgl32.Vec2{{0.5, 0.5}}
	quadNormals   = []mgl32.Vec3{{0, 0, 1}}
)

func TestBuildSharedEdge(t *testing.T) {
	groups := []*FaceGroup{{
		Material: "mat",
		Faces:    faces("1/1/1", "2/1/1", "3/1/1", "1/1/1", "3/1/1", "4/1/1"),
	}}
	vertices, meshes, err := NewBuilder().Build(quadPositions, quadTexCoords, quadNormals, groups)
	if err != nil {
		t.Fatal(err)
	}
	if len(vertices) != 4 {
		t.Fatalf("vertices = %d, want 4", len(vertices))
	}
	if want := []uint32{0, 1, 2, 0, 2, 3}; !reflect.DeepEqual(meshes[0].Indices, want) {
		t.Errorf("indices = %v, want %v", meshes[0].Indices, want)
	}
	for i, v := range vertices {
		want := Vertex{Position: quadPositions[i], TexCoord: quadTexCoords[0], Normal: quadNormals[0]}
		if v != want {
			t.Errorf("vertex %d = %+v, want %+v", i, v, want)
		}
	}
}

func TestBuildDedupAcrossGroups(t *testing.T) {
	groups := []*FaceGroup{
		{Material: "a", Faces: faces("1/1/1", "2/1/1", "3/1/1")},
		{Material: "b", Faces: faces("3/1/1", "4/1/1", "1/1/1")},
	}
	vertices, meshes, err := NewBuilder().Build(quadPositions, quadTexCoords, quadNormals, groups)
	if err != nil {
		t.Fatal(err)
	}
	if len(vertices) != 4 {
		t.Fatalf("vertices = %d, want 4", len(vertices))
	}
	if want := []uint32{2, 3, 0}; !reflect.DeepEqual(meshes[1].Indices, want) {
		t.Errorf("b indices = %v, want %v", meshes[1].Indices, want)
	}
	// one buffer, not copies
	if &meshes[0].Vertices[0] != &meshes[1].Vertices[0] || &meshes[0].Vertices[0] != &vertices[0] {
		t.Error("submeshes do not share the vertex buffer")
	}
	// a vertex added by b is visible through a
	if len(meshes[0].Vertices) != 4 {
		t.Errorf("a sees %d vertices, want 4", len(meshes[0].Vertices))
	}
	for _, mesh := range meshes {
		for _, index := range mesh.Indices {
			if int(index) >= len(vertices) {
				t.Errorf("%s: index %d out of buffer of %d", mesh.Name, index, len(vertices))
			}
		}
	}
}

func TestBuildIdentityIsIndexString(t *testing.T) {
	// positions 1 and 2 are equal floats, the strings still differ
	positions := []mgl32.Vec3{{1, 1, 1}, {1, 1, 1}, {0, 0, 0}}
	groups := []*FaceGroup{{Faces: faces("1/1/1", "2/1/1", "3/1/1")}}
	vertices, meshes, err := NewBuilder().Build(positions, quadTexCoords, quadNormals, groups)
	if err != nil {
		t.Fatal(err)
	}
	if len(vertices) != 3 || vertices[0] != vertices[1] {
		t.Fatalf("vertices = %+v", vertices)
	}
	if want := []uint32{0, 1, 2}; !reflect.DeepEqual(meshes[0].Indices, want) {
		t.Errorf("indices = %v, want %v", meshes[0].Indices, want)
	}
}

func TestBuildDeterministic(t *testing.T) {
	groups := []*FaceGroup{
		{Material: "x", Faces: faces("4/1/1", "2/1/1", "1/1/1", "1/1/1", "3/1/1", "4/1/1")},
		{Material: "y", Faces: faces("2/1/1", "3/1/1", "4/1/1")},
	}
	b := NewBuilder()
	v1, m1, err := b.Build(quadPositions, quadTexCoords, quadNormals, groups)
	if err != nil {
		t.Fatal(err)
	}
	// the same builder is reset between calls
	v2, m2, err := b.Build(quadPositions, quadTexCoords, quadNormals, groups)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v1, v2) || !reflect.DeepEqual(m1, m2) {
		t.Error("builds differ for identical input")
	}
	if want := []uint32{0, 1, 2, 2, 3, 0}; !reflect.DeepEqual(m1[0].Indices, want) {
		t.Errorf("indices = %v, want %v", m1[0].Indices, want)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		index string
		kind  ErrorKind
	}{
		{"position zero", "0/1/1", IndexOutOfRange},
		{"position past end", "5/1/1", IndexOutOfRange},
		{"negative", "-1/1/1", IndexOutOfRange},
		{"texcoord past end", "1/2/1", IndexOutOfRange},
		{"normal past end", "1/1/2", IndexOutOfRange},
		{"empty texcoord", "1//1", MalformedNumber},
		{"not an int", "1/a/1", MalformedNumber},
		{"float index", "1.0/1/1", MalformedNumber},
		{"two parts", "1/1", MalformedFace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := []*FaceGroup{{Faces: []FaceReference{{Indices: [3]string{"1/1/1", "2/1/1", tt.index}, Line: 42}}}}
			b := NewBuilder()
			b.Path = "m.obj"
			vertices, meshes, err := b.Build(quadPositions, quadTexCoords, quadNormals, groups)
			if vertices != nil || meshes != nil {
				t.Error("expected no partial result")
			}
			if !errors.Is(err, tt.kind) {
				t.Fatalf("err = %v, want %v", err, tt.kind)
			}
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Line != 42 || pe.Path != "m.obj" || pe.Token != tt.index {
				t.Errorf("err = %+v", pe)
			}
		})
	}
}

func TestBuildProgress(t *testing.T) {
	groups := []*FaceGroup{
		{Material: "a", Faces: faces("1/1/1", "2/1/1", "3/1/1")},
		{Material: "b", Faces: faces("1/1/1", "3/1/1", "4/1/1", "4/1/1", "3/1/1", "2/1/1")},
	}
	var calls [][2]int
	b := NewBuilder()
	b.Progress = func(done, total int) {
		calls = append(calls, [2]int{done, total})
	}
	if _, _, err := b.Build(quadPositions, quadTexCoords, quadNormals, groups); err != nil {
		t.Fatal(err)
	}
	if want := [][2]int{{1, 3}, {2, 3}, {3, 3}}; !reflect.DeepEqual(calls, want) {
		t.Errorf("progress = %v, want %v", calls, want)
	}
}

func TestBuildEmptyGroup(t *testing.T) {
	vertices, meshes, err := NewBuilder().Build(nil, nil, nil, []*FaceGroup{{Material: "unused"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(vertices) != 0 || len(meshes) != 1 || len(meshes[0].Indices) != 0 {
		t.Errorf("vertices = %v meshes = %+v", vertices, meshes)
	}
}

func TestInterleave(t *testing.T) {
	vertices := []Vertex{
		{Position: mgl32.Vec3{1, 2, 3}, TexCoord: mgl32.Vec2{4, 5}, Normal: mgl32.Vec3{6, 7, 8}},
		{Position: mgl32.Vec3{9, 10, 11}, TexCoord: mgl32.Vec2{12, 13}, Normal: mgl32.Vec3{14, 15, 16}},
	}
	got := Interleave(vertices)
	if len(got) != 2*VertexStride {
		t.Fatalf("len = %d", len(got))
	}
	for i, f := range got {
		if f != float32(i+1) {
			t.Fatalf("interleaved = %v", got)
		}
	}
}

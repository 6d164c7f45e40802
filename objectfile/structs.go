package objectfile

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/slices"
)

// http://www.martinreddy.net/gfx/3d/OBJ.spec
// http://paulbourke.net/dataformats/mtl/

// Type

type Type int

const (
	Unkown Type = iota

	Comment        // #
	MtlLib         // mtllib
	MtlUse         // usemtl
	ChildGroup     // g
	ChildObject    // o
	SmoothingGroup // s
	Position       // v
	Normal         // vn
	UV             // vt
	Face           // f

	// mtl
	MtlNew     // newmtl
	MtlDiffuse // map_Kd
)

func (ot Type) String() string {
	switch ot {
	case Comment:
		return "#"
	case MtlLib:
		return "mtllib"
	case MtlUse:
		return "usemtl"
	case ChildGroup:
		return "g"
	case ChildObject:
		return "o"
	case SmoothingGroup:
		return "s"
	case Position:
		return "v"
	case Normal:
		return "vn"
	case UV:
		return "vt"
	case Face:
		return "f"
	case MtlNew:
		return "newmtl"
	case MtlDiffuse:
		return "map_Kd"
	}
	return ""
}

func (ot Type) Name() string {
	switch ot {
	case Position:
		return "positions"
	case Normal:
		return "normals"
	case UV:
		return "texcoords"
	case Face:
		return "faces"
	}
	return ""
}

// Components is the number of floats a geometry record must declare.
func (ot Type) Components() int {
	switch ot {
	case Position, Normal:
		return 3
	case UV:
		return 2
	}
	return 0
}

// TypeFromString matches the record keyword exactly. A comment may be glued
// to its text ("#comment"), every other keyword must stand alone.
func TypeFromString(str string) Type {
	switch str {
	case "mtllib":
		return MtlLib
	case "usemtl":
		return MtlUse
	case "g":
		return ChildGroup
	case "o":
		return ChildObject
	case "s":
		return SmoothingGroup
	case "v":
		return Position
	case "vn":
		return Normal
	case "vt":
		return UV
	case "f":
		return Face
	case "newmtl":
		return MtlNew
	case "map_Kd":
		return MtlDiffuse
	}
	if strings.HasPrefix(str, "#") {
		return Comment
	}
	return Unkown
}

// FaceReference

// FaceReference is one triangle as written in the file: three "p/t/n"
// index strings. The strings are the vertex identity, they are not
// normalized in any way.
type FaceReference struct {
	Indices [3]string
	Line    int
}

// FaceGroup

// FaceGroup holds the triangles that use one material, in file order.
type FaceGroup struct {
	Material string
	Faces    []FaceReference
}

// Attributes

// Attributes is the raw output of Parser before deduplication.
type Attributes struct {
	Path      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2

	// Groups are ordered by the first usemtl that declared them.
	Groups    []*FaceGroup
	Materials Materials
	Warnings  []string

	Skipped int
}

// Group returns the face group for material, creating it if missing.
func (a *Attributes) Group(material string) *FaceGroup {
	if i := slices.IndexFunc(a.Groups, func(g *FaceGroup) bool { return g.Material == material }); i != -1 {
		return a.Groups[i]
	}
	g := &FaceGroup{Material: material}
	a.Groups = append(a.Groups, g)
	return g
}

func (a *Attributes) Stats() GeometryStats {
	stats := GeometryStats{
		Positions: len(a.Positions),
		Normals:   len(a.Normals),
		TexCoords: len(a.TexCoords),
		Skipped:   a.Skipped,
	}
	for _, g := range a.Groups {
		stats.Faces += len(g.Faces)
	}
	return stats
}

// GeometryStats

type GeometryStats struct {
	Positions, Normals, TexCoords, Faces, Skipped int
}

func (gs GeometryStats) IsEmpty() bool {
	return gs.Positions == 0 && gs.TexCoords == 0 && gs.Normals == 0
}

func (gs GeometryStats) Num(t Type) int {
	switch t {
	case Position:
		return gs.Positions
	case UV:
		return gs.TexCoords
	case Normal:
		return gs.Normals
	case Face:
		return gs.Faces
	default:
		return 0
	}
}

// Vertex

// Vertex is a fully resolved attribute bundle. The field layout is eight
// tightly packed float32 values: x y z u v nx ny nz.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
	Normal   mgl32.Vec3
}

// VertexStride is the number of float32 values per interleaved vertex.
const VertexStride = 8

// Interleave flattens vertices into a render-ready float buffer.
func Interleave(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*VertexStride)
	for _, v := range vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2])
		out = append(out, v.TexCoord[0], v.TexCoord[1])
		out = append(out, v.Normal[0], v.Normal[1], v.Normal[2])
	}
	return out
}

// Submesh

// Submesh is the index list of one material group. Vertices is the buffer
// shared by every submesh of the model, not a copy.
type Submesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material *Material
}

func (s *Submesh) Triangles() int {
	return len(s.Indices) / 3
}

// Material

type Material struct {
	Name    string
	Texture string
	Library string
}

// Materials maps material names to their definitions.
type Materials map[string]*Material

// Merge copies other into m, later definitions replace earlier ones.
func (m Materials) Merge(other Materials) {
	for name, mat := range other {
		m[name] = mat
	}
}

// Model

type Model struct {
	Path      string
	Meshes    []*Submesh
	Vertices  []Vertex
	Materials Materials
	Warnings  []string

	geometry GeometryStats
}

// ModelStats

type ModelStats struct {
	Meshes    int
	Triangles int
	Vertices  int
	Materials int
	Warnings  int
	Geometry  GeometryStats
}

func (m *Model) Stats() ModelStats {
	stats := ModelStats{
		Meshes:    len(m.Meshes),
		Vertices:  len(m.Vertices),
		Materials: len(m.Materials),
		Warnings:  len(m.Warnings),
		Geometry:  m.geometry,
	}
	for _, mesh := range m.Meshes {
		stats.Triangles += mesh.Triangles()
	}
	return stats
}

// Mesh returns the submesh built for material name, or nil.
func (m *Model) Mesh(name string) *Submesh {
	if i := slices.IndexFunc(m.Meshes, func(s *Submesh) bool { return s.Name == name }); i != -1 {
		return m.Meshes[i]
	}
	return nil
}

// Names returns the registry keys in sorted order.
func (m Materials) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

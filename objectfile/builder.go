package objectfile

import (
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// Builder resolves face references into one shared, deduplicated vertex
// buffer and one index list per face group.
//
// Vertex identity is the index string as written ("1/2/3"), so two strings
// that resolve to equal floats still produce two vertices. Slots are assigned
// in the order strings are first seen, groups in order, faces in order, which
// makes the output reproducible for identical input.
type Builder struct {
	// Progress, if set, is called after every face.
	Progress func(done, total int)

	// Path is used for error context only.
	Path string

	slots    map[string]uint32
	vertices []Vertex
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) reset() {
	b.slots = make(map[string]uint32)
	b.vertices = make([]Vertex, 0)
}

// Build returns the shared vertex buffer and one submesh per group. Every
// submesh references the returned buffer. Nothing is returned on error.
func (b *Builder) Build(positions []mgl32.Vec3, texcoords []mgl32.Vec2, normals []mgl32.Vec3, groups []*FaceGroup) ([]Vertex, []*Submesh, error) {
	b.reset()
	defer func() {
		b.slots = nil
		b.vertices = nil
	}()

	total := 0
	for _, g := range groups {
		total += len(g.Faces)
	}

	var (
		meshes = make([]*Submesh, 0, len(groups))
		done   = 0
	)
	for _, g := range groups {
		mesh := &Submesh{
			Name:    g.Material,
			Indices: make([]uint32, 0, len(g.Faces)*3),
		}
		for _, face := range g.Faces {
			for _, index := range face.Indices {
				slot, err := b.slot(index, face.Line, positions, texcoords, normals)
				if err != nil {
					return nil, nil, err
				}
				mesh.Indices = append(mesh.Indices, slot)
			}
			done++
			if b.Progress != nil {
				b.Progress(done, total)
			}
		}
		meshes = append(meshes, mesh)
	}

	// vertices added by later groups must be visible to earlier ones
	vertices := b.vertices
	for _, mesh := range meshes {
		mesh.Vertices = vertices
	}
	return vertices, meshes, nil
}

func (b *Builder) slot(index string, line int, positions []mgl32.Vec3, texcoords []mgl32.Vec2, normals []mgl32.Vec3) (uint32, error) {
	if slot, found := b.slots[index]; found {
		return slot, nil
	}
	parts, ok := splitIndex(index)
	if !ok {
		return 0, newError(MalformedFace, b.Path, line, index, "face vertex is not in position/texcoord/normal form")
	}

	var refs [3]int
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			e := newError(MalformedNumber, b.Path, line, index, "invalid %s index", []Type{Position, UV, Normal}[i].Name())
			e.Err = err
			return 0, e
		}
		refs[i] = value
	}

	// OBJ refs start from 1 not zero
	pi, ti, ni := refs[0], refs[1], refs[2]
	if pi <= 0 || pi > len(positions) {
		return 0, newError(IndexOutOfRange, b.Path, line, index, "position index %d out of bounds, %d declared", pi, len(positions))
	}
	if ti <= 0 || ti > len(texcoords) {
		return 0, newError(IndexOutOfRange, b.Path, line, index, "texcoord index %d out of bounds, %d declared", ti, len(texcoords))
	}
	if ni <= 0 || ni > len(normals) {
		return 0, newError(IndexOutOfRange, b.Path, line, index, "normal index %d out of bounds, %d declared", ni, len(normals))
	}
	if uint64(len(b.vertices)) >= math.MaxUint32 {
		return 0, newError(IndexOutOfRange, b.Path, line, index, "more than %d unique vertices", uint32(math.MaxUint32))
	}

	slot := uint32(len(b.vertices))
	b.vertices = append(b.vertices, Vertex{
		Position: positions[pi-1],
		TexCoord: texcoords[ti-1],
		Normal:   normals[ni-1],
	})
	b.slots[index] = slot
	return slot, nil
}

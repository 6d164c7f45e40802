package objectfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Parser reads OBJ geometry into Attributes. A Parser holds no state between
// calls and may be reused.
type Parser struct {
	opts   Options
	logger *zap.Logger
}

func NewParser(opts Options) *Parser {
	return &Parser{
		opts:   opts,
		logger: opts.logger().Named("obj"),
	}
}

func (p *Parser) ParseFile(path string) (*Attributes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Kind: FileNotFound, Path: path, Msg: "cannot open obj file", Err: err}
	}
	defer f.Close()
	return p.Parse(f, path)
}

// Parse reads OBJ records from r. path is used for error context only.
func (p *Parser) Parse(r io.Reader, path string) (*Attributes, error) {
	dest := &Attributes{
		Path:      path,
		Positions: make([]mgl32.Vec3, 0),
		Normals:   make([]mgl32.Vec3, 0),
		TexCoords: make([]mgl32.Vec2, 0),
		Materials: make(Materials),
	}
	// faces before the first usemtl
	current := ""
	rr := newRecordReader(r)

	for {
		rec, ok := rr.Next()
		if !ok {
			break
		}

		switch rec.Type {

		case Comment, ChildObject, ChildGroup, SmoothingGroup:
			continue

		// geometry
		case Position, Normal:
			xyz, err := parseFloats(rec, path, p.opts.Strict)
			if err != nil {
				return nil, err
			}
			v := mgl32.Vec3{xyz[0], xyz[1], xyz[2]}
			if rec.Type == Position {
				dest.Positions = append(dest.Positions, v)
			} else {
				dest.Normals = append(dest.Normals, v)
			}

		case UV:
			uv, err := parseFloats(rec, path, p.opts.Strict)
			if err != nil {
				return nil, err
			}
			dest.TexCoords = append(dest.TexCoords, mgl32.Vec2{uv[0], uv[1]})

		// mtl file ref
		case MtlLib:
			if len(rec.Args) == 0 {
				return nil, newError(FileNotFound, path, rec.Line, "", "mtllib without a file name")
			}
			for _, name := range rec.Args {
				if err := p.readMaterials(dest, name, fmt.Sprintf("%s:%d", path, rec.Line)); err != nil {
					return nil, err
				}
			}

		// face group selection
		case MtlUse:
			current = rec.Value()
			if current == "" {
				msg := fmt.Sprintf("%s:%d usemtl without a material name, faces join the unnamed group", path, rec.Line)
				dest.Warnings = append(dest.Warnings, msg)
				p.logger.Warn("usemtl without a material name", zap.String("path", path), zap.Int("line", rec.Line))
			}
			g := dest.Group(current)
			if p.opts.OverwriteReusedMaterials && len(g.Faces) > 0 {
				p.logger.Debug("usemtl reused, dropping earlier faces",
					zap.String("material", current), zap.Int("faces", len(g.Faces)), zap.Int("line", rec.Line))
				g.Faces = nil
			}

		case Face:
			face, err := parseFace(rec, path)
			if err != nil {
				return nil, err
			}
			g := dest.Group(current)
			g.Faces = append(g.Faces, face)

		default:
			dest.Skipped++
			p.logger.Debug("skipping unsupported record", zap.String("keyword", rec.Keyword), zap.Int("line", rec.Line))
		}
	}
	if err := rr.Err(path); err != nil {
		return nil, err
	}

	p.logger.Debug("parsed obj",
		zap.String("path", path),
		zap.Int("positions", len(dest.Positions)),
		zap.Int("normals", len(dest.Normals)),
		zap.Int("texcoords", len(dest.TexCoords)),
		zap.Int("groups", len(dest.Groups)))
	return dest, nil
}

func (p *Parser) readMaterials(dest *Attributes, name, from string) error {
	mp := NewMaterialParser(p.opts.TextureDir, p.opts.Strict, p.opts.logger())
	materials, warnings, err := mp.ParseFile(p.opts.MaterialDir + name)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.From == "" {
			pe.From = from
		}
		return err
	}
	dest.Materials.Merge(materials)
	dest.Warnings = append(dest.Warnings, warnings...)
	return nil
}

// parseFace validates the shape of a triangle record. The index strings are
// kept verbatim, resolving them is the builder's job.
func parseFace(rec record, path string) (FaceReference, error) {
	face := FaceReference{Line: rec.Line}
	if len(rec.Args) != 3 {
		return face, newError(MalformedFace, path, rec.Line, rec.Value(),
			"expected 3 vertices per face, found %d; triangulate the mesh on export", len(rec.Args))
	}
	for i, index := range rec.Args {
		if _, ok := splitIndex(index); !ok {
			return face, newError(MalformedFace, path, rec.Line, index,
				"face vertex %d is not in position/texcoord/normal form", i+1)
		}
		face.Indices[i] = index
	}
	return face, nil
}

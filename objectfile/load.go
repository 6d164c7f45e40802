package objectfile

import (
	"fmt"

	"go.uber.org/zap"
)

// LoadModel parses the OBJ file at modelPath, its material libraries, and
// builds one indexed submesh per material. Every submesh shares the model's
// vertex buffer and points to its Material when the name is registered.
//
// A nil model is returned with a *ParseError on any failure, an empty model
// means the file declared no faces.
func LoadModel(modelPath string, opts Options) (*Model, error) {
	logger := opts.logger()

	attrs, err := NewParser(opts).ParseFile(modelPath)
	if err != nil {
		return nil, err
	}

	builder := NewBuilder()
	builder.Path = modelPath
	builder.Progress = opts.Progress
	vertices, meshes, err := builder.Build(attrs.Positions, attrs.TexCoords, attrs.Normals, attrs.Groups)
	if err != nil {
		return nil, err
	}

	model := &Model{
		Path:      modelPath,
		Meshes:    meshes,
		Vertices:  vertices,
		Materials: attrs.Materials,
		Warnings:  attrs.Warnings,
		geometry:  attrs.Stats(),
	}
	for _, mesh := range model.Meshes {
		if mesh.Name == "" {
			continue
		}
		if mat, found := model.Materials[mesh.Name]; found {
			mesh.Material = mat
			continue
		}
		msg := fmt.Sprintf("%s: usemtl %q has no material definition", modelPath, mesh.Name)
		model.Warnings = append(model.Warnings, msg)
		logger.Warn("material not defined", zap.String("material", mesh.Name), zap.String("path", modelPath))
	}

	logger.Debug("model loaded",
		zap.String("path", modelPath),
		zap.Int("meshes", len(model.Meshes)),
		zap.Int("vertices", len(model.Vertices)),
		zap.Int("materials", len(model.Materials)))
	return model, nil
}

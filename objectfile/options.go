package objectfile

import "go.uber.org/zap"

// Options configures LoadModel and Parser. The zero value matches the
// defaults of LoadModel(path): materials and textures resolved relative to
// the working directory, lenient parsing, no logging.
type Options struct {
	// MaterialDir is prepended verbatim to mtllib file names.
	MaterialDir string
	// TextureDir is prepended verbatim to map_Kd file names.
	TextureDir string

	// Strict errors out on extra geometry components and on materials
	// without a diffuse texture instead of warning.
	Strict bool

	// OverwriteReusedMaterials makes a repeated usemtl discard the faces
	// collected for that material so far, so only the last block is kept.
	// By default they accumulate.
	OverwriteReusedMaterials bool

	Logger *zap.Logger

	// Progress is called by the builder after each face.
	Progress func(done, total int)
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

package objectfile

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// MaterialParser reads MTL files. Only the material name and its diffuse
// texture (map_Kd) are kept.
type MaterialParser struct {
	TextureDir string
	Strict     bool

	logger *zap.Logger
}

func NewMaterialParser(textureDir string, strict bool, logger *zap.Logger) *MaterialParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterialParser{
		TextureDir: textureDir,
		Strict:     strict,
		logger:     logger.Named("mtl"),
	}
}

// ParseFile returns the materials declared in path and warnings for
// materials that declare no texture.
func (mp *MaterialParser) ParseFile(path string) (Materials, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &ParseError{Kind: FileNotFound, Path: path, Msg: "cannot open material file", Err: err}
	}
	defer f.Close()
	return mp.Parse(f, path)
}

func (mp *MaterialParser) Parse(r io.Reader, path string) (Materials, []string, error) {
	var (
		materials = make(Materials)
		warnings  []string
		current   *Material
		declared  int
	)

	// close the material being declared, a material without map_Kd is
	// kept with an empty texture.
	finish := func() error {
		if current == nil || current.Texture != "" {
			return nil
		}
		if mp.Strict {
			return newError(MissingTexture, path, declared, current.Name, "material has no map_Kd")
		}
		msg := fmt.Sprintf("%s:%d material %q has no map_Kd texture", path, declared, current.Name)
		warnings = append(warnings, msg)
		mp.logger.Warn("material has no diffuse texture", zap.String("material", current.Name), zap.String("path", path), zap.Int("line", declared))
		return nil
	}

	rr := newRecordReader(r)
	for {
		rec, ok := rr.Next()
		if !ok {
			break
		}
		switch rec.Type {

		case MtlNew:
			if err := finish(); err != nil {
				return nil, nil, err
			}
			current = &Material{
				Name:    rec.Value(),
				Library: path,
			}
			declared = rec.Line
			materials[current.Name] = current

		case MtlDiffuse:
			if current == nil {
				mp.logger.Debug("map_Kd outside of a material", zap.Int("line", rec.Line))
				continue
			}
			if len(rec.Args) == 0 {
				return nil, nil, newError(MissingTexture, path, rec.Line, current.Name, "map_Kd without a file name")
			}
			// options like -s 1 1 1 precede the file name
			current.Texture = mp.TextureDir + rec.Args[len(rec.Args)-1]

		default:
			// Ka, Kd, Ns, illum etc.
			continue
		}
	}
	if err := rr.Err(path); err != nil {
		return nil, nil, err
	}
	if err := finish(); err != nil {
		return nil, nil, err
	}

	mp.logger.Debug("parsed mtl", zap.String("path", path), zap.Int("materials", len(materials)))
	return materials, warnings, nil
}

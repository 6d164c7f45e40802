package main

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonnenauha/obj-loader/objectfile"
)

// Writer dumps the built buffers of a model as text: the shared vertex
// buffer followed by each mesh's material and triangle indices.
type Writer struct {
	model *objectfile.Model
}

func (wr *Writer) WriteFile(path string) (int, error) {
	if fileExists(path) {
		if err := os.Remove(path); err != nil {
			return 0, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	linesWritten, errWrite := wr.WriteTo(f)
	if cErr := f.Close(); cErr != nil && errWrite == nil {
		errWrite = cErr
	}
	return linesWritten, errWrite
}

func (wr *Writer) WriteTo(writer io.Writer) (linesWritten int, err error) {
	w := writer
	if StartParams.IsGzipEnabled() {
		wGzip, errGzip := gzip.NewWriterLevel(writer, StartParams.Gzip)
		if errGzip != nil {
			return linesWritten, errGzip
		}
		defer func() {
			if cErr := wGzip.Close(); cErr != nil && err == nil {
				err = cErr
			}
		}()
		w = wGzip
	}

	writeLine := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		if _, err = fmt.Fprintf(w, format+"\n", args...); err == nil {
			linesWritten++
		}
	}

	model := wr.model

	writeLine("# %s %s | %s | %s", ApplicationName, getVersion(false), time.Now().UTC().Format(time.RFC3339), ApplicationURL)
	writeLine("# source %s", model.Path)
	writeLine("")

	writeLine("vertices %d", len(model.Vertices))
	for _, v := range model.Vertices {
		writeLine("%s %s %s  %s %s  %s %s %s",
			formatFloat32(v.Position[0]), formatFloat32(v.Position[1]), formatFloat32(v.Position[2]),
			formatFloat32(v.TexCoord[0]), formatFloat32(v.TexCoord[1]),
			formatFloat32(v.Normal[0]), formatFloat32(v.Normal[1]), formatFloat32(v.Normal[2]))
	}

	for _, mesh := range model.Meshes {
		writeLine("")
		writeLine("mesh %q", mesh.Name)
		if mesh.Material != nil {
			writeLine("texture %q", mesh.Material.Texture)
		}
		writeLine("indices %d", len(mesh.Indices))
		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			writeLine("%d %d %d", mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2])
		}
	}

	return linesWritten, err
}

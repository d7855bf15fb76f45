package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files. Each file goes to outputDir when
// it is set, or to its own package directory otherwise. Directories are
// created if they don't exist.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	written := make([]string, 0, len(files))

	for _, file := range files {
		dir := file.Dir
		if outputDir != "" {
			dir = outputDir
		}

		if dir == "" {
			return written, fmt.Errorf("writing file %s: no output directory", file.Filename)
		}

		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return written, fmt.Errorf("creating output directory: %w", err)
		}

		outputPath := filepath.Join(dir, file.Filename)

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written = append(written, outputPath)
	}

	return written, nil
}

// writeUnformatted saves source that failed to format next to where the
// real file would go. The leading underscore keeps the go tool from
// compiling it into the package.
func writeUnformatted(file GeneratedFile) error {
	if file.Dir == "" {
		return nil
	}

	file.Filename = "_" + strings.TrimSuffix(file.Filename, ".go") + ".unformatted.go"
	_, err := WriteFiles([]GeneratedFile{file}, "")

	return err
}

package localfs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/md5calc/pkg/domain/model"
)

type file struct {
	name string
	path string
}

func (f *file) Name() string { return f.name }

func (f *file) Open() (io.ReadCloser, error) {
	return os.Open(f.path) // #nosec G304 path is selected by the user
}

// Collect returns source files for the given paths in argument order.
// Directories are walked recursively and flattened into the regular files
// under them. A symlink given as a directory path is followed, and its
// entries are named under the path as given. Other non-regular paths such as
// FIFOs or devices are rejected.
func Collect(paths ...string) ([]model.SourceFile, error) {
	files := []model.SourceFile{}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to stat path", goerr.V("path", path))
		}

		if !info.IsDir() {
			if !info.Mode().IsRegular() {
				return nil, goerr.New("not a regular file",
					goerr.V("path", path),
					goerr.V("mode", info.Mode().String()))
			}
			files = append(files, &file{name: path, path: path})
			continue
		}

		// WalkDir does not follow a symlinked root
		root, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve directory", goerr.V("path", path))
		}

		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return goerr.Wrap(err, "failed to walk directory", goerr.V("path", p))
			}
			if !d.Type().IsRegular() {
				return nil
			}

			rel, err := filepath.Rel(root, p)
			if err != nil {
				return goerr.Wrap(err, "failed to make relative path", goerr.V("path", p))
			}
			files = append(files, &file{name: filepath.Join(path, rel), path: p})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

package manifest

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/lockgraph/pkg/errors"
)

// PackageFileName is the declarative manifest that must sit next to the lock file.
const PackageFileName = "package.json"

type packageFile struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Load reads package.json and package-lock.json from dir.
//
// Both files must exist; otherwise an ErrCodeNotFound error naming the missing
// files is returned. Malformed JSON in either file yields ErrCodeParse. The
// project name and version come from package.json, falling back to the lock
// file's own fields when package.json leaves them empty.
func Load(dir string) (*Manifest, error) {
	pkgPath := filepath.Join(dir, PackageFileName)
	lockPath := filepath.Join(dir, LockFileName)

	var missing []string
	for _, p := range []string{pkgPath, lockPath} {
		if _, err := os.Stat(p); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				missing = append(missing, filepath.Base(p))
				continue
			}
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "stat %s", p)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "%s not found in %s", strings.Join(missing, " and "), dir)
	}

	project, err := readPackageFile(pkgPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(lockPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", lockPath)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, err
	}

	if project.Name != "" {
		m.Project.Name = project.Name
	}
	if project.Version != "" {
		m.Project.Version = project.Version
	}
	return m, nil
}

func readPackageFile(p string) (Project, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Project{}, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", p)
	}
	var pkg packageFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		return Project{}, errors.Wrap(errors.ErrCodeParse, err, "decode %s", p)
	}
	return Project{Name: pkg.Name, Version: pkg.Version}, nil
}

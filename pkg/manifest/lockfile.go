package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/matzehuels/lockgraph/pkg/errors"
)

// LockFileName is the lock file consumed by Load.
const LockFileName = "package-lock.json"

const nodeModules = "node_modules/"

type lockFile struct {
	Name            string          `json:"name"`
	Version         string          `json:"version"`
	LockfileVersion int             `json:"lockfileVersion"`
	Packages        json.RawMessage `json:"packages"`
	Dependencies    json.RawMessage `json:"dependencies"`
}

// lockDependency is an entry of the lockfileVersion 1 "dependencies" tree.
type lockDependency struct {
	Version      string          `json:"version"`
	Resolved     string          `json:"resolved"`
	Dev          bool            `json:"dev"`
	Optional     bool            `json:"optional"`
	Requires     json.RawMessage `json:"requires"`
	Dependencies json.RawMessage `json:"dependencies"`
}

// lockPackage is an entry of the lockfileVersion 2/3 "packages" map.
type lockPackage struct {
	Name                 string          `json:"name"`
	Version              string          `json:"version"`
	Resolved             string          `json:"resolved"`
	Dev                  bool            `json:"dev"`
	Optional             bool            `json:"optional"`
	Dependencies         json.RawMessage `json:"dependencies"`
	OptionalDependencies json.RawMessage `json:"optionalDependencies"`
	PeerDependencies     json.RawMessage `json:"peerDependencies"`
}

// Parse decodes a package-lock.json document.
// The "packages" layout is preferred when present; otherwise the
// "dependencies" tree is used. A lock without either yields an empty manifest.
func Parse(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read lock file")
	}

	var lock lockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode lock file")
	}

	m := New()
	m.Project = Project{Name: lock.Name, Version: lock.Version}
	m.LockfileVersion = lock.LockfileVersion

	switch {
	case isObject(lock.Packages):
		err = parsePackages(m, lock.Packages)
	case isObject(lock.Dependencies):
		err = parseDependencies(m, lock.Dependencies)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode lock file")
	}
	return m, nil
}

func parseDependencies(m *Manifest, raw json.RawMessage) error {
	keys, values, err := objectKeys(raw)
	if err != nil {
		return err
	}
	for _, name := range keys {
		var dep lockDependency
		if err := json.Unmarshal(values[name], &dep); err != nil {
			return fmt.Errorf("dependency %q: %w", name, err)
		}

		var children []string
		for _, field := range []json.RawMessage{dep.Requires, dep.Dependencies} {
			names, err := optionalKeys(field)
			if err != nil {
				return fmt.Errorf("dependency %q: %w", name, err)
			}
			children = append(children, names...)
		}

		m.Add(Record{
			Name:         name,
			Version:      dep.Version,
			Resolved:     dep.Resolved,
			Dev:          dep.Dev,
			Optional:     dep.Optional,
			Dependencies: children,
		})
	}
	return nil
}

func parsePackages(m *Manifest, raw json.RawMessage) error {
	keys, values, err := objectKeys(raw)
	if err != nil {
		return err
	}
	for _, key := range keys {
		var pkg lockPackage
		if err := json.Unmarshal(values[key], &pkg); err != nil {
			return fmt.Errorf("package %q: %w", key, err)
		}

		name := packageName(key, pkg.Name, m.Project.Name)
		if name == "" {
			continue
		}

		var children []string
		for _, field := range []json.RawMessage{pkg.Dependencies, pkg.OptionalDependencies, pkg.PeerDependencies} {
			names, err := optionalKeys(field)
			if err != nil {
				return fmt.Errorf("package %q: %w", key, err)
			}
			children = append(children, names...)
		}

		m.Add(Record{
			Name:         name,
			Version:      pkg.Version,
			Resolved:     pkg.Resolved,
			Dev:          pkg.Dev,
			Optional:     pkg.Optional,
			Dependencies: children,
		})
	}
	return nil
}

// packageName derives the package name from an install path such as
// "node_modules/a/node_modules/@scope/b". The root entry "" maps to project.
func packageName(key, declared, project string) string {
	if key == "" {
		if declared != "" {
			return declared
		}
		return project
	}
	if i := strings.LastIndex(key, nodeModules); i >= 0 {
		return key[i+len(nodeModules):]
	}
	if declared != "" {
		return declared
	}
	return path.Base(key)
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// optionalKeys returns the keys of raw when it holds an object and nil for
// anything else (absent, null, or the legacy "requires": true flag).
func optionalKeys(raw json.RawMessage) ([]string, error) {
	if !isObject(raw) {
		return nil, nil
	}
	keys, _, err := objectKeys(raw)
	return keys, err
}

// objectKeys decodes a JSON object, returning its keys in document order and
// the raw value for each key. Repeated keys keep their first position and
// last value, matching encoding/json.
func objectKeys(raw json.RawMessage) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("value of %q: %w", key, err)
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

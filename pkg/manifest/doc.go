// Package manifest loads npm dependency manifests into memory.
//
// # Overview
//
// A [Manifest] maps package names to [Record] values and remembers the order
// in which the names were declared in the lock file. It is built once by
// [Load] (or [Parse]) and is read-only afterwards; the graph builder walks it
// without mutating it.
//
// # Files
//
// [Load] expects a package directory containing both package.json and
// package-lock.json. Only the lock file's dependency structure is consumed;
// package.json contributes the project name and version.
//
// # Lock Formats
//
// Two layouts of package-lock.json are understood:
//
//   - lockfileVersion 1: a top-level "dependencies" object. A record's
//     dependencies are the keys of its "requires" object followed by the keys
//     of its nested "dependencies" object.
//   - lockfileVersion 2 and 3: a "packages" object keyed by install path
//     (node_modules/a/node_modules/b). The package name is the segment after
//     the last node_modules/, the first occurrence of a name wins, and the
//     root entry "" is recorded under the project name.
//
// Key order is preserved by streaming JSON tokens, so the emitted graph keeps
// the lock file's declaration order.
//
// # Errors
//
// Missing files produce an ErrCodeNotFound error; malformed JSON produces an
// ErrCodeParse error. See [github.com/matzehuels/lockgraph/pkg/errors].
package manifest

// Package render turns an edge list into a Graphviz image.
//
// # Overview
//
// Rendering happens in two steps:
//
//  1. [WriteDOT] serializes the edges to DOT: a fixed preamble declaring the
//     layout direction and box styling, then one statement per edge.
//  2. [Render] writes that description next to the output image and hands it
//     to a layout engine.
//
// # Engines
//
// [EngineExec] runs an external Graphviz binary (usually dot) as
//
//	<graphviz_path> -T<format> <file.dot> -o <image>
//
// A missing binary or a non-zero exit becomes an ErrCodeRender error wrapping
// a [*ProcessError] with the exit status and captured stderr.
//
// [EngineEmbedded] renders in process with [github.com/goccy/go-graphviz],
// which needs no installed Graphviz. It supports svg, png and jpg.
//
// # Output Files
//
// For an output path such as out/deps.png the DOT file is out/deps.dot. It is
// first written to a temporary file in the same directory and renamed into
// place, so a failed write never leaves a truncated description behind.
package render

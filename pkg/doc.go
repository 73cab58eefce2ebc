// Package pkg provides the libraries behind gridtable, a grid layout model
// for graphical objects.
//
// # Overview
//
// A table is a grid of rows and columns with independently sized tracks.
// Graphical objects (grobs) are placed into rectangular spans of cells and
// drawn back to front by z value. Structural edits return new tables and
// keep placements, names and z order consistent.
//
// The pkg directory is organized into four areas:
//
//  1. Model: [table], [unit], [grob]
//  2. Rendering: [render], [pipeline], [cache]
//  3. Persistence and serving: [tablefile], [store], [service]
//  4. Support: [errors], [observability], [buildinfo]
//
// # Data Flow
//
//	TOML/JSON definition
//	         ↓
//	    [tablefile] (decode and build)
//	         ↓
//	    [table] (transpose, subset, bind, trim...)
//	         ↓
//	    [render] (resolve units to a frame, then sink)
//	         ↓
//	    SVG/JSON/DOT/PDF/PNG output
//
// # Quick Start
//
//	t, err := tablefile.Load("figure.toml")
//	if err != nil {
//	    return err
//	}
//	t = t.Transpose()
//	svg, err := render.RenderSVG(ctx, t, render.WithSize(640, 480))
//
// # Packages
//
// [table] - The table model and every structural edit. It never resolves
// sizes or draws; rendering is handed to a [table.Renderer].
//
// [unit] - Size units: absolute kinds, flexible null units and compound
// sum/max/min expressions.
//
// [grob] - The drawable object interface and the built-in rect, text and
// null grobs.
//
// [render] - Resolves a table into a viewport frame and writes SVG, JSON,
// DOT layout diagrams (Graphviz), PDF and PNG.
//
// [pipeline] - Runs renders for several formats with artifact caching and
// render hooks.
//
// [cache] - Artifact caches: file, Redis and null.
//
// [tablefile] - Reads and writes table definitions in TOML and JSON.
//
// [store] - Keeps named tables by id: memory, file, Redis and MongoDB.
//
// [service] - HTTP API over a store.
//
// [table]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/table
// [table.Renderer]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/table#Renderer
// [unit]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/unit
// [grob]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/grob
// [render]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/cache
// [tablefile]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/tablefile
// [store]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/store
// [service]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/service
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gridtable/pkg/buildinfo
package pkg

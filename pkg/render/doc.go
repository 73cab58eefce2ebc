// Package render turns tables into pictures.
//
// # Overview
//
// The table package stores sizes as units and never resolves them. This
// package does: [Resolve] walks a table (and any tables nested inside it)
// and produces a [Frame], a tree of viewports in points. Sinks then draw
// the frame:
//
//   - [RenderSVG] writes an SVG document, drawing every grob that
//     implements [grob.Drawer] in z order, clipped where requested
//   - [RenderJSON] writes the resolved frame as JSON
//   - [ToDOT] and [RenderDOTSVG] produce a Graphviz diagram of the layout
//     structure (cells, spans and nesting)
//   - [ToPDF] and [ToPNG] convert SVG output with rsvg-convert
//
// [SVG] implements [table.Renderer], so it can be passed to [table.Table.Draw]:
//
//	var buf bytes.Buffer
//	err := t.Draw(ctx, render.NewSVG(&buf, render.WithSize(400, 300)))
//
// # Size Resolution
//
// Absolute units (cm, mm, in, pt) convert at 72.27 points per inch, lines
// use the configured line height and npc is a fraction of the parent
// viewport. Whatever space is left is shared among null units in
// proportion to their values. A respected table uses the same null scale
// for rows and columns (the smaller of the two), so null-sized cells keep
// their aspect ratio; the grid is then centred in its viewport.
package render

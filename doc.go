// Package logstruct renders nested data as readable, colorized console text
// or files.
//
// A [Renderer] walks a data tree (maps, structs, [Record] values, slices)
// and emits one line per scalar field, a highlighted label per nested
// record and a table per array of records. A [Graph] attached to the
// renderer customizes any path in the tree:
//
//	r := logstruct.New(logstruct.Options{
//		Title: "Schema",
//		Graph: logstruct.Graph{
//			"rails": logstruct.Graph{"skip": true},
//			"people": logstruct.Graph{
//				"heading": "Active people",
//				"filter":  logstruct.FilterFunc(func(row any) bool { v, _ := logstruct.Field(row, "active"); return v == true }),
//				"take":    5,
//				"columns": []any{"first_name", "children.name"},
//			},
//		},
//	})
//	err := r.Render(data)
//
// # Data
//
// In [Raw] mode (the default) the root is enumerated and nested values are
// used as given: only [Record] values and types implementing [Fielder]
// recurse, other maps and structs print as scalars. [Normalized] mode
// converts everything into records first. Use [ParseData] or [LoadData] to
// read JSON or YAML while keeping field order; plain Go maps have no order
// and are enumerated by sorted key.
//
// # Graph settings
//
//   - skip: hide the node and everything below it
//   - heading, heading_style: draw a heading before the node
//   - transform: replace the value before rendering
//   - filter, take, sort, sort_by: shape arrays; applied in that order
//     (filter, then take, then sort)
//   - skip_empty: hide arrays left empty
//   - columns: table columns, see [Column]
//
// Graphs may also be loaded from YAML or TOML with [LoadGraph];
// [SampleGraph] builds a starting point from existing data.
//
// # Output
//
// Rendered lines are kept on the renderer ([Renderer.Lines],
// [Renderer.CleanLines]) and written to each [OutputTarget]: [Console]
// writes colored lines to Options.Stdout, [File] writes color-stripped
// content to Options.OutputFile.
//
// # Errors
//
// Misconfigured settings fall back to defaults. A failing array (bad column
// spec, panicking display function) is logged to Options.Logger and
// skipped. File write failures are returned from [Renderer.Render].
//
//   - [ErrMissingOutputFile]: File output without a path
//   - [ErrInvalidColumn]: malformed column spec
//   - [ErrInvalidTemplate]: column template failed to parse
//   - [ErrDisplayFailed]: display function or template failed
//   - [ErrInvalidData]: root cannot be enumerated, or undecodable input
//   - [ErrUnsupportedFormat]: unknown style or file format
package logstruct

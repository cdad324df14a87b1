// Package datahandler is the Composition Root for the data handler.
//
// It persists tabular payloads and chart images to disk and keeps a flat,
// append-only file log of every save so payloads can later be found again by
// name, wildcard pattern or identifier.
//
// Payloads:
//
//   - **Table**: rows of cells under named columns, with an optional index.
//   - **Series**: a single named column with an optional index.
//   - **Book**: an ordered mapping of names to tables, series or nested books.
//   - **Chart**: a rendered figure such as a gonum *plot.Plot.
//
// Formats are csv, xlsx, pickle (a gob stream stored under the .p extension,
// the only format that keeps the index and cell types), png and svg.
//
// The file log holds one "identifier,timestamp,full_path" line per save. It is
// not locked: concurrent writers from several processes may interleave.
//
// Usage:
//
//	h, err := datahandler.New(
//		datahandler.WithFileLog("file_log.log"),
//		datahandler.WithLogger(logger),
//	)
//
//	// Save a table
//	t := datahandler.NewTable([]string{"A", "B"}, []any{1, 4}, []any{2, 5})
//	entry, err := h.Save(ctx, t, "data", datahandler.CSV, "out")
//
//	// Load the latest file named like "data"
//	p, err := h.LoadOne(ctx, datahandler.Query{Name: "data"})
package datahandler

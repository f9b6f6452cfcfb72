package export

// Table is a finished output table ready for any sink
type Table struct {
	Name    string   // output name without extension, e.g. Dim_Tiempo
	Columns []string // output column order
	Types   []string // SQLite column types, parallel to Columns
	Indexes []string // columns indexed in the SQLite sink
	Rows    [][]string
}

package star

import "github.com/denuncias-dw/internal/normalize"

// RowKeys carries one cleaned row's dimension keys and its measure
type RowKeys struct {
	Time     TimeKey
	Offense  OffenseKey
	Location LocationKey
	CaseType CaseTypeKey
	Quantity int
}

// FileTables is the output of building a single file: dimension rows
// deduplicated within the file (identifiers local to this invocation,
// starting at 1) plus the ordered per-row keys needed to assemble facts.
type FileTables struct {
	Time     []TimeRow
	Offense  []OffenseRow
	Location []LocationRow
	CaseType []CaseTypeRow
	Rows     []RowKeys
}

// BuildFile deduplicates one file's cleaned rows into local dimension
// tables, preserving first-appearance order. The local identifiers are
// superseded by the global registry when the result is folded.
func BuildFile(records []normalize.Record) FileTables {
	ft := FileTables{Rows: make([]RowKeys, 0, len(records))}

	timeReg := NewRegistry[TimeKey]()
	offenseReg := NewRegistry[OffenseKey]()
	locationReg := NewRegistry[LocationKey]()
	caseTypeReg := NewRegistry[CaseTypeKey]()

	for _, rec := range records {
		tk := TimeKeyOf(rec)
		fk := OffenseKeyOf(rec)
		lk := LocationKeyOf(rec)
		ck := CaseTypeKeyOf(rec)

		if id, created := timeReg.ResolveOrRegister(tk); created {
			ft.Time = append(ft.Time, TimeRow{ID: id, TimeKey: tk})
		}
		if id, created := offenseReg.ResolveOrRegister(fk); created {
			ft.Offense = append(ft.Offense, OffenseRow{ID: id, OffenseKey: fk})
		}
		if id, created := locationReg.ResolveOrRegister(lk); created {
			ft.Location = append(ft.Location, LocationRow{ID: id, LocationKey: lk})
		}
		if id, created := caseTypeReg.ResolveOrRegister(ck); created {
			ft.CaseType = append(ft.CaseType, CaseTypeRow{ID: id, CaseTypeKey: ck})
		}

		ft.Rows = append(ft.Rows, RowKeys{
			Time:     tk,
			Offense:  fk,
			Location: lk,
			CaseType: ck,
			Quantity: rec.Quantity,
		})
	}

	return ft
}

package star

// Star accumulates the global dimensional model across files. Keys
// register in visitation order, so folding the same ordered inputs
// always reproduces the same identifier assignments.
type Star struct {
	time     *Registry[TimeKey]
	offense  *Registry[OffenseKey]
	location *Registry[LocationKey]
	caseType *Registry[CaseTypeKey]

	Tables Tables
}

// NewStar creates an empty global model
func NewStar() *Star {
	return &Star{
		time:     NewRegistry[TimeKey](),
		offense:  NewRegistry[OffenseKey](),
		location: NewRegistry[LocationKey](),
		caseType: NewRegistry[CaseTypeKey](),
	}
}

// FoldStats reports what one file contributed to the global model
type FoldStats struct {
	NewTime     int
	NewOffense  int
	NewLocation int
	NewCaseType int
	Facts       int
}

// Fold merges one file's local tables into the global model. Dimension
// keys register in their local first-appearance order, then every row
// becomes exactly one fact referencing global identifiers; the fact
// counter runs across the whole run, never per file.
func (s *Star) Fold(ft FileTables) FoldStats {
	var stats FoldStats

	for _, row := range ft.Time {
		if _, created := s.resolveTime(row.TimeKey); created {
			stats.NewTime++
		}
	}
	for _, row := range ft.Offense {
		if _, created := s.resolveOffense(row.OffenseKey); created {
			stats.NewOffense++
		}
	}
	for _, row := range ft.Location {
		if _, created := s.resolveLocation(row.LocationKey); created {
			stats.NewLocation++
		}
	}
	for _, row := range ft.CaseType {
		if _, created := s.resolveCaseType(row.CaseTypeKey); created {
			stats.NewCaseType++
		}
	}

	for _, rk := range ft.Rows {
		timeID, _ := s.resolveTime(rk.Time)
		offenseID, _ := s.resolveOffense(rk.Offense)
		locationID, _ := s.resolveLocation(rk.Location)
		caseTypeID, _ := s.resolveCaseType(rk.CaseType)

		s.Tables.Facts = append(s.Tables.Facts, FactRow{
			ID:         len(s.Tables.Facts) + 1,
			TimeID:     timeID,
			OffenseID:  offenseID,
			LocationID: locationID,
			CaseTypeID: caseTypeID,
			Quantity:   rk.Quantity,
		})
		stats.Facts++
	}

	return stats
}

// resolve helpers append the dimension row whenever a key is new, so a
// resolved identifier always has a backing table entry.

func (s *Star) resolveTime(k TimeKey) (int, bool) {
	id, created := s.time.ResolveOrRegister(k)
	if created {
		s.Tables.Time = append(s.Tables.Time, TimeRow{ID: id, TimeKey: k})
	}
	return id, created
}

func (s *Star) resolveOffense(k OffenseKey) (int, bool) {
	id, created := s.offense.ResolveOrRegister(k)
	if created {
		s.Tables.Offense = append(s.Tables.Offense, OffenseRow{ID: id, OffenseKey: k})
	}
	return id, created
}

func (s *Star) resolveLocation(k LocationKey) (int, bool) {
	id, created := s.location.ResolveOrRegister(k)
	if created {
		s.Tables.Location = append(s.Tables.Location, LocationRow{ID: id, LocationKey: k})
	}
	return id, created
}

func (s *Star) resolveCaseType(k CaseTypeKey) (int, bool) {
	id, created := s.caseType.ResolveOrRegister(k)
	if created {
		s.Tables.CaseType = append(s.Tables.CaseType, CaseTypeRow{ID: id, CaseTypeKey: k})
	}
	return id, created
}

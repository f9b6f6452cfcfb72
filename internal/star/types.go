package star

import "github.com/denuncias-dw/internal/normalize"

// TimeKey is the Time dimension's natural key
type TimeKey struct {
	DownloadDate string
	Year         int
	Period       string
	CutoffDate   string
}

// OffenseKey is the Offense dimension's natural key
type OffenseKey struct {
	Generic     string
	SubGeneric  string
	Article     string
	ArticleDesc string
}

// LocationKey is the Location dimension's natural key.
// The cleaned location code is part of the key: identical names under
// differing codes are distinct locations.
type LocationKey struct {
	LocationCode   string
	DistrictOffice string
	Department     string
	Province       string
	District       string
}

// CaseTypeKey is the CaseType dimension's natural key
type CaseTypeKey struct {
	CaseType  string
	Specialty string
}

// TimeKeyOf extracts the Time key from a cleaned record
func TimeKeyOf(r normalize.Record) TimeKey {
	return TimeKey{
		DownloadDate: r.DownloadDate,
		Year:         r.Year,
		Period:       r.Period,
		CutoffDate:   r.CutoffDate,
	}
}

// OffenseKeyOf extracts the Offense key from a cleaned record
func OffenseKeyOf(r normalize.Record) OffenseKey {
	return OffenseKey{
		Generic:     r.Generic,
		SubGeneric:  r.SubGeneric,
		Article:     r.Article,
		ArticleDesc: r.ArticleDesc,
	}
}

// LocationKeyOf extracts the Location key from a cleaned record
func LocationKeyOf(r normalize.Record) LocationKey {
	return LocationKey{
		LocationCode:   r.LocationCode,
		DistrictOffice: r.DistrictOffice,
		Department:     r.Department,
		Province:       r.Province,
		District:       r.District,
	}
}

// CaseTypeKeyOf extracts the CaseType key from a cleaned record
func CaseTypeKeyOf(r normalize.Record) CaseTypeKey {
	return CaseTypeKey{
		CaseType:  r.CaseType,
		Specialty: r.Specialty,
	}
}

// TimeRow is one Time dimension entry
type TimeRow struct {
	ID int
	TimeKey
}

// OffenseRow is one Offense dimension entry
type OffenseRow struct {
	ID int
	OffenseKey
}

// LocationRow is one Location dimension entry
type LocationRow struct {
	ID int
	LocationKey
}

// CaseTypeRow is one CaseType dimension entry
type CaseTypeRow struct {
	ID int
	CaseTypeKey
}

// FactRow is one complaint fact referencing the four dimensions
type FactRow struct {
	ID         int
	TimeID     int
	OffenseID  int
	LocationID int
	CaseTypeID int
	Quantity   int
}

// Tables holds the accumulated dimensional model
type Tables struct {
	Time     []TimeRow
	Offense  []OffenseRow
	Location []LocationRow
	CaseType []CaseTypeRow
	Facts    []FactRow
}

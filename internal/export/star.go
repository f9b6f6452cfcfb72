package export

import (
	"strconv"

	"github.com/denuncias-dw/internal/star"
)

// StarTables shapes the dimensional model into output tables. Row order
// follows surrogate ID order, so repeated runs over the same input
// produce identical files.
func StarTables(t star.Tables) []Table {
	tiempo := Table{
		Name:    "Dim_Tiempo",
		Columns: []string{"id_tiempo", "Fecha_descarga", "anio_denuncia", "periodo_denuncia", "fecha_corte"},
		Types:   []string{"INTEGER", "TEXT", "INTEGER", "TEXT", "TEXT"},
		Indexes: []string{"id_tiempo"},
		Rows:    make([][]string, 0, len(t.Time)),
	}
	for _, row := range t.Time {
		tiempo.Rows = append(tiempo.Rows, []string{
			strconv.Itoa(row.ID), row.DownloadDate, strconv.Itoa(row.Year), row.Period, row.CutoffDate,
		})
	}

	delito := Table{
		Name:    "Dim_Delito",
		Columns: []string{"id_delito", "generico", "subgenerico", "articulo", "des_articulo"},
		Types:   []string{"INTEGER", "TEXT", "TEXT", "TEXT", "TEXT"},
		Indexes: []string{"id_delito"},
		Rows:    make([][]string, 0, len(t.Offense)),
	}
	for _, row := range t.Offense {
		delito.Rows = append(delito.Rows, []string{
			strconv.Itoa(row.ID), row.Generic, row.SubGeneric, row.Article, row.ArticleDesc,
		})
	}

	ubicacion := Table{
		Name:    "Dim_Ubicacion",
		Columns: []string{"id_ubicacion", "ubigeo_pjfs", "distrito_fiscal", "dpto_pjfs", "prov_pjfs", "dist_pjfs"},
		Types:   []string{"INTEGER", "TEXT", "TEXT", "TEXT", "TEXT", "TEXT"},
		Indexes: []string{"id_ubicacion", "ubigeo_pjfs"},
		Rows:    make([][]string, 0, len(t.Location)),
	}
	for _, row := range t.Location {
		ubicacion.Rows = append(ubicacion.Rows, []string{
			strconv.Itoa(row.ID), row.LocationCode, row.DistrictOffice, row.Department, row.Province, row.District,
		})
	}

	tipoCaso := Table{
		Name:    "Dim_TipoCaso",
		Columns: []string{"id_tipo_caso", "tipo_caso", "especialidad"},
		Types:   []string{"INTEGER", "TEXT", "TEXT"},
		Indexes: []string{"id_tipo_caso"},
		Rows:    make([][]string, 0, len(t.CaseType)),
	}
	for _, row := range t.CaseType {
		tipoCaso.Rows = append(tipoCaso.Rows, []string{
			strconv.Itoa(row.ID), row.CaseType, row.Specialty,
		})
	}

	facts := Table{
		Name:    "Fact_Denuncias",
		Columns: []string{"id_denuncia", "id_tiempo", "id_delito", "id_ubicacion", "id_tipo_caso", "cantidad"},
		Types:   []string{"INTEGER", "INTEGER", "INTEGER", "INTEGER", "INTEGER", "INTEGER"},
		Indexes: []string{"id_tiempo", "id_delito", "id_ubicacion", "id_tipo_caso"},
		Rows:    make([][]string, 0, len(t.Facts)),
	}
	for _, row := range t.Facts {
		facts.Rows = append(facts.Rows, []string{
			strconv.Itoa(row.ID), strconv.Itoa(row.TimeID), strconv.Itoa(row.OffenseID),
			strconv.Itoa(row.LocationID), strconv.Itoa(row.CaseTypeID), strconv.Itoa(row.Quantity),
		})
	}

	return []Table{tiempo, delito, ubicacion, tipoCaso, facts}
}

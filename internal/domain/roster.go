package domain

// Region регион, к которому привязаны оценщики
type Region struct {
	ID        int64
	Name      string
	SortOrder int
}

// Estimator оценщик, выезжающий на замеры
type Estimator struct {
	ID        int64
	Name      string
	Color     string
	RegionID  *int64
	Active    bool
	SortOrder int
}

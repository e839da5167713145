package domain

// DefaultMinYear é o primeiro ano com dados na implantação de referência
const DefaultMinYear = 2019

// YearNavigation descreve os controles "Previous year"/"Next year"
type YearNavigation struct {
	Year        int  `json:"year"`
	MinYear     int  `json:"min_year"`
	CurrentYear int  `json:"current_year"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewYearNavigation habilita a navegação apenas dentro de [minYear, currentYear]
func NewYearNavigation(year, minYear, currentYear int) YearNavigation {
	return YearNavigation{
		Year:        year,
		MinYear:     minYear,
		CurrentYear: currentYear,
		HasPrevious: year > minYear,
		HasNext:     year < currentYear,
	}
}

// InRange indica se o ano pode ser consultado
func (n YearNavigation) InRange() bool {
	return n.Year >= n.MinYear && n.Year <= n.CurrentYear
}

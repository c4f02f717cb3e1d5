package emissions

import (
	"fmt"
	"sort"
	"strings"
)

// A Country is a register of aircraft (by tail number prefix), and a population whose
// yearly emissions we compare against.
type Country struct {
	Name       string
	Plural     string // "Danes"
	Possessive string // "Danish"
	TailPrefix string // "OY-"

	TonsPerYear float64 // CO2 per person per year
	Source      string
	SourceDate  string
}

var countries = map[string]Country{
	"denmark": {
		Name: "Denmark", Plural: "Danes", Possessive: "Danish", TailPrefix: "OY-",
		TonsPerYear: 5.1, SourceDate: "2023-10-08",
		Source: "A dane emitted 5.1 t CO2/person/year in 2019 according to " +
			"[world bank data](https://ourworldindata.org/co2/country/denmark).",
	},
	"portugal": {
		Name: "Portugal", Plural: "Portuguese", Possessive: "Portuguese", TailPrefix: "CS-",
		TonsPerYear: 4.1, SourceDate: "2024-01-23",
		Source: "A portuguese emitted 4.1 t CO2/person/year in 2022 according to " +
			"[world bank data](https://ourworldindata.org/co2/country/portugal).",
	},
	"spain": {
		Name: "Spain", Plural: "Spanish", Possessive: "Spanish", TailPrefix: "EC-",
		TonsPerYear: 5.2, SourceDate: "2024-01-23",
		Source: "A spanish emitted 5.2 t CO2/person/year in 2022 according to " +
			"[world bank data](https://ourworldindata.org/co2/country/spain).",
	},
	"germany": {
		Name: "Germany", Plural: "Germans", Possessive: "German", TailPrefix: "D-",
		TonsPerYear: 8.0, SourceDate: "2024-01-23",
		Source: "A german emitted 8.0 t CO2/person/year in 2022 according to " +
			"[world bank data](https://ourworldindata.org/co2/country/germany).",
	},
}

func Denmark() Country { return countries["denmark"] }

// ForCountry looks up a country by name, case insensitively.
func ForCountry(name string) (Country, error) {
	if c, exists := countries[strings.ToLower(strings.TrimSpace(name))]; exists {
		return c, nil
	}
	return Country{}, fmt.Errorf("country %q not known (have: %s)", name,
		strings.Join(CountryNames(), ", "))
}

func CountryNames() []string {
	names := []string{}
	for _, c := range countries {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

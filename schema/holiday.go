package schema

import (
	"time"

	"github.com/arloliu/registrar/store"
	"github.com/arloliu/registrar/table"
)

// Holiday is a dated entry under an owner: a country for national holidays,
// a school for custom ones. The date is a clustering column, so changing it
// is a delete-then-insert owned by the environment manager.
type Holiday struct {
	OwnerID int
	Date    time.Time
	Name    string
}

// HolidayKey is the full primary key of a holiday row.
type HolidayKey struct {
	OwnerID int
	Date    time.Time
}

// NationalHolidayDefinition returns the national_holidays table definition,
// keyed by country id.
func NationalHolidayDefinition() table.Definition[Holiday, HolidayKey] {
	return holidayDefinition("national_holidays")
}

// CustomHolidayDefinition returns the custom_holidays table definition,
// keyed by school id.
func CustomHolidayDefinition() table.Definition[Holiday, HolidayKey] {
	return holidayDefinition("custom_holidays")
}

func holidayDefinition(name string) table.Definition[Holiday, HolidayKey] {
	return table.Definition[Holiday, HolidayKey]{
		Name:             name,
		Columns:          []string{"owner_id", "date", "name"},
		KeyColumns:       []string{"owner_id", "date"},
		PartitionColumns: []string{"owner_id"},
		Schema:           "(owner_id int, date timestamp, name text, PRIMARY KEY (owner_id, date))",
		Bind:             func(e *Holiday) []any { return []any{e.OwnerID, e.Date, e.Name} },
		BindKey:          func(k HolidayKey) []any { return []any{k.OwnerID, k.Date} },
		Scan: func(row store.Row, e *Holiday) error {
			return row.Scan(&e.OwnerID, &e.Date, &e.Name)
		},
	}
}

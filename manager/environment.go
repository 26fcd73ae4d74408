package manager

import (
	"context"
	"time"

	"github.com/arloliu/registrar/schema"
	"github.com/arloliu/registrar/types"
)

// EnvironmentManager owns countries, schools, and their holidays: the
// reference data every other aggregate hangs off.
type EnvironmentManager struct {
	countries EntityStore[schema.Country, int]
	schools   EntityStore[schema.School, int]
	national  EntityStore[schema.Holiday, schema.HolidayKey]
	custom    EntityStore[schema.Holiday, schema.HolidayKey]
	logger    types.Logger
}

// NewEnvironmentManager wires the environment aggregate.
func NewEnvironmentManager(
	countries EntityStore[schema.Country, int],
	schools EntityStore[schema.School, int],
	national EntityStore[schema.Holiday, schema.HolidayKey],
	custom EntityStore[schema.Holiday, schema.HolidayKey],
	logger types.Logger,
) *EnvironmentManager {
	return &EnvironmentManager{
		countries: countries,
		schools:   schools,
		national:  national,
		custom:    custom,
		logger:    logger,
	}
}

// nextFreeID returns the smallest unused positive integer.
//
// Linear scan over all existing ids, by design: two concurrent creators can
// compute the same id, and the conditional insert lets exactly one win.
// The loser sees NOT_APPLIED and the manager surfaces a retryable 409.
func nextFreeID(ids map[int]bool) int {
	id := 1
	for ids[id] {
		id++
	}

	return id
}

// CreateCountryInput is the validated input for CreateCountry.
type CreateCountryInput struct {
	Name string `validate:"required"`
	Code string `validate:"required,len=2,uppercase"`
}

// CreateCountry validates uniqueness of the name, assigns the smallest free
// id, and inserts.
func (m *EnvironmentManager) CreateCountry(ctx context.Context, in CreateCountryInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	existing, res := m.countries.List(ctx)
	if !res.IsOK() {
		return internal(m.logger, "create country", res)
	}

	ids := make(map[int]bool, len(existing))
	for i := range existing {
		if existing[i].Name == in.Name {
			return badRequest("country name already exists")
		}
		ids[existing[i].ID] = true
	}

	country := schema.Country{ID: nextFreeID(ids), Name: in.Name, Code: in.Code}
	res = m.countries.Insert(ctx, &country)
	switch {
	case res.IsNotApplied():
		return conflict("country id was taken concurrently, retry")
	case !res.IsOK():
		return internal(m.logger, "create country", res)
	}

	return created(country)
}

// GetCountry reads one country by id.
func (m *EnvironmentManager) GetCountry(ctx context.Context, id int) Response {
	country, res := m.countries.Get(ctx, id)
	switch {
	case res.IsNotFound():
		return notFound("country not found")
	case !res.IsOK():
		return internal(m.logger, "get country", res)
	}

	return ok(country)
}

// ListCountries lists every country.
func (m *EnvironmentManager) ListCountries(ctx context.Context) Response {
	countries, res := m.countries.List(ctx)
	if !res.IsOK() {
		return internal(m.logger, "list countries", res)
	}

	return ok(countries)
}

// UpdateCountry rewrites a country's attributes in place.
func (m *EnvironmentManager) UpdateCountry(ctx context.Context, id int, in CreateCountryInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	country := schema.Country{ID: id, Name: in.Name, Code: in.Code}
	res := m.countries.Update(ctx, &country)
	switch {
	case res.IsNotApplied():
		return notFound("country not found")
	case !res.IsOK():
		return internal(m.logger, "update country", res)
	}

	return ok(country)
}

// DeleteCountry removes a country and cascades: every school referencing it
// is deleted through the school cascade, then the country's national
// holidays, then the country itself.
//
// The cascade is best-effort per child. The first child failure aborts the
// whole operation and already-deleted children stay deleted; there is no
// rollback.
func (m *EnvironmentManager) DeleteCountry(ctx context.Context, id int) Response {
	schools, res := m.schools.List(ctx)
	if !res.IsOK() {
		return internal(m.logger, "delete country", res)
	}

	for i := range schools {
		if schools[i].CountryID != id {
			continue
		}
		if resp := m.DeleteSchool(ctx, schools[i].ID); resp.Status != StatusOK {
			m.logger.Errorw("country cascade aborted",
				"country_id", id,
				"school_id", schools[i].ID,
			)

			return resp
		}
	}

	if res := m.national.DeleteAll(ctx, id); !res.IsOK() {
		return internal(m.logger, "delete country holidays", res)
	}

	res = m.countries.Delete(ctx, id)
	switch {
	case res.IsNotApplied():
		return notFound("country not found")
	case !res.IsOK():
		return internal(m.logger, "delete country", res)
	}

	return ok(nil)
}

// CreateSchoolInput is the validated input for CreateSchool.
type CreateSchoolInput struct {
	Name      string `validate:"required"`
	CountryID int    `validate:"required,gt=0"`
}

// CreateSchool validates the referenced country and name uniqueness,
// assigns the smallest free id, and inserts.
func (m *EnvironmentManager) CreateSchool(ctx context.Context, in CreateSchoolInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	_, res := m.countries.Get(ctx, in.CountryID)
	switch {
	case res.IsNotFound():
		return notFound("country not found")
	case !res.IsOK():
		return internal(m.logger, "create school", res)
	}

	existing, res := m.schools.List(ctx)
	if !res.IsOK() {
		return internal(m.logger, "create school", res)
	}

	ids := make(map[int]bool, len(existing))
	for i := range existing {
		if existing[i].Name == in.Name {
			return badRequest("school name already exists")
		}
		ids[existing[i].ID] = true
	}

	school := schema.School{ID: nextFreeID(ids), Name: in.Name, CountryID: in.CountryID}
	res = m.schools.Insert(ctx, &school)
	switch {
	case res.IsNotApplied():
		return conflict("school id was taken concurrently, retry")
	case !res.IsOK():
		return internal(m.logger, "create school", res)
	}

	return created(school)
}

// GetSchool reads one school by id.
func (m *EnvironmentManager) GetSchool(ctx context.Context, id int) Response {
	school, res := m.schools.Get(ctx, id)
	switch {
	case res.IsNotFound():
		return notFound("school not found")
	case !res.IsOK():
		return internal(m.logger, "get school", res)
	}

	return ok(school)
}

// ListSchools lists every school.
func (m *EnvironmentManager) ListSchools(ctx context.Context) Response {
	schools, res := m.schools.List(ctx)
	if !res.IsOK() {
		return internal(m.logger, "list schools", res)
	}

	return ok(schools)
}

// UpdateSchool rewrites a school's attributes in place.
func (m *EnvironmentManager) UpdateSchool(ctx context.Context, id int, in CreateSchoolInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	_, res := m.countries.Get(ctx, in.CountryID)
	switch {
	case res.IsNotFound():
		return notFound("country not found")
	case !res.IsOK():
		return internal(m.logger, "update school", res)
	}

	school := schema.School{ID: id, Name: in.Name, CountryID: in.CountryID}
	res = m.schools.Update(ctx, &school)
	switch {
	case res.IsNotApplied():
		return notFound("school not found")
	case !res.IsOK():
		return internal(m.logger, "update school", res)
	}

	return ok(school)
}

// DeleteSchool removes a school after deleting its custom holidays.
func (m *EnvironmentManager) DeleteSchool(ctx context.Context, id int) Response {
	if res := m.custom.DeleteAll(ctx, id); !res.IsOK() {
		return internal(m.logger, "delete school holidays", res)
	}

	res := m.schools.Delete(ctx, id)
	switch {
	case res.IsNotApplied():
		return notFound("school not found")
	case !res.IsOK():
		return internal(m.logger, "delete school", res)
	}

	return ok(nil)
}

// HolidayInput is the validated input for holiday creation and update.
type HolidayInput struct {
	Date time.Time `validate:"required"`
	Name string    `validate:"required"`
}

// CreateNationalHoliday adds a holiday under a country.
func (m *EnvironmentManager) CreateNationalHoliday(ctx context.Context, countryID int, in HolidayInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	_, res := m.countries.Get(ctx, countryID)
	switch {
	case res.IsNotFound():
		return notFound("country not found")
	case !res.IsOK():
		return internal(m.logger, "create national holiday", res)
	}

	return m.createHoliday(ctx, m.national, countryID, in, "create national holiday")
}

// CreateCustomHoliday adds a holiday under a school.
func (m *EnvironmentManager) CreateCustomHoliday(ctx context.Context, schoolID int, in HolidayInput) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	_, res := m.schools.Get(ctx, schoolID)
	switch {
	case res.IsNotFound():
		return notFound("school not found")
	case !res.IsOK():
		return internal(m.logger, "create custom holiday", res)
	}

	return m.createHoliday(ctx, m.custom, schoolID, in, "create custom holiday")
}

func (m *EnvironmentManager) createHoliday(
	ctx context.Context,
	store EntityStore[schema.Holiday, schema.HolidayKey],
	ownerID int,
	in HolidayInput,
	op string,
) Response {
	holiday := schema.Holiday{OwnerID: ownerID, Date: in.Date, Name: in.Name}
	res := store.Insert(ctx, &holiday)
	switch {
	case res.IsNotApplied():
		return conflict("holiday already exists on that date")
	case !res.IsOK():
		return internal(m.logger, op, res)
	}

	return created(holiday)
}

// ListNationalHolidays lists a country's holidays.
//
// An empty listing here is 404, not an empty 200. This deviates from the
// empty-listing convention everywhere else and is kept deliberately because
// clients depend on it; see DESIGN.md.
func (m *EnvironmentManager) ListNationalHolidays(ctx context.Context, countryID int) Response {
	holidays, res := m.national.List(ctx, countryID)
	if !res.IsOK() {
		return internal(m.logger, "list national holidays", res)
	}
	if len(holidays) == 0 {
		return notFound("no national holidays for country")
	}

	return ok(holidays)
}

// ListCustomHolidays lists a school's holidays; an empty list is OK.
func (m *EnvironmentManager) ListCustomHolidays(ctx context.Context, schoolID int) Response {
	holidays, res := m.custom.List(ctx, schoolID)
	if !res.IsOK() {
		return internal(m.logger, "list custom holidays", res)
	}

	return ok(holidays)
}

// UpdateNationalHoliday moves or renames a country holiday.
func (m *EnvironmentManager) UpdateNationalHoliday(ctx context.Context, countryID int, oldDate time.Time, in HolidayInput) Response {
	return m.updateHoliday(ctx, m.national, countryID, oldDate, in, "update national holiday")
}

// UpdateCustomHoliday moves or renames a school holiday.
func (m *EnvironmentManager) UpdateCustomHoliday(ctx context.Context, schoolID int, oldDate time.Time, in HolidayInput) Response {
	return m.updateHoliday(ctx, m.custom, schoolID, oldDate, in, "update custom holiday")
}

// updateHoliday is the key-changing update: the date is a clustering
// column, so the old row is deleted and a new one inserted. If the delete
// succeeds and the insert fails, the holiday is gone; that data loss is
// logged prominently and surfaced, never silently compensated.
func (m *EnvironmentManager) updateHoliday(
	ctx context.Context,
	store EntityStore[schema.Holiday, schema.HolidayKey],
	ownerID int,
	oldDate time.Time,
	in HolidayInput,
	op string,
) Response {
	if err := validate.Struct(in); err != nil {
		return invalidInput(err)
	}

	res := store.Delete(ctx, schema.HolidayKey{OwnerID: ownerID, Date: oldDate})
	switch {
	case res.IsNotApplied():
		return notFound("holiday not found")
	case !res.IsOK():
		return internal(m.logger, op, res)
	}

	holiday := schema.Holiday{OwnerID: ownerID, Date: in.Date, Name: in.Name}
	res = store.Insert(ctx, &holiday)
	if !res.IsOK() {
		m.logger.Errorw("holiday lost: old row deleted but replacement insert failed",
			"owner_id", ownerID,
			"old_date", oldDate,
			"new_date", in.Date,
			"result", res.String(),
		)
		if res.IsNotApplied() {
			return conflict("holiday already exists on the new date; the old entry was removed")
		}

		return Response{Status: StatusInternal, Body: ErrorBody{Error: "internal error"}}
	}

	return ok(holiday)
}

// DeleteNationalHoliday removes one country holiday by date.
func (m *EnvironmentManager) DeleteNationalHoliday(ctx context.Context, countryID int, date time.Time) Response {
	return m.deleteHoliday(ctx, m.national, countryID, date, "delete national holiday")
}

// DeleteCustomHoliday removes one school holiday by date.
func (m *EnvironmentManager) DeleteCustomHoliday(ctx context.Context, schoolID int, date time.Time) Response {
	return m.deleteHoliday(ctx, m.custom, schoolID, date, "delete custom holiday")
}

func (m *EnvironmentManager) deleteHoliday(
	ctx context.Context,
	store EntityStore[schema.Holiday, schema.HolidayKey],
	ownerID int,
	date time.Time,
	op string,
) Response {
	res := store.Delete(ctx, schema.HolidayKey{OwnerID: ownerID, Date: date})
	switch {
	case res.IsNotApplied():
		return notFound("holiday not found")
	case !res.IsOK():
		return internal(m.logger, op, res)
	}

	return ok(nil)
}

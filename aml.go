package idanalyzer

import (
	"context"
	"net/url"
	"unicode/utf8"
)

// AMLAPI searches sanction lists and politically exposed persons.
type AMLAPI struct {
	client

	database string
	entity   EntityType
}

// NewAMLAPI creates an AML API client.
//
// For "US" and "EU" requests go to the regional host's "aml" path. A custom
// endpoint is used exactly as given.
func NewAMLAPI(apiKey, region string, opts ...Option) (*AMLAPI, error) {
	c, err := newClient(apiKey, region, "aml", opts)
	if err != nil {
		return nil, err
	}
	return &AMLAPI{client: c}, nil
}

// SetAMLDatabase limits searches to comma separated database codes such as
// "un_sc,us_ofac". Empty searches every database; DefaultAMLDatabases lists
// them all.
func (a *AMLAPI) SetAMLDatabase(databases string) {
	a.database = databases
}

// SetEntityType returns only people or only legal entities. EntityAny
// returns both.
func (a *AMLAPI) SetEntityType(entity EntityType) error {
	switch entity {
	case EntityAny, EntityPerson, EntityLegalEntity:
		a.entity = entity
		return nil
	default:
		return invalidArgument("entity type should be either empty, 'person' or 'legalentity'")
	}
}

// SearchByName searches by a person's or company's name or alias, at least
// 3 characters. country (ISO alpha-2) and dob (YYYY, YYYY-MM or YYYY-MM-DD)
// narrow the search and may be empty.
func (a *AMLAPI) SearchByName(ctx context.Context, name, country, dob string) (Response, error) {
	if utf8.RuneCountInString(name) < 3 {
		return nil, invalidArgument("name should contain at least 3 characters")
	}
	return a.search(ctx, "name", name, country, dob)
}

// SearchByIDNumber searches by a passport, ID card or other document number
// of at least 5 characters.
func (a *AMLAPI) SearchByIDNumber(ctx context.Context, documentNumber, country, dob string) (Response, error) {
	if utf8.RuneCountInString(documentNumber) < 5 {
		return nil, invalidArgument("document number should contain at least 5 characters")
	}
	return a.search(ctx, "documentnumber", documentNumber, country, dob)
}

func (a *AMLAPI) search(ctx context.Context, field, value, country, dob string) (Response, error) {
	if dob != "" && !amlDOBPattern.MatchString(dob) {
		return nil, invalidArgument("invalid birthday format (YYYY, YYYY-MM or YYYY-MM-DD)")
	}

	form := url.Values{}
	form.Set(field, value)
	form.Set("country", country)
	form.Set("dob", dob)
	form.Set("database", a.database)
	form.Set("entity", string(a.entity))
	return a.post(ctx, "", form)
}

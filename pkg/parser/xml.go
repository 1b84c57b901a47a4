package parser

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Ramsey-B/fern/pkg/fieldmap"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/taxonomy"
)

// Agency is one fully parsed <Agency> subtree from an iCarol export: the
// organization plus its sites, each with the services offered there. Derived
// ids are left empty; the reconciler assigns them.
type Agency struct {
	Organization models.Organization
	Locations    []AgencyLocation
}

// AgencyLocation is one <Site> under an agency.
type AgencyLocation struct {
	Location  models.Location
	Addresses [2]*models.Address
	Phones    []*models.PhoneNumber
	Services  []AgencyService
}

// AgencyService is one <SiteService> under a site.
type AgencyService struct {
	Service models.Service
	Terms   []models.TaxonomyTerm
}

type agencyXML struct {
	Key         string     `xml:"Key"`
	Name        string     `xml:"Name"`
	Description string     `xml:"AgencyDescription"`
	Alternate   string     `xml:"AlternateName"`
	URL         nestedAddr `xml:"URL"`
	Email       nestedAddr `xml:"Email"`
	Sites       []siteXML  `xml:"Site"`
}

type nestedAddr struct {
	Address string `xml:"Address"`
}

type siteXML struct {
	Key             string           `xml:"Key"`
	Name            string           `xml:"Name"`
	Alternate       string           `xml:"AlternateName"`
	Description     string           `xml:"SiteDescription"`
	SpatialLocation spatialXML       `xml:"SpatialLocation"`
	MailingAddress  *addressXML      `xml:"MailingAddress"`
	PhysicalAddress *addressXML      `xml:"PhysicalAddress"`
	Phones          []phoneXML       `xml:"Phone"`
	Services        []siteServiceXML `xml:"SiteService"`
}

type spatialXML struct {
	Latitude  string `xml:"Latitude"`
	Longitude string `xml:"Longitude"`
}

type addressXML struct {
	Line1   string `xml:"Line1"`
	Line2   string `xml:"Line2"`
	Line3   string `xml:"Line3"`
	Line4   string `xml:"Line4"`
	City    string `xml:"City"`
	State   string `xml:"State"`
	ZipCode string `xml:"ZipCode"`
	Country string `xml:"Country"`
}

type phoneXML struct {
	Number string `xml:"PhoneNumber"`
	Type   string `xml:"Type"`
	Name   string `xml:"Name"`
}

type siteServiceXML struct {
	Key         string     `xml:"Key"`
	Name        string     `xml:"Name"`
	Alternate   string     `xml:"AlternateName"`
	Description string     `xml:"Description"`
	Email       nestedAddr `xml:"Email"`
	URL         nestedAddr `xml:"URL"`
	Taxonomies  []string   `xml:"Taxonomy"`
}

// ParseAgencies decodes a full <Source> document and converts every <Agency>
// it contains. A malformed document fails outright; per-agency semantic
// problems are the caller's to handle via the returned records.
func ParseAgencies(r io.Reader, vocabularyOverride string) ([]*Agency, error) {
	var source struct {
		Agencies []agencyXML `xml:"Agency"`
	}
	if err := xml.NewDecoder(r).Decode(&source); err != nil {
		return nil, errors.Wrap(err, "failed to decode source document")
	}

	agencies := make([]*Agency, 0, len(source.Agencies))
	for _, raw := range source.Agencies {
		agency, err := convertAgency(raw, vocabularyOverride)
		if err != nil {
			return nil, err
		}
		agencies = append(agencies, agency)
	}
	return agencies, nil
}

func convertAgency(raw agencyXML, vocabularyOverride string) (*Agency, error) {
	if raw.Key == "" {
		return nil, errors.Wrap(ErrMissingRecordID, "agency element has no key")
	}

	agency := &Agency{
		Organization: models.Organization{
			ID:            raw.Key,
			Name:          raw.Name,
			AlternateName: optional(raw.Alternate),
			Description:   optional(raw.Description),
			Email:         optional(raw.Email.Address),
			URL:           normalizeWebsite(raw.URL.Address),
		},
	}

	for _, site := range raw.Sites {
		converted, err := convertSite(site, raw.Key, vocabularyOverride)
		if err != nil {
			return nil, err
		}
		agency.Locations = append(agency.Locations, converted)
	}
	return agency, nil
}

func convertSite(site siteXML, organizationID, vocabularyOverride string) (AgencyLocation, error) {
	location := AgencyLocation{
		Location: models.Location{
			OrganizationID: organizationID,
			Name:           site.Name,
			AlternateName:  optional(site.Alternate),
			Description:    optional(site.Description),
			Latitude:       parseCoordinate(site.SpatialLocation.Latitude),
			Longitude:      parseCoordinate(site.SpatialLocation.Longitude),
		},
	}

	location.Addresses[fieldmap.MailingAddressSlot] = convertAddress(site.MailingAddress, models.PostalAddressType)
	location.Addresses[fieldmap.PhysicalAddressSlot] = convertAddress(site.PhysicalAddress, models.PhysicalAddressType)

	for _, phone := range site.Phones {
		if phone.Number == "" {
			continue
		}
		location.Phones = append(location.Phones, &models.PhoneNumber{
			Number:      phone.Number,
			Type:        optional(phone.Type),
			Description: optional(phone.Name),
		})
	}

	for _, svc := range site.Services {
		converted, err := convertService(svc, site.Key, organizationID, vocabularyOverride)
		if err != nil {
			return AgencyLocation{}, err
		}
		location.Services = append(location.Services, converted)
	}
	return location, nil
}

func convertService(svc siteServiceXML, siteKey, organizationID, vocabularyOverride string) (AgencyService, error) {
	if svc.Key == "" {
		return AgencyService{}, NewParseError(siteKey, "Key", errors.Wrap(ErrMissingRecordID, "site service element has no key"))
	}

	service := AgencyService{
		Service: models.Service{
			ID:             svc.Key,
			OrganizationID: organizationID,
			Name:           svc.Name,
			AlternateName:  optional(svc.Alternate),
			Description:    optional(svc.Description),
			Email:          optional(svc.Email.Address),
			URL:            normalizeWebsite(svc.URL.Address),
		},
	}
	for _, value := range svc.Taxonomies {
		service.Terms = append(service.Terms, taxonomy.Explode(value, false, vocabularyOverride)...)
	}
	return service, nil
}

// convertAddress rejects addresses without a first line. Partial address
// elements with only a city or country show up in real exports and are
// not usable.
func convertAddress(raw *addressXML, addressType models.AddressType) *models.Address {
	if raw == nil || raw.Line1 == "" {
		return nil
	}
	return &models.Address{
		Type:          addressType,
		Address1:      optional(raw.Line1),
		Address2:      optional(raw.Line2),
		Address3:      optional(raw.Line3),
		Address4:      optional(raw.Line4),
		City:          optional(raw.City),
		StateProvince: optional(raw.State),
		PostalCode:    optional(raw.ZipCode),
		Country:       optional(raw.Country),
	}
}

func parseCoordinate(value string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil
	}
	return &f
}

// normalizeWebsite defaults schemeless addresses to http. Exports mix bare
// hostnames and full URLs in the same field.
func normalizeWebsite(value string) *string {
	if value == "" {
		return nil
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		value = "http://" + value
	}
	return &value
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

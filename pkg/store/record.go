/*
Package store persists trademark records in an embedded bbolt database.

Records are keyed by application number and encoded with msgpack. Dates are
kept in their upstream YYYYMMDD string form throughout; the format sorts
lexically, which is all the search layer needs.
*/
package store

// Register status values seen in the KIPRIS dataset. The store reports the
// distinct set actually present; these are only seed values for tests and
// the mock fixtures.
const (
	StatusRegistered = "등록"
	StatusPending    = "출원"
	StatusRejected   = "거절"
	StatusExpired    = "실효"
)

// Trademark is a single trademark application record. JSON tags follow the
// KIPRIS export field names consumed by the bulk loader; msgpack tags are
// short keys for the stored encoding, like the wire types in pkg/server.
type Trademark struct {
	ApplicationNumber    string   `json:"applicationNumber" msgpack:"an"`
	ProductName          string   `json:"productName" msgpack:"pn"`
	ProductNameEng       string   `json:"productNameEng" msgpack:"pe"`
	ApplicationDate      string   `json:"applicationDate" msgpack:"ad"`
	RegisterStatus       string   `json:"registerStatus" msgpack:"rs"`
	PublicationNumber    string   `json:"publicationNumber" msgpack:"pub"`
	PublicationDate      string   `json:"publicationDate" msgpack:"pubd"`
	RegistrationNums     []string `json:"registrationNumber" msgpack:"rn"`
	RegistrationDates    []string `json:"registrationDate" msgpack:"rd"`
	RegistrationPubNum   string   `json:"registrationPubNumber" msgpack:"rpn"`
	RegistrationPubDate  string   `json:"registrationPubDate" msgpack:"rpd"`
	InternationalRegNums []string `json:"internationalRegNumbers" msgpack:"irn"`
	InternationalRegDate string   `json:"internationalRegDate" msgpack:"ird"`
	PriorityClaimNums    []string `json:"priorityClaimNumList" msgpack:"pcn"`
	PriorityClaimDates   []string `json:"priorityClaimDateList" msgpack:"pcd"`
	MainProductCodes     []string `json:"asignProductMainCodeList" msgpack:"mpc"`
	SubProductCodes      []string `json:"asignProductSubCodeList" msgpack:"spc"`
	ViennaCodes          []string `json:"viennaCodeList" msgpack:"vc"`
}

// DisplayName returns the field search ranking keys off: the Korean name,
// falling back to the English one.
func (t *Trademark) DisplayName() string {
	if t.ProductName != "" {
		return t.ProductName
	}
	return t.ProductNameEng
}

// DateByField returns the record's dates for a date filter field. The
// registration field is a list upstream, so every variant answers as a
// slice.
func (t *Trademark) DateByField(field string) []string {
	switch field {
	case DateFieldRegistration:
		return t.RegistrationDates
	case DateFieldPublication:
		if t.PublicationDate == "" {
			return nil
		}
		return []string{t.PublicationDate}
	default:
		if t.ApplicationDate == "" {
			return nil
		}
		return []string{t.ApplicationDate}
	}
}

// Date filter field selectors, matching the upstream API's date_type values.
const (
	DateFieldApplication  = "applicationDate"
	DateFieldRegistration = "registrationDate"
	DateFieldPublication  = "publicationDate"
)

/*
Package server implements msgpack IPC for trademark search services.

The server reads binary msgpack messages from stdin and writes responses
to stdout, one request/response pair at a time. Each message carries an ID
the client uses to correlate responses, and an action selecting the
operation; a missing action means search.

Search requests:

	{"id": "req_001", "q": "스타벅스", "l": 10, "o": 0}
	{"id": "req_002", "q": "ㅅㅌㅂㅅ", "st": "등록", "pc": "43"}

Responses carry the page, the pre-paging total and timing info:

	{"id": "req_001", "r": [...], "tot": 2, "c": 2, "t": 145}

Detail and metadata requests:

	{"id": "d_01", "action": "detail", "an": "40-2021-0001"}
	{"id": "m_01", "action": "statuses"}
	{"id": "m_02", "action": "product_codes"}
	{"id": "i_01", "action": "info"}

Config updates adjust server limits and the fuzzy threshold at runtime and
persist to the TOML file:

	{"id": "c_01", "action": "config", "max_limit": 32, "threshold": 0.5}

Errors come back on the request's ID with a code and message.
*/
package server

// Request is the single inbound message envelope. Action selects the
// operation; the zero value means search.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`

	// Search fields
	Query       string `msgpack:"q,omitempty"`
	Status      string `msgpack:"st,omitempty"`
	ProductCode string `msgpack:"pc,omitempty"`
	FromDate    string `msgpack:"fd,omitempty"`
	ToDate      string `msgpack:"td,omitempty"`
	DateField   string `msgpack:"df,omitempty"`
	Limit       int    `msgpack:"l,omitempty"`
	Offset      int    `msgpack:"o,omitempty"`

	// Detail field
	ApplicationNumber string `msgpack:"an,omitempty"`

	// Config fields
	MaxLimit  *int     `msgpack:"max_limit,omitempty"`
	MinQuery  *int     `msgpack:"min_query,omitempty"`
	MaxQuery  *int     `msgpack:"max_query,omitempty"`
	Threshold *float64 `msgpack:"threshold,omitempty"`
}

// ResultRecord is one search hit in the wire format.
type ResultRecord struct {
	ApplicationNumber string   `msgpack:"an"`
	ProductName       string   `msgpack:"pn,omitempty"`
	ProductNameEng    string   `msgpack:"pe,omitempty"`
	ApplicationDate   string   `msgpack:"ad,omitempty"`
	RegisterStatus    string   `msgpack:"rs,omitempty"`
	RegistrationNums  []string `msgpack:"rn,omitempty"`
	RegistrationDates []string `msgpack:"rd,omitempty"`
	MainProductCodes  []string `msgpack:"mpc,omitempty"`
}

// SearchResponse answers a search request.
type SearchResponse struct {
	ID          string         `msgpack:"id"`
	Records     []ResultRecord `msgpack:"r"`
	Total       int            `msgpack:"tot"`
	Count       int            `msgpack:"c"`
	Offset      int            `msgpack:"o"`
	TimeTaken   int64          `msgpack:"t"`
	Suggestions []string       `msgpack:"sg,omitempty"`
}

// DetailResponse answers a detail request with the full record.
type DetailResponse struct {
	ID     string `msgpack:"id"`
	Record any    `msgpack:"rec"`
}

// MetaResponse answers statuses and product_codes requests.
type MetaResponse struct {
	ID     string   `msgpack:"id"`
	Values []string `msgpack:"v"`
}

// InfoResponse reports store and config state.
type InfoResponse struct {
	ID           string  `msgpack:"id"`
	RecordCount  int     `msgpack:"records"`
	IndexedNames int     `msgpack:"names"`
	Threshold    float64 `msgpack:"threshold"`
	MaxLimit     int     `msgpack:"max_limit"`
}

// StatusResponse acknowledges config updates and health checks.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

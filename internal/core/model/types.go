package model

// InteractionRecord is one raw customer-support interaction as returned by
// the Wolkvox diagram_9 report. Fields beyond phone/name/date/query/answer
// are carried through untouched; the viewer does not interpret them.
type InteractionRecord struct {
	SessionID     string `json:"session_id"`
	Channel       string `json:"channel"`
	RPID          string `json:"rp_id"`
	Date          string `json:"date"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	CustomerQuery string `json:"customer_query"`
	RoutingAnswer string `json:"routing_answer"`
	CustomerID    string `json:"customer_id"`
	ConnID        string `json:"conn_id"`
}

// ReportResponse is the envelope the reports_manager endpoint wraps every
// payload in. Code is a string ("200" on success), not a number.
type ReportResponse struct {
	Code  string              `json:"code"`
	Error *string             `json:"error"`
	Msg   string              `json:"msg"`
	Data  []InteractionRecord `json:"data"`
}

// Operation identifies one tenant/channel in the shared operations list.
// The upstream JSON uses Spanish keys; "puerto" is the wvNN server number.
type Operation struct {
	Name    string `json:"nombre"`
	Token   string `json:"token"`
	Server  string `json:"puerto"`
	Folder  string `json:"carpeta"`
	Subname string `json:"subnombre"`
}

package arxiv

import "encoding/xml"

// DateLayout is the OAI-PMH day granularity used by every date field.
const DateLayout = "2006-01-02"

// Author is one author entry of a record.
type Author struct {
	Keyname   string `json:"keyname"`
	Forenames string `json:"forenames"`
}

// Record is the metadata of one preprint as returned by the service.
// Date fields are empty strings when absent.
type Record struct {
	Identifier string   `json:"identifier"`
	Datestamp  string   `json:"datestamp,omitempty"`
	SetSpec    string   `json:"setSpec"`
	Created    string   `json:"created,omitempty"`
	Updated    string   `json:"updated,omitempty"`
	Authors    []Author `json:"authors"`
	Title      string   `json:"title"`
	Categories string   `json:"categories"`
	License    string   `json:"license"`
	Abstract   string   `json:"abstract"`
}

// oaiResponse is the OAI-PMH envelope of a GetRecord response.
type oaiResponse struct {
	XMLName   xml.Name      `xml:"OAI-PMH"`
	Errors    []oaiError    `xml:"error"`
	GetRecord *oaiGetRecord `xml:"GetRecord"`
}

type oaiError struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}

type oaiGetRecord struct {
	Record oaiRecord `xml:"record"`
}

type oaiRecord struct {
	Header   oaiHeader   `xml:"header"`
	Metadata oaiMetadata `xml:"metadata"`
}

type oaiHeader struct {
	Status     string   `xml:"status,attr"`
	Identifier string   `xml:"identifier"`
	Datestamp  string   `xml:"datestamp"`
	SetSpecs   []string `xml:"setSpec"`
}

type oaiMetadata struct {
	ArXiv *arxivMetadata `xml:"arXiv"`
}

type arxivMetadata struct {
	ID         string        `xml:"id"`
	Created    string        `xml:"created"`
	Updated    string        `xml:"updated"`
	Authors    []arxivAuthor `xml:"authors>author"`
	Title      string        `xml:"title"`
	Categories string        `xml:"categories"`
	License    string        `xml:"license"`
	Abstract   string        `xml:"abstract"`
}

type arxivAuthor struct {
	Keyname   string `xml:"keyname"`
	Forenames string `xml:"forenames"`
}

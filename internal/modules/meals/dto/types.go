package dto

import "encoding/json"

type SyncInput struct {
	Date string
}

type FetchInput struct {
	Date string
}

type MenuCountOutput struct {
	Type  string
	Count int
}

type SummaryOutput struct {
	HasItems bool
	Date     string
	Menus    []MenuCountOutput
}

type SyncOutput struct {
	Date        string
	JSONPath    string
	HTMLPath    string
	HTMLUpdated bool
	Payload     json.RawMessage
	Summary     SummaryOutput
}

type FetchOutput struct {
	Date     string
	Payload  json.RawMessage
	// Document is the payload rendered the way meals.json stores it.
	Document []byte
	Summary  SummaryOutput
}

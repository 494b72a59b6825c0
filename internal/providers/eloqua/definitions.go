package eloqua

import (
	"fmt"
	"sort"
)

// Bulk entity paths
const (
	EntityContacts   = "contacts"
	EntityActivities = "activities"
)

// CustomObjectEntity is the bulk path of a custom data object
func CustomObjectEntity(id int) string {
	return fmt.Sprintf("customObjects/%d", id)
}

// ExportDefinition is the body of an export definition
type ExportDefinition struct {
	Name       string            `json:"name"`
	Fields     map[string]string `json:"fields"`
	Filter     string            `json:"filter,omitempty"`
	MaxRecords int               `json:"maxRecords,omitempty"`
}

// ImportDefinition is the body of an import definition
type ImportDefinition struct {
	Name                    string            `json:"name"`
	Fields                  map[string]string `json:"fields"`
	IdentifierFieldName     string            `json:"identifierFieldName"`
	IsSyncTriggeredOnImport bool              `json:"isSyncTriggeredOnImport"`

	MapDataCards                   bool   `json:"mapDataCards,omitempty"`
	MapDataCardsEntityType         string `json:"mapDataCardsEntityType,omitempty"`
	MapDataCardsEntityField        string `json:"mapDataCardsEntityField,omitempty"`
	MapDataCardsSourceField        string `json:"mapDataCardsSourceField,omitempty"`
	MapDataCardsCaseSensitiveMatch bool   `json:"mapDataCardsCaseSensitiveMatch,omitempty"`
}

type definitionResponse struct {
	URI string `json:"uri"`
}

type syncRequest struct {
	SyncedInstanceURI string `json:"syncedInstanceUri"`
}

type syncResponse struct {
	URI    string `json:"uri"`
	Status string `json:"status"`
}

// Sync statuses
const (
	syncPending = "pending"
	syncActive  = "active"
	syncSuccess = "success"
	syncWarning = "warning"
	syncError   = "error"
)

type dataPage struct {
	TotalResults int              `json:"totalResults"`
	Limit        int              `json:"limit"`
	Offset       int              `json:"offset"`
	Count        int              `json:"count"`
	HasMore      bool             `json:"hasMore"`
	Items        []map[string]any `json:"items"`
}

type syncLog struct {
	Severity   string `json:"severity"`
	StatusCode string `json:"statusCode"`
	Message    string `json:"message"`
	Count      int    `json:"count"`
}

type syncLogs struct {
	Items []syncLog `json:"items"`
}

// ContactFields maps each field to its contact field statement
func ContactFields(fields ...string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f] = contactField(f)
	}
	return out
}

// CustomObjectFields maps each field to its custom object field statement. overrides wins
// for fields whose statement uses a numeric field id.
func CustomObjectFields(cdoID int, fields []string, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		if stmt, ok := overrides[f]; ok {
			out[f] = stmt
			continue
		}
		out[f] = fmt.Sprintf("{{CustomObject[%d].Field(%s)}}", cdoID, f)
	}
	return out
}

// contactCRMIDFields carries the contact id the page-view fan-out filters on
var contactCRMIDFields = map[string]string{
	"id":                   "{{Contact.Id}}",
	"C_EmailAddress":       contactField("C_EmailAddress"),
	"C_IM_CRM_Contact_ID1": contactField("C_IM_CRM_Contact_ID1"),
	"C_DateModified":       contactField("C_DateModified"),
}

var activityBaseFields = map[string]string{
	"ActivityId":           "{{Activity.Id}}",
	"ActivityType":         "{{Activity.Type}}",
	"ActivityDate":         "{{Activity.CreatedAt}}",
	"ContactId":            "{{Activity.Contact.Id}}",
	"EmailAddress":         "{{Activity.Field(EmailAddress)}}",
	"C_IM_CRM_Contact_ID1": activityContactField("C_IM_CRM_Contact_ID1"),
}

var activityTypeFields = map[string]map[string]string{
	"EmailSend": {
		"AssetId":      "{{Activity.Asset.Id}}",
		"AssetName":    "{{Activity.Asset.Name}}",
		"CampaignId":   "{{Activity.Campaign.Id}}",
		"SubjectLine":  "{{Activity.Field(SubjectLine)}}",
		"EmailWebLink": "{{Activity.Field(EmailWebLink)}}",
	},
	"EmailOpen": {
		"AssetId":      "{{Activity.Asset.Id}}",
		"AssetName":    "{{Activity.Asset.Name}}",
		"CampaignId":   "{{Activity.Campaign.Id}}",
		"SubjectLine":  "{{Activity.Field(SubjectLine)}}",
		"EmailWebLink": "{{Activity.Field(EmailWebLink)}}",
		"IpAddress":    "{{Activity.Field(IpAddress)}}",
	},
	"EmailClickthrough": {
		"AssetId":              "{{Activity.Asset.Id}}",
		"AssetName":            "{{Activity.Asset.Name}}",
		"CampaignId":           "{{Activity.Campaign.Id}}",
		"SubjectLine":          "{{Activity.Field(SubjectLine)}}",
		"EmailClickedThruLink": "{{Activity.Field(EmailClickedThruLink)}}",
		"IpAddress":            "{{Activity.Field(IpAddress)}}",
	},
	"Subscribe": {
		"AssetId":    "{{Activity.Asset.Id}}",
		"AssetName":  "{{Activity.Asset.Name}}",
		"CampaignId": "{{Activity.Campaign.Id}}",
	},
	"Unsubscribe": {
		"AssetId":    "{{Activity.Asset.Id}}",
		"AssetName":  "{{Activity.Asset.Name}}",
		"CampaignId": "{{Activity.Campaign.Id}}",
	},
	"Bounceback": {
		"AssetId":    "{{Activity.Asset.Id}}",
		"AssetName":  "{{Activity.Asset.Name}}",
		"CampaignId": "{{Activity.Campaign.Id}}",
	},
	"FormSubmit": {
		"AssetId":    "{{Activity.Asset.Id}}",
		"AssetName":  "{{Activity.Asset.Name}}",
		"CampaignId": "{{Activity.Campaign.Id}}",
		"RawData":    "{{Activity.Field(RawData)}}",
	},
	"WebVisit": {
		"Duration":         "{{Activity.Field(Duration)}}",
		"QueryString":      "{{Activity.Field(QueryString)}}",
		"FirstPageViewUrl": "{{Activity.Field(FirstPageViewUrl)}}",
		"NumberOfPages":    "{{Activity.Field(NumberOfPages)}}",
		"IpAddress":        "{{Activity.Field(IpAddress)}}",
	},
	"PageView": {
		"Url":        "{{Activity.Field(Url)}}",
		"VisitorId":  "{{Activity.Visitor.Id}}",
		"WebVisitId": "{{Activity.Field(WebVisitId)}}",
		"IpAddress":  "{{Activity.Field(IpAddress)}}",
		"CampaignId": "{{Activity.Campaign.Id}}",
	},
}

// ActivityFields returns the export fields of an activity type
func ActivityFields(activityType string) (map[string]string, error) {
	extra, ok := activityTypeFields[activityType]
	if !ok {
		return nil, fmt.Errorf("unsupported activity type %q", activityType)
	}
	out := make(map[string]string, len(activityBaseFields)+len(extra))
	for k, v := range activityBaseFields {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out, nil
}

// ActivityTypes lists the activity types with a known field set
func ActivityTypes() []string {
	types := make([]string, 0, len(activityTypeFields))
	for t := range activityTypeFields {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

package domain

const (
	// ActivityTypePageView is exported separately from the other activity types
	ActivityTypePageView = "PageView"

	// FieldActivityType is the activity type field on inbound rows
	FieldActivityType = "ActivityType"
	// FieldActivityDate is the activity timestamp field on inbound rows
	FieldActivityDate = "ActivityDate"
	// FieldContactCRMID carries the CRM contact id, prefixed by the region
	FieldContactCRMID = "C_IM_CRM_Contact_ID1"
	// FieldContactDateModified is the contact modification timestamp
	FieldContactDateModified = "C_DateModified"
	// FieldContactDateCreated is the contact creation timestamp
	FieldContactDateCreated = "C_DateCreated"
	// FieldContactSecurityLabel carries the contact's region label
	FieldContactSecurityLabel = "C_IM_CRM_Security_Label1"
	// FieldContactEmail is the contact email, used as the import identifier
	FieldContactEmail = "C_EmailAddress"
	// FieldRowID identifies a link row and is the CDO import identifier
	FieldRowID = "IM_CRM_Row_ID"
	// FieldLinkContactID is the contact id carried by link rows
	FieldLinkContactID = "IM_CRM_Contact_ID"
)

// DefaultActivityTypes are the non page-view activity types pulled inbound
var DefaultActivityTypes = []string{
	"EmailSend",
	"EmailOpen",
	"EmailClickthrough",
	"Subscribe",
	"Unsubscribe",
	"Bounceback",
	"FormSubmit",
	"WebVisit",
}

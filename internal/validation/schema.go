package validation

import (
	"fmt"
	"strings"

	"github.com/feral-file/ff-crm-sync/internal/domain"
)

// FieldSchema is the contract a record must satisfy to be accepted
type FieldSchema struct {
	// Name is the schema name used in logs and rejection messages
	Name string
	// Allowed lists every accepted field, in presentation order
	Allowed []string
	// Required fields must be present and non-empty
	Required []string
	// Formats maps a field to the validator tag its value must satisfy.
	// A missing field is checked as an empty string.
	Formats map[string]string
}

// Allows reports whether the field is in the allow-list
func (s FieldSchema) Allows(field string) bool {
	for _, f := range s.Allowed {
		if f == field {
			return true
		}
	}
	return false
}

// AcceptedFieldsList renders the allow-list the way rejection messages list it
func (s FieldSchema) AcceptedFieldsList() string {
	quoted := make([]string, len(s.Allowed))
	for i, f := range s.Allowed {
		quoted[i] = "'" + f + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

var ContactSchema = FieldSchema{
	Name: "contact_fields",
	Allowed: []string{
		"C_Firstname", "C_Lastname", "C_MobilePhone", "C_EmailAddress", "C_Salutation", "C_Country",
		"C_IM_CRM_Status1", "C_IM_CRM_Contact_ID1", "C_IM_CRM_Institution_ID1", "C_Company", "IM_CRM_GDPR",
		"C_IM_CRM_Gender1", "C_IM_CRM_Target1", "C_IM_CRM_Function1", "C_IM_CRM_Person_Qualification1",
		"C_IM_CRM_Person_Tendency1", "C_IM_CRM_KAM_Person1", "IM_CRM_Product_Interest1", "IM_CRM_Segmentation1",
		"IM_CRM_Person_Type1", "C_Title", "C_Job_Role1", "IM_CRM_Doctor_in_Training1", "C_B2B_Email_Consent1",
		"C_B2B_Email_Consent_Date1", "C_B2B_Email_Consent_Source1", "C_IM_CRM_User_Name1",
		"C_IM_CRM_Security_Label1", "C_IM_CRM_Lead_Score1", "C_IM_CRM_Lead_Status1",
		"C_LastModifiedByExtIntegrateSystem",
	},
	Required: []string{"C_IM_CRM_Contact_ID1", "C_IM_CRM_Security_Label1"},
	Formats:  map[string]string{"C_EmailAddress": TagCRMEmail},
}

var ActivitySchema = FieldSchema{
	Name: "activity_fields",
	Allowed: []string{
		"Meeting_Type", "Meeting_SubType", "Meeting_ID", "Start_Time", "End_time", "Duration", "Accomplished",
		"Meeting_Place", "IM_CRM_InstitutionID", "Created_Date", "Modified_Date", "Owner", "Created_By",
		"Updated_By", "ProductsandCampaigns",
	},
	Required: []string{"Meeting_ID"},
}

var InstitutionSchema = FieldSchema{
	Name: "institution_fields",
	Allowed: []string{
		"CompanyName", "Address1", "Address2", "City", "Zip_Postal", "IM_CRM_Brick", "Country", "BusPhone",
		"State_Prov", "IM_CRM_Status", "IM_CRM_Institution_Department", "IM_CRM_Institution_ID",
		"M_CRM_Institution_Territory", "IM_CRM_Institution_Type", "IM_CRM_Institution_Title",
		"IM_CRM_Institution_Specialty", "IM_CRM_Category", "IM_CRM_Institution_Level",
		"IM_CRM_Institution_Segmentation", "IM_CRM_Institution_Area",
	},
	Required: []string{"IM_CRM_Institution_ID"},
}

var PersonActivitySchema = FieldSchema{
	Name:     "person_activity_fields",
	Allowed:  []string{"IM_CRM_Contact_ID", "IM_CRM_Meeting_ID", "IM_CRM_Row_ID"},
	Required: []string{"IM_CRM_Meeting_ID", "IM_CRM_Contact_ID"},
}

var PersonInstitutionSchema = FieldSchema{
	Name:     "person_institution_fields",
	Allowed:  []string{"IM_CRM_Contact_ID", "IM_CRM_Institution_ID", "IM_CRM_Row_ID", "IM_CRM_Status"},
	Required: []string{"IM_CRM_Institution_ID", "IM_CRM_Contact_ID"},
}

var schemas = map[domain.Category]FieldSchema{
	domain.CategoryContact:           ContactSchema,
	domain.CategoryActivity:          ActivitySchema,
	domain.CategoryInstitution:       InstitutionSchema,
	domain.CategoryPersonActivity:    PersonActivitySchema,
	domain.CategoryPersonInstitution: PersonInstitutionSchema,
}

// SchemaFor returns the schema API ingestion validates the category against.
// allActivities is only written inbound and has no schema.
func SchemaFor(category domain.Category) (FieldSchema, error) {
	s, ok := schemas[category]
	if !ok {
		return FieldSchema{}, fmt.Errorf("%w: no schema for %q", domain.ErrUnknownCategory, string(category))
	}
	return s, nil
}

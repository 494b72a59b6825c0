package domain

import "fmt"

// Category is a record category handled by the sync engine
type Category string

const (
	CategoryContact           Category = "contact"
	CategoryActivity          Category = "activity"
	CategoryInstitution       Category = "institution"
	CategoryPersonActivity    Category = "personActivity"
	CategoryPersonInstitution Category = "personInstitution"
	CategoryAllActivities     Category = "allActivities"
)

// AllCategories lists every declared category
var AllCategories = []Category{
	CategoryContact,
	CategoryActivity,
	CategoryInstitution,
	CategoryPersonActivity,
	CategoryPersonInstitution,
	CategoryAllActivities,
}

// OutboundCategories are pushed to the platform, in processing order
var OutboundCategories = []Category{
	CategoryContact,
	CategoryActivity,
	CategoryInstitution,
}

// JoinConfig describes how a category's working rows are joined with their link rows
type JoinConfig struct {
	// Detail is the link collection holding the detail rows
	Detail Collection
	// LocalKey is the primary field matched against ForeignKey on the detail row
	LocalKey   string
	ForeignKey string
	// Project maps detail field names to the names they take on the flattened row
	Project map[string]string
	// Staging is the joined view the flattened rows are materialized into
	Staging Collection
}

// CategorySpec binds a category to its collections and region fields
type CategorySpec struct {
	Category Category
	Working  Collection
	// Archive is empty for categories without a daily snapshot
	Archive Collection
	// RegionField is matched against the region pattern on working, archive and joined rows
	RegionField string
	// Link is the dependent link collection cleared with the working rows
	Link            Collection
	LinkRegionField string
	Join            *JoinConfig
}

// Archived reports whether the category rotates through an archive collection
func (s CategorySpec) Archived() bool {
	return s.Archive != ""
}

var categorySpecs = map[Category]CategorySpec{
	CategoryContact: {
		Category:    CategoryContact,
		Working:     CollectionContact,
		Archive:     CollectionContactPast,
		RegionField: "C_IM_CRM_Security_Label1",
	},
	CategoryActivity: {
		Category:        CategoryActivity,
		Working:         CollectionActivity,
		Archive:         CollectionActivityPast,
		RegionField:     "Meeting_ID",
		Link:            CollectionPersonActivity,
		LinkRegionField: "IM_CRM_Meeting_ID",
		Join: &JoinConfig{
			Detail:     CollectionPersonActivity,
			LocalKey:   "Meeting_ID",
			ForeignKey: "IM_CRM_Meeting_ID",
			Project: map[string]string{
				"IM_CRM_Contact_ID": "IM_CRM_Contact_ID",
				"IM_CRM_Row_ID":     "IM_CRM_Row_ID",
			},
			Staging: CollectionJoinedActivity,
		},
	},
	CategoryInstitution: {
		Category:        CategoryInstitution,
		Working:         CollectionInstitution,
		Archive:         CollectionInstitutionPast,
		RegionField:     "IM_CRM_Institution_ID",
		Link:            CollectionPersonInstitution,
		LinkRegionField: "IM_CRM_Institution_ID",
		Join: &JoinConfig{
			Detail:     CollectionPersonInstitution,
			LocalKey:   "IM_CRM_Institution_ID",
			ForeignKey: "IM_CRM_Institution_ID",
			Project: map[string]string{
				"IM_CRM_Contact_ID": "IM_CRM_Contact_ID",
				"IM_CRM_Row_ID":     "IM_CRM_Row_ID",
			},
			Staging: CollectionJoinedInstitution,
		},
	},
	CategoryPersonActivity: {
		Category:    CategoryPersonActivity,
		Working:     CollectionPersonActivity,
		RegionField: "IM_CRM_Meeting_ID",
	},
	CategoryPersonInstitution: {
		Category:    CategoryPersonInstitution,
		Working:     CollectionPersonInstitution,
		RegionField: "IM_CRM_Institution_ID",
	},
	CategoryAllActivities: {
		Category:    CategoryAllActivities,
		Working:     CollectionAllActivities,
		RegionField: "C_IM_CRM_Contact_ID1",
	},
}

// Spec returns the collections and region fields bound to the category
func (c Category) Spec() (CategorySpec, error) {
	spec, ok := categorySpecs[c]
	if !ok {
		return CategorySpec{}, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return spec, nil
}

// Valid reports whether the category is declared
func (c Category) Valid() bool {
	_, ok := categorySpecs[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}

package domain

// Collection names a record set in the store
type Collection string

const (
	CollectionContact           Collection = "contact"
	CollectionActivity          Collection = "activity"
	CollectionInstitution       Collection = "institution"
	CollectionPersonActivity    Collection = "personActivity"
	CollectionPersonInstitution Collection = "personInstitution"

	CollectionContactPast     Collection = "contactPast"
	CollectionActivityPast    Collection = "activityPast"
	CollectionInstitutionPast Collection = "institutionPast"

	CollectionJoinedActivity    Collection = "joinedActivity"
	CollectionJoinedInstitution Collection = "joinedInstitution"

	CollectionAllActivities Collection = "allActivities"
)

// AllCollections lists every collection the system persists
var AllCollections = []Collection{
	CollectionContact,
	CollectionActivity,
	CollectionInstitution,
	CollectionPersonActivity,
	CollectionPersonInstitution,
	CollectionContactPast,
	CollectionActivityPast,
	CollectionInstitutionPast,
	CollectionJoinedActivity,
	CollectionJoinedInstitution,
	CollectionAllActivities,
}

func (c Collection) String() string {
	return string(c)
}

// IsStaging reports whether the collection is a joined view used as join staging
func (c Collection) IsStaging() bool {
	return c == CollectionJoinedActivity || c == CollectionJoinedInstitution
}

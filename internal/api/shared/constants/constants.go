package constants

const (
	// MAX_ACTIVITY_PAGE_SIZE caps the limit of the activity listings and is their default
	MAX_ACTIVITY_PAGE_SIZE = 20000
	// MAX_CONTACT_PAGE_SIZE caps the limit of the live contact export and is its default
	MAX_CONTACT_PAGE_SIZE = 5000
	DEFAULT_OFFSET        = 0

	// DEFAULT_CONTACT_WINDOW_HOURS is how far back /activity/contact looks when no date is given
	DEFAULT_CONTACT_WINDOW_HOURS = 24

	// QUERY_DATE_LAYOUT formats default date bounds the way stored timestamps are written
	QUERY_DATE_LAYOUT = "2006-01-02 15:04:05.000000"

	STATUS_TEXT = "Up and running"
)

package eloqua

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

func TestFilters(t *testing.T) {
	window := Window{From: "2024-03-01", To: "2024-03-02"}

	tests := []struct {
		name   string
		filter string
	}{
		{name: "contacts_all_bounds", filter: ContactsFilter("2024-01-01", "2024-02-01", "UK")},
		{name: "contacts_from_only", filter: ContactsFilter("2024-01-01", "", "DE")},
		{name: "contacts_to_only", filter: ContactsFilter("", "2024-02-01", "ES")},
		{name: "contacts_label_only", filter: ContactsFilter("", "", "UK")},
		{name: "contacts_quote_stripped", filter: ContactsFilter("", "", "U'K")},
		{name: "contacts_crm_id_all", filter: ContactsWithCRMIDFilter(nil)},
		{name: "contacts_crm_id_window", filter: ContactsWithCRMIDFilter(&window)},
		{name: "activities_email_open", filter: ActivitiesFilter("EmailOpen")},
		{name: "page_views_contact", filter: ContactPageViewsFilter("12345")},
		{name: "page_views_window", filter: PageViewsFilter(window)},
	}

	g := goldie.New(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, []byte(tt.filter))
		})
	}
}

package eloqua

import (
	"fmt"
	"strings"
)

// DateLayout formats the day bounds of export windows
const DateLayout = "2006-01-02"

// Window is a half-open [From, To) range of days, formatted with DateLayout
type Window struct {
	From string
	To   string
}

func contactField(name string) string {
	return fmt.Sprintf("{{Contact.Field(%s)}}", name)
}

func activityContactField(name string) string {
	return fmt.Sprintf("{{Activity.Contact.Field(%s)}}", name)
}

// literal drops single quotes, which the filter language cannot escape
func literal(v string) string {
	return strings.ReplaceAll(v, "'", "")
}

func eq(statement, value string) string {
	return fmt.Sprintf("'%s'='%s'", statement, literal(value))
}

func gt(statement, value string) string {
	return fmt.Sprintf("'%s'>'%s'", statement, literal(value))
}

func gte(statement, value string) string {
	return fmt.Sprintf("'%s'>='%s'", statement, literal(value))
}

func lt(statement, value string) string {
	return fmt.Sprintf("'%s'<'%s'", statement, literal(value))
}

func notEmpty(statement string) string {
	return fmt.Sprintf("NOT '%s'=''", statement)
}

func and(clauses ...string) string {
	return strings.Join(clauses, " AND ")
}

// ContactsFilter selects contacts of a security label created strictly between the optional bounds
func ContactsFilter(dateFrom, dateTo, label string) string {
	var clauses []string
	if dateFrom != "" {
		clauses = append(clauses, gt(contactField("C_DateCreated"), dateFrom))
	}
	if dateTo != "" {
		clauses = append(clauses, lt(contactField("C_DateCreated"), dateTo))
	}
	clauses = append(clauses, eq(contactField("C_IM_CRM_Security_Label1"), label))
	return and(clauses...)
}

// ContactsWithCRMIDFilter selects contacts carrying a CRM id, optionally only those modified in the window
func ContactsWithCRMIDFilter(window *Window) string {
	clauses := []string{notEmpty(contactField("C_IM_CRM_Contact_ID1"))}
	if window != nil {
		clauses = append(clauses,
			gte(contactField("C_DateModified"), window.From),
			lt(contactField("C_DateModified"), window.To))
	}
	return and(clauses...)
}

// ActivitiesFilter selects activities of one type whose contact carries a CRM id
func ActivitiesFilter(activityType string) string {
	return and(
		eq("{{Activity.Type}}", activityType),
		notEmpty(activityContactField("C_IM_CRM_Contact_ID1")))
}

// ContactPageViewsFilter selects the page views of one contact
func ContactPageViewsFilter(contactID string) string {
	return and(
		eq("{{Activity.Contact.Id}}", contactID),
		eq("{{Activity.Type}}", "PageView"))
}

// PageViewsFilter selects page views created in the window
func PageViewsFilter(window Window) string {
	return and(
		eq("{{Activity.Type}}", "PageView"),
		gte("{{Activity.CreatedAt}}", window.From),
		lt("{{Activity.CreatedAt}}", window.To))
}

package eloqua

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/metrics"
	"github.com/feral-file/ff-crm-sync/internal/validation"
)

// ContactQuery selects contacts of a security label created between optional bounds
type ContactQuery struct {
	DateFrom string
	DateTo   string
	Label    string
}

// Platform is the marketing platform as the sync engine and the API see it:
// export by filter and import by field mapping. Every failure wraps domain.ErrExternalCollaborator.
//
//go:generate mockgen -source=platform.go -destination=../../mocks/platform.go -package=mocks -mock_names=Platform=MockPlatform
type Platform interface {
	ExportContacts(ctx context.Context, query ContactQuery) ([]domain.Record, error)
	// ExportContactsWithCRMID exports contacts carrying a CRM id, modified in the window when it is set
	ExportContactsWithCRMID(ctx context.Context, window *Window) ([]domain.Record, error)
	ExportActivities(ctx context.Context, activityType string) ([]domain.Record, error)
	ExportContactPageViews(ctx context.Context, contactID string) ([]domain.Record, error)
	ExportPageViews(ctx context.Context, window Window) ([]domain.Record, error)
	ImportContacts(ctx context.Context, records []domain.Record) error
	// ImportCustomObjects uploads joined activity or institution rows into their custom data object
	ImportCustomObjects(ctx context.Context, category domain.Category, records []domain.Record) error
}

// CustomObjectConfig binds the outbound custom object categories to their CDO
type CustomObjectConfig struct {
	ActivityID        int
	InstitutionID     int
	ActivityFields    map[string]string
	InstitutionFields map[string]string
}

type platform struct {
	client Client
	cdo    CustomObjectConfig
}

// NewPlatform creates the platform collaborator over a bulk client
func NewPlatform(client Client, cdo CustomObjectConfig) Platform {
	return &platform{client: client, cdo: cdo}
}

// observe records the outcome of one platform operation and tags failures as external
func observe(ctx context.Context, operation string, start time.Time, err error) error {
	metrics.PlatformRequestsTotal.WithLabelValues(operation, metrics.Outcome(err)).Inc()
	metrics.PlatformRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err == nil {
		return nil
	}
	logger.ErrorCtx(ctx, err, zap.String("operation", operation))
	return fmt.Errorf("%w: %s: %w", domain.ErrExternalCollaborator, operation, err)
}

func (p *platform) export(ctx context.Context, operation, entity string, def ExportDefinition) ([]domain.Record, error) {
	start := time.Now()
	records, err := p.client.Export(ctx, entity, def)
	if err := observe(ctx, operation, start, err); err != nil {
		return nil, err
	}
	return records, nil
}

var contactExportFields = append(
	append([]string{}, validation.ContactSchema.Allowed...),
	domain.FieldContactDateCreated, domain.FieldContactDateModified)

func (p *platform) ExportContacts(ctx context.Context, query ContactQuery) ([]domain.Record, error) {
	return p.export(ctx, "export_contacts", EntityContacts, ExportDefinition{
		Name:   "contact_export_def",
		Fields: ContactFields(contactExportFields...),
		Filter: ContactsFilter(query.DateFrom, query.DateTo, query.Label),
	})
}

func (p *platform) ExportContactsWithCRMID(ctx context.Context, window *Window) ([]domain.Record, error) {
	return p.export(ctx, "export_contacts_crm_id", EntityContacts, ExportDefinition{
		Name:   "contact_crm_id_export_def",
		Fields: contactCRMIDFields,
		Filter: ContactsWithCRMIDFilter(window),
	})
}

func (p *platform) ExportActivities(ctx context.Context, activityType string) ([]domain.Record, error) {
	fields, err := ActivityFields(activityType)
	if err != nil {
		return nil, observe(ctx, "export_activities", time.Now(), err)
	}
	return p.export(ctx, "export_activities", EntityActivities, ExportDefinition{
		Name:   strings.ToLower(activityType) + "_with_contact_export_def",
		Fields: fields,
		Filter: ActivitiesFilter(activityType),
	})
}

func (p *platform) ExportContactPageViews(ctx context.Context, contactID string) ([]domain.Record, error) {
	fields, _ := ActivityFields(domain.ActivityTypePageView)
	return p.export(ctx, "export_contact_page_views", EntityActivities, ExportDefinition{
		Name:   "pageview_with_crm_id_export_def",
		Fields: fields,
		Filter: ContactPageViewsFilter(contactID),
	})
}

func (p *platform) ExportPageViews(ctx context.Context, window Window) ([]domain.Record, error) {
	fields, _ := ActivityFields(domain.ActivityTypePageView)
	return p.export(ctx, "export_page_views", EntityActivities, ExportDefinition{
		Name:   "pageview_by_day_export_def",
		Fields: fields,
		Filter: PageViewsFilter(window),
	})
}

func (p *platform) ImportContacts(ctx context.Context, records []domain.Record) error {
	start := time.Now()
	err := p.client.Import(ctx, EntityContacts, ImportDefinition{
		Name:                "contact_import_def",
		Fields:              ContactFields(validation.ContactSchema.Allowed...),
		IdentifierFieldName: domain.FieldContactEmail,
	}, records)
	return observe(ctx, "import_contacts", start, err)
}

func (p *platform) ImportCustomObjects(ctx context.Context, category domain.Category, records []domain.Record) error {
	start := time.Now()
	def, cdoID, err := p.customObjectImport(category)
	if err != nil {
		return observe(ctx, "import_custom_objects", start, err)
	}
	err = p.client.Import(ctx, CustomObjectEntity(cdoID), def, records)
	return observe(ctx, "import_custom_objects", start, err)
}

// customObjectImport builds the import definition of an outbound custom object category
func (p *platform) customObjectImport(category domain.Category) (ImportDefinition, int, error) {
	var (
		schema    validation.FieldSchema
		cdoID     int
		overrides map[string]string
	)
	switch category {
	case domain.CategoryActivity:
		schema, cdoID, overrides = validation.ActivitySchema, p.cdo.ActivityID, p.cdo.ActivityFields
	case domain.CategoryInstitution:
		schema, cdoID, overrides = validation.InstitutionSchema, p.cdo.InstitutionID, p.cdo.InstitutionFields
	default:
		return ImportDefinition{}, 0, fmt.Errorf("%w: %s has no custom object", domain.ErrUnknownCategory, category)
	}
	if cdoID <= 0 {
		return ImportDefinition{}, 0, fmt.Errorf("no custom object id configured for %s", category)
	}

	fields := append(append([]string{}, schema.Allowed...), domain.FieldLinkContactID, domain.FieldRowID)

	return ImportDefinition{
		Name:                    category.String() + "_cdo_import_def",
		Fields:                  CustomObjectFields(cdoID, fields, overrides),
		IdentifierFieldName:     domain.FieldRowID,
		IsSyncTriggeredOnImport: true,
		MapDataCards:            true,
		MapDataCardsEntityType:  "Contact",
		MapDataCardsEntityField: contactField(domain.FieldContactCRMID),
		MapDataCardsSourceField: domain.FieldLinkContactID,
	}, cdoID, nil
}

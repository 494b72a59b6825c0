package eloqua_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/mocks"
	"github.com/feral-file/ff-crm-sync/internal/providers/eloqua"
)

func TestPlatform_ExportContacts(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEloquaClient(ctrl)
	p := eloqua.NewPlatform(client, eloqua.CustomObjectConfig{})
	ctx := context.Background()

	want := []domain.Record{{"C_EmailAddress": "a@b.com"}}
	client.EXPECT().
		Export(ctx, eloqua.EntityContacts, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, def eloqua.ExportDefinition) ([]domain.Record, error) {
			assert.Equal(t, "contact_export_def", def.Name)
			assert.Equal(t, eloqua.ContactsFilter("2024-01-01", "2024-02-01", "UK"), def.Filter)
			assert.Equal(t, "{{Contact.Field(C_DateCreated)}}", def.Fields["C_DateCreated"])
			assert.Equal(t, "{{Contact.Field(C_EmailAddress)}}", def.Fields["C_EmailAddress"])
			return want, nil
		})

	got, err := p.ExportContacts(ctx, eloqua.ContactQuery{DateFrom: "2024-01-01", DateTo: "2024-02-01", Label: "UK"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPlatform_ExportFailureIsExternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEloquaClient(ctrl)
	p := eloqua.NewPlatform(client, eloqua.CustomObjectConfig{})
	ctx := context.Background()

	client.EXPECT().Export(ctx, eloqua.EntityActivities, gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := p.ExportActivities(ctx, "EmailOpen")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExternalCollaborator)
	assert.Contains(t, err.Error(), "timeout")
}

func TestPlatform_ExportActivitiesUnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := eloqua.NewPlatform(mocks.NewMockEloquaClient(ctrl), eloqua.CustomObjectConfig{})

	_, err := p.ExportActivities(context.Background(), "Teleport")
	assert.ErrorIs(t, err, domain.ErrExternalCollaborator)
}

func TestPlatform_ExportActivities(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEloquaClient(ctrl)
	p := eloqua.NewPlatform(client, eloqua.CustomObjectConfig{})
	ctx := context.Background()

	client.EXPECT().
		Export(ctx, eloqua.EntityActivities, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, def eloqua.ExportDefinition) ([]domain.Record, error) {
			assert.Equal(t, "emailclickthrough_with_contact_export_def", def.Name)
			assert.Equal(t, eloqua.ActivitiesFilter("EmailClickthrough"), def.Filter)
			assert.Equal(t, "{{Activity.Field(EmailClickedThruLink)}}", def.Fields["EmailClickedThruLink"])
			assert.Equal(t, "{{Activity.Type}}", def.Fields[domain.FieldActivityType])
			return nil, nil
		})

	got, err := p.ExportActivities(ctx, "EmailClickthrough")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPlatform_PageViews(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEloquaClient(ctrl)
	p := eloqua.NewPlatform(client, eloqua.CustomObjectConfig{})
	ctx := context.Background()
	window := eloqua.Window{From: "2024-03-01", To: "2024-03-02"}

	gomock.InOrder(
		client.EXPECT().
			Export(ctx, eloqua.EntityContacts, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, def eloqua.ExportDefinition) ([]domain.Record, error) {
				assert.Equal(t, eloqua.ContactsWithCRMIDFilter(&window), def.Filter)
				assert.Equal(t, "{{Contact.Id}}", def.Fields["id"])
				return []domain.Record{{"id": "42"}}, nil
			}),
		client.EXPECT().
			Export(ctx, eloqua.EntityActivities, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, def eloqua.ExportDefinition) ([]domain.Record, error) {
				assert.Equal(t, eloqua.ContactPageViewsFilter("42"), def.Filter)
				return nil, nil
			}),
		client.EXPECT().
			Export(ctx, eloqua.EntityActivities, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, def eloqua.ExportDefinition) ([]domain.Record, error) {
				assert.Equal(t, eloqua.PageViewsFilter(window), def.Filter)
				return nil, nil
			}),
	)

	_, err := p.ExportContactsWithCRMID(ctx, &window)
	require.NoError(t, err)
	_, err = p.ExportContactPageViews(ctx, "42")
	require.NoError(t, err)
	_, err = p.ExportPageViews(ctx, window)
	require.NoError(t, err)
}

func TestPlatform_ImportContacts(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEloquaClient(ctrl)
	p := eloqua.NewPlatform(client, eloqua.CustomObjectConfig{})
	ctx := context.Background()
	rows := []domain.Record{{"C_EmailAddress": "a@b.com"}}

	client.EXPECT().
		Import(ctx, eloqua.EntityContacts, gomock.Any(), rows).
		DoAndReturn(func(_ context.Context, _ string, def eloqua.ImportDefinition, _ []domain.Record) error {
			assert.Equal(t, "C_EmailAddress", def.IdentifierFieldName)
			assert.False(t, def.IsSyncTriggeredOnImport)
			assert.False(t, def.MapDataCards)
			return nil
		})

	require.NoError(t, p.ImportContacts(ctx, rows))
}

func TestPlatform_ImportCustomObjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEloquaClient(ctrl)
	p := eloqua.NewPlatform(client, eloqua.CustomObjectConfig{
		ActivityID:     12,
		InstitutionID:  14,
		ActivityFields: map[string]string{"Meeting_ID": "{{CustomObject[12].Field[900]}}"},
	})
	ctx := context.Background()
	rows := []domain.Record{{"Meeting_ID": "UK-1", "IM_CRM_Contact_ID": "C1", "IM_CRM_Row_ID": "R1"}}

	client.EXPECT().
		Import(ctx, "customObjects/12", gomock.Any(), rows).
		DoAndReturn(func(_ context.Context, _ string, def eloqua.ImportDefinition, _ []domain.Record) error {
			assert.Equal(t, "activity_cdo_import_def", def.Name)
			assert.Equal(t, "IM_CRM_Row_ID", def.IdentifierFieldName)
			assert.True(t, def.IsSyncTriggeredOnImport)
			assert.True(t, def.MapDataCards)
			assert.Equal(t, "Contact", def.MapDataCardsEntityType)
			assert.Equal(t, "{{Contact.Field(C_IM_CRM_Contact_ID1)}}", def.MapDataCardsEntityField)
			assert.Equal(t, "IM_CRM_Contact_ID", def.MapDataCardsSourceField)
			assert.Equal(t, "{{CustomObject[12].Field[900]}}", def.Fields["Meeting_ID"])
			assert.Equal(t, "{{CustomObject[12].Field(IM_CRM_Row_ID)}}", def.Fields["IM_CRM_Row_ID"])
			return nil
		})
	require.NoError(t, p.ImportCustomObjects(ctx, domain.CategoryActivity, rows))

	client.EXPECT().
		Import(ctx, "customObjects/14", gomock.Any(), rows).
		Return(errors.New("rejected"))
	err := p.ImportCustomObjects(ctx, domain.CategoryInstitution, rows)
	assert.ErrorIs(t, err, domain.ErrExternalCollaborator)
}

func TestPlatform_ImportCustomObjectsMisconfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := eloqua.NewPlatform(mocks.NewMockEloquaClient(ctrl), eloqua.CustomObjectConfig{})

	err := p.ImportCustomObjects(context.Background(), domain.CategoryActivity, []domain.Record{{"a": "b"}})
	assert.ErrorIs(t, err, domain.ErrExternalCollaborator)

	err = p.ImportCustomObjects(context.Background(), domain.CategoryContact, []domain.Record{{"a": "b"}})
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Spec_EveryCategoryRegistered(t *testing.T) {
	for _, c := range AllCategories {
		t.Run(string(c), func(t *testing.T) {
			spec, err := c.Spec()
			require.NoError(t, err)
			assert.Equal(t, c, spec.Category)
			assert.NotEmpty(t, spec.Working)
			assert.NotEmpty(t, spec.RegionField)
			if spec.Link != "" {
				assert.NotEmpty(t, spec.LinkRegionField)
			}
			if spec.Join != nil {
				assert.Equal(t, spec.Link, spec.Join.Detail)
				assert.True(t, spec.Join.Staging.IsStaging())
				assert.NotEmpty(t, spec.Join.Project)
			}
		})
	}
}

func TestCategory_Spec_OutboundCategoriesAreArchived(t *testing.T) {
	for _, c := range OutboundCategories {
		spec, err := c.Spec()
		require.NoError(t, err)
		assert.True(t, spec.Archived(), "%s must rotate through an archive", c)
	}
}

func TestCategory_Spec_Unknown(t *testing.T) {
	_, err := Category("meeting").Spec()

	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.False(t, Category("meeting").Valid())
}

func TestCategory_Spec_Collections(t *testing.T) {
	tests := []struct {
		category Category
		working  Collection
		archive  Collection
		field    string
	}{
		{CategoryContact, CollectionContact, CollectionContactPast, "C_IM_CRM_Security_Label1"},
		{CategoryActivity, CollectionActivity, CollectionActivityPast, "Meeting_ID"},
		{CategoryInstitution, CollectionInstitution, CollectionInstitutionPast, "IM_CRM_Institution_ID"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			spec, err := tt.category.Spec()
			require.NoError(t, err)
			assert.Equal(t, tt.working, spec.Working)
			assert.Equal(t, tt.archive, spec.Archive)
			assert.Equal(t, tt.field, spec.RegionField)
		})
	}
}

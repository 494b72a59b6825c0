package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-crm-sync/internal/domain"
)

func TestSelectRegions(t *testing.T) {
	configured := domain.DefaultRegions()

	all, err := selectRegions(configured, nil)
	require.NoError(t, err)
	assert.Equal(t, configured, all)

	// ES covers both the ES and PT patterns
	regions, err := selectRegions(configured, []string{"DE", "ES"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Region{
		{Label: "ES", Pattern: "ES"},
		{Label: "ES", Pattern: "PT"},
		{Label: "DE", Pattern: "DE"},
	}, regions)

	_, err = selectRegions(configured, []string{"UK", "FR"})
	assert.EqualError(t, err, `region "FR" is not configured`)
}

func TestPrintReport_FailedUnits(t *testing.T) {
	report := &domain.SyncReport{Units: []domain.UnitResult{
		{Region: "ES", Category: domain.CategoryContact},
		{Region: "UK", Category: domain.CategoryContact, Error: "upload failed"},
	}}

	err := printReport(report)
	assert.True(t, errors.Is(err, errUnitsFailed))
	assert.EqualError(t, err, fmt.Sprintf("%v: 1 of 2", errUnitsFailed))

	assert.NoError(t, printReport(&domain.SyncReport{}))
}

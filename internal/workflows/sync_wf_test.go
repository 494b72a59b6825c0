package workflows_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/mocks"
	"github.com/feral-file/ff-crm-sync/internal/workflows"
)

// SyncWorkflowTestSuite is the test suite for the sync workflows
type SyncWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env        *testsuite.TestWorkflowEnvironment
	ctrl       *gomock.Controller
	executor   *mocks.MockExecutor
	workerCore workflows.WorkerCore
}

var (
	uk = domain.Region{Label: "UK", Pattern: "UK"}
	de = domain.Region{Label: "DE", Pattern: "DE"}
)

func (s *SyncWorkflowTestSuite) SetupTest() {
	_ = logger.Initialize(logger.Config{
		Debug: true,
	})

	s.env = s.NewTestWorkflowEnvironment()
	s.ctrl = gomock.NewController(s.T())
	s.executor = mocks.NewMockExecutor(s.ctrl)
	s.workerCore = workflows.NewWorkerCore(s.executor, workflows.WorkerCoreConfig{
		Regions: []domain.Region{uk, de},
	})
}

func (s *SyncWorkflowTestSuite) TearDownTest() {
	s.env.AssertExpectations(s.T())
	s.ctrl.Finish()
}

func TestSyncWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(SyncWorkflowTestSuite))
}

func unitFor(region domain.Region, category domain.Category) domain.UnitResult {
	return domain.UnitResult{Region: region.Key(), Category: category, Rotated: true}
}

// ====================================================================================
// OutboundSync Tests
// ====================================================================================

func (s *SyncWorkflowTestSuite) TestOutboundSync_AllUnits() {
	var order []string
	for _, region := range []domain.Region{uk, de} {
		for _, category := range domain.OutboundCategories {
			result := unitFor(region, category)
			s.env.OnActivity(s.executor.SyncOutboundUnit, mock.Anything, region, category).Return(
				func(_ context.Context, r domain.Region, c domain.Category) (domain.UnitResult, error) {
					order = append(order, r.Key()+"/"+c.String())
					return result, nil
				}).Once()
		}
	}
	s.env.OnActivity(s.executor.PublishReport, mock.Anything, mock.Anything).Return(nil).Once()

	s.env.ExecuteWorkflow(s.workerCore.OutboundSync, []domain.Region(nil))

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var report domain.SyncReport
	s.NoError(s.env.GetWorkflowResult(&report))
	s.Equal(domain.DirectionOutbound, report.Direction)
	s.Len(report.Units, 6)
	s.Zero(report.Failures())
	s.Equal([]string{
		"UK/contact", "UK/activity", "UK/institution",
		"DE/contact", "DE/activity", "DE/institution",
	}, order)
}

func (s *SyncWorkflowTestSuite) TestOutboundSync_ActivityErrorIsolated() {
	s.env.OnActivity(s.executor.SyncOutboundUnit, mock.Anything, uk, domain.CategoryContact).
		Return(domain.UnitResult{}, errors.New("worker lost"))
	s.env.OnActivity(s.executor.SyncOutboundUnit, mock.Anything, uk, domain.CategoryActivity).
		Return(unitFor(uk, domain.CategoryActivity), nil)
	s.env.OnActivity(s.executor.SyncOutboundUnit, mock.Anything, uk, domain.CategoryInstitution).
		Return(domain.UnitResult{Region: "UK", Category: domain.CategoryInstitution, Error: "import rejected"}, nil)
	s.env.OnActivity(s.executor.PublishReport, mock.Anything, mock.Anything).Return(nil)

	s.env.ExecuteWorkflow(s.workerCore.OutboundSync, []domain.Region{uk})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var report domain.SyncReport
	s.NoError(s.env.GetWorkflowResult(&report))
	s.Len(report.Units, 3)
	s.Equal(2, report.Failures())
	s.Equal("UK", report.Units[0].Region)
	s.Contains(report.Units[0].Error, "worker lost")
}

func (s *SyncWorkflowTestSuite) TestOutboundSync_NoRetryOnActivityError() {
	var attempts int
	s.env.OnActivity(s.executor.SyncOutboundUnit, mock.Anything, uk, mock.Anything).Return(
		func(_ context.Context, _ domain.Region, _ domain.Category) (domain.UnitResult, error) {
			attempts++
			return domain.UnitResult{}, errors.New("timeout")
		})
	s.env.OnActivity(s.executor.PublishReport, mock.Anything, mock.Anything).Return(nil)

	s.env.ExecuteWorkflow(s.workerCore.OutboundSync, []domain.Region{uk})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
	s.Equal(3, attempts, "each unit should be attempted once")
}

func (s *SyncWorkflowTestSuite) TestOutboundSync_InvalidRegion() {
	s.env.ExecuteWorkflow(s.workerCore.OutboundSync, []domain.Region{{Label: "XX", Pattern: "("}})

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}

func (s *SyncWorkflowTestSuite) TestOutboundSync_PublishFailureDoesNotFail() {
	s.env.OnActivity(s.executor.SyncOutboundUnit, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.UnitResult{}, nil)
	s.env.OnActivity(s.executor.PublishReport, mock.Anything, mock.Anything).Return(errors.New("nats down"))

	s.env.ExecuteWorkflow(s.workerCore.OutboundSync, []domain.Region{de})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

// ====================================================================================
// InboundSync Tests
// ====================================================================================

func (s *SyncWorkflowTestSuite) TestInboundSync_AdvancesCursor() {
	s.env.OnActivity(s.executor.SyncActivities, mock.Anything).
		Return(domain.UnitResult{Stream: domain.StreamActivities, Stored: 4}, nil).Once()
	s.env.OnActivity(s.executor.SyncPageViews, mock.Anything, true).
		Return(domain.UnitResult{Stream: domain.StreamPageViews, Stored: 2}, nil).Once()
	s.env.OnActivity(s.executor.AdvanceInboundCursor, mock.Anything, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.env.OnActivity(s.executor.PublishReport, mock.Anything, mock.Anything).Return(nil).Once()

	s.env.ExecuteWorkflow(s.workerCore.InboundSync, true)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var report domain.SyncReport
	s.NoError(s.env.GetWorkflowResult(&report))
	s.Equal(domain.DirectionInbound, report.Direction)
	s.Len(report.Units, 2)
}

func (s *SyncWorkflowTestSuite) TestInboundSync_FailedStreamKeepsCursor() {
	s.env.OnActivity(s.executor.SyncActivities, mock.Anything).
		Return(domain.UnitResult{Stream: domain.StreamActivities}, nil)
	s.env.OnActivity(s.executor.SyncPageViews, mock.Anything, false).
		Return(domain.UnitResult{}, errors.New("heartbeat timeout"))
	s.env.OnActivity(s.executor.AdvanceInboundCursor, mock.Anything, mock.Anything).Return(nil).Never()
	s.env.OnActivity(s.executor.PublishReport, mock.Anything, mock.Anything).Return(nil)

	s.env.ExecuteWorkflow(s.workerCore.InboundSync, false)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var report domain.SyncReport
	s.NoError(s.env.GetWorkflowResult(&report))
	s.Equal(1, report.Failures())
	s.Equal(domain.StreamPageViews, report.Units[1].Stream)
}

func TestDayWorkflowID(t *testing.T) {
	day := time.Date(2024, 3, 10, 23, 30, 0, 0, time.FixedZone("CET", 3600))
	if got := workflows.DayWorkflowID(domain.DirectionOutbound, day); got != "crm-sync-outbound-20240310" {
		t.Fatalf("unexpected id %s", got)
	}
}

package workflows_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/mocks"
	"github.com/chainpass/ticketing/internal/notification"
	"github.com/chainpass/ticketing/internal/workflows"
)

// TicketEmailWorkflowTestSuite is the test suite for the ticket email workflow
type TicketEmailWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env      *testsuite.TestWorkflowEnvironment
	ctrl     *gomock.Controller
	executor *mocks.MockNotificationExecutor
	worker   workflows.WorkerNotification
}

func (s *TicketEmailWorkflowTestSuite) SetupTest() {
	_ = logger.Initialize(logger.Config{
		Debug: true,
	})

	s.env = s.NewTestWorkflowEnvironment()
	s.ctrl = gomock.NewController(s.T())
	s.executor = mocks.NewMockNotificationExecutor(s.ctrl)
	s.worker = workflows.NewWorkerNotification(s.executor)
}

func (s *TicketEmailWorkflowTestSuite) TearDownTest() {
	s.env.AssertExpectations(s.T())
	s.ctrl.Finish()
}

func TestTicketEmailWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(TicketEmailWorkflowTestSuite))
}

func testTicketEmailRequest() notification.TicketEmailRequest {
	return notification.TicketEmailRequest{
		RequestID:     11,
		EventID:       7,
		EventName:     "Demo Con",
		WalletAddress: "ADDR1",
		Email:         "stale@example.com",
		AssetID:       42,
	}
}

func (s *TicketEmailWorkflowTestSuite) TestDeliverTicketEmail_Success() {
	req := testTicketEmailRequest()

	s.env.OnActivity(s.executor.LoadTicketRecipient, mock.Anything, uint64(11)).
		Return(&workflows.TicketRecipient{Email: "ada@example.com", WalletAddress: "ADDR1", AssetID: 42}, nil)

	sent := req
	sent.Email = "ada@example.com"
	s.env.OnActivity(s.executor.SendTicketEmail, mock.Anything, sent).Return("msg_1", nil)
	s.env.OnActivity(s.executor.AddAudienceContact, mock.Anything, "ada@example.com").Return(nil)

	s.env.ExecuteWorkflow(s.worker.DeliverTicketEmail, req)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *TicketEmailWorkflowTestSuite) TestDeliverTicketEmail_NoRecipient() {
	s.env.OnActivity(s.executor.LoadTicketRecipient, mock.Anything, uint64(11)).
		Return(nil, nil)

	s.env.ExecuteWorkflow(s.worker.DeliverTicketEmail, testTicketEmailRequest())

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *TicketEmailWorkflowTestSuite) TestDeliverTicketEmail_SendFails() {
	s.env.OnActivity(s.executor.LoadTicketRecipient, mock.Anything, uint64(11)).
		Return(&workflows.TicketRecipient{Email: "ada@example.com"}, nil)
	s.env.OnActivity(s.executor.SendTicketEmail, mock.Anything, mock.Anything).
		Return("", temporal.NewNonRetryableApplicationError("no key", "TicketEmailInvalid", nil))

	s.env.ExecuteWorkflow(s.worker.DeliverTicketEmail, testTicketEmailRequest())

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}

func (s *TicketEmailWorkflowTestSuite) TestDeliverTicketEmail_ContactFailureIsIgnored() {
	s.env.OnActivity(s.executor.LoadTicketRecipient, mock.Anything, uint64(11)).
		Return(&workflows.TicketRecipient{Email: "ada@example.com"}, nil)
	s.env.OnActivity(s.executor.SendTicketEmail, mock.Anything, mock.Anything).Return("msg_1", nil)
	s.env.OnActivity(s.executor.AddAudienceContact, mock.Anything, "ada@example.com").
		Return(errors.New("audience not found"))

	s.env.ExecuteWorkflow(s.worker.DeliverTicketEmail, testTicketEmailRequest())

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

package sendreminder

import (
	"context"
	"errors"
	c "remindbot/internal/core/domain/common"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID("42")

var Now = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	repository *reminder.FakeReminderRepository
	sender     *reminder.FakeSender
	service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.repository = reminder.NewFakeReminderRepository()
	suite.sender = reminder.NewFakeSender()
	suite.service = New(
		suite.logger,
		suite.repository,
		suite.sender,
		func() time.Time { return Now },
	)
}

func TestSendReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) addDue() reminder.Reminder {
	return s.repository.Add(reminder.Reminder{
		UserID:      USER_ID,
		Message:     "buy milk",
		At:          Now.Add(-time.Minute),
		ScheduledAt: c.NewOptional(Now.Add(-time.Minute), true),
		Status:      reminder.StatusPending,
	})
}

func (s *testSuite) TestSendSuccess() {
	due := s.addDue()

	result, err := s.service.Run(context.Background(), Input{ReminderID: due.ID})

	assert := s.Require()
	assert.Nil(err)
	assert.True(result.Sent)
	assert.Equal(reminder.StatusFired, result.Reminder.Status)
	assert.Equal(c.NewOptional(Now, true), result.Reminder.FiredAt)
	assert.False(result.Reminder.ScheduledAt.IsPresent)
	assert.Len(s.sender.Sent, 1)
	assert.Equal("buy milk", s.sender.Sent[0].Message)

	stored, err := s.repository.GetByID(context.Background(), due.ID)
	assert.Nil(err)
	assert.Equal(reminder.StatusFired, stored.Status)
}

func (s *testSuite) TestConcurrentClaimsFireExactlyOnce() {
	due := s.addDue()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.Run(context.Background(), Input{ReminderID: due.ID})
			s.Require().Nil(err)
		}()
	}
	wg.Wait()

	s.Require().Equal(1, s.sender.SentCount())
}

func (s *testSuite) TestSendSkipsNotDueReminder() {
	notDue := s.repository.Add(reminder.Reminder{
		UserID:  USER_ID,
		Message: "snoozed away",
		At:      Now.Add(time.Hour),
		Status:  reminder.StatusPending,
	})

	result, err := s.service.Run(context.Background(), Input{ReminderID: notDue.ID})

	assert := s.Require()
	assert.Nil(err)
	assert.False(result.Sent)
	assert.Empty(s.sender.Sent)

	stored, err := s.repository.GetByID(context.Background(), notDue.ID)
	assert.Nil(err)
	assert.Equal(reminder.StatusPending, stored.Status)
}

func (s *testSuite) TestSendSkipsCanceledReminder() {
	due := s.addDue()
	err := s.repository.Delete(context.Background(), reminder.DeleteInput{ID: due.ID})
	s.Require().Nil(err)

	result, err := s.service.Run(context.Background(), Input{ReminderID: due.ID})

	assert := s.Require()
	assert.Nil(err)
	assert.False(result.Sent)
	assert.Empty(s.sender.Sent)
}

func (s *testSuite) TestDeliveryFailureKeepsReminderFired() {
	due := s.addDue()
	s.sender.Error = errors.New("user unreachable")

	result, err := s.service.Run(context.Background(), Input{ReminderID: due.ID})

	assert := s.Require()
	assert.Nil(err)
	assert.False(result.Sent)
	assert.Len(s.logger.LoggedWithLevel(logging.ERROR), 1)

	stored, err := s.repository.GetByID(context.Background(), due.ID)
	assert.Nil(err)
	assert.Equal(reminder.StatusFired, stored.Status)
}

func (s *testSuite) TestClaimStoreError() {
	due := s.addDue()
	s.repository.UpdateError = errors.New("store unavailable")

	_, err := s.service.Run(context.Background(), Input{ReminderID: due.ID})

	s.Require().NotNil(err)
	_ = due
}

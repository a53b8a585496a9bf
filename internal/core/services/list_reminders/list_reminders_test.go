package listreminders

import (
	"context"
	"errors"
	c "remindbot/internal/core/domain/common"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID("42")

var Now = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	repository *reminder.FakeReminderRepository
	service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.repository = reminder.NewFakeReminderRepository()
	suite.service = New(suite.logger, suite.repository)
}

func TestListRemindersService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestListOrdersByDueTimeAscending() {
	tenOClock := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	nineOClock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	elevenOClock := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{tenOClock, nineOClock, elevenOClock} {
		s.repository.Add(reminder.Reminder{
			UserID:  USER_ID,
			Message: "pending",
			At:      at,
			Status:  reminder.StatusPending,
		})
	}
	s.repository.Add(reminder.Reminder{
		UserID:  USER_ID,
		Message: "already fired",
		At:      Now.Add(-time.Hour),
		FiredAt: c.NewOptional(Now.Add(-time.Hour), true),
		Status:  reminder.StatusFired,
	})
	s.repository.Add(reminder.Reminder{
		UserID:  user.ID("99"),
		Message: "other user",
		At:      Now.Add(time.Minute),
		Status:  reminder.StatusPending,
	})

	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	assert := s.Require()
	assert.Nil(err)
	assert.Len(result.Reminders, 3)
	assert.Equal(nineOClock, result.Reminders[0].At)
	assert.Equal(tenOClock, result.Reminders[1].At)
	assert.Equal(elevenOClock, result.Reminders[2].At)
}

func (s *testSuite) TestListEmptyIsNotAnError() {
	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	assert := s.Require()
	assert.Nil(err)
	assert.Empty(result.Reminders)
}

func (s *testSuite) TestListStoreError() {
	s.repository.ReadError = errors.New("store unavailable")

	_, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	s.Require().NotNil(err)
	s.Require().Len(s.logger.LoggedWithLevel(logging.ERROR), 1)
}

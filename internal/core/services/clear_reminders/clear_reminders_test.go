package clearreminders

import (
	"context"
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

var Now = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

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

func TestClearRemindersService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestClearRemovesEveryStateAndRepeatIsZero() {
	s.repository.Add(reminder.Reminder{
		UserID:  USER_ID,
		Message: "pending",
		At:      Now.Add(time.Hour),
		Status:  reminder.StatusPending,
	})
	s.repository.Add(reminder.Reminder{
		UserID:  USER_ID,
		Message: "fired",
		At:      Now.Add(-time.Hour),
		FiredAt: c.NewOptional(Now.Add(-time.Hour), true),
		Status:  reminder.StatusFired,
	})
	other := s.repository.Add(reminder.Reminder{
		UserID:  user.ID("99"),
		Message: "other user",
		At:      Now.Add(time.Hour),
		Status:  reminder.StatusPending,
	})

	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(uint(2), result.Count)

	// Other users are untouched.
	_, err = s.repository.GetByID(context.Background(), other.ID)
	assert.Nil(err)

	result, err = s.service.Run(context.Background(), Input{UserID: USER_ID})
	assert.Nil(err)
	assert.Equal(uint(0), result.Count)
}

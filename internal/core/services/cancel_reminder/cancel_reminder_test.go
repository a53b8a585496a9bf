package cancelreminder

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

func TestCancelReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCancelDeletesMostRecentlyFired() {
	s.repository.Add(reminder.Reminder{
		UserID:  USER_ID,
		Message: "older",
		At:      Now.Add(-2 * time.Hour),
		FiredAt: c.NewOptional(Now.Add(-2*time.Hour), true),
		Status:  reminder.StatusFired,
	})
	latest := s.repository.Add(reminder.Reminder{
		UserID:  USER_ID,
		Message: "latest",
		At:      Now.Add(-time.Hour),
		FiredAt: c.NewOptional(Now.Add(-time.Hour), true),
		Status:  reminder.StatusFired,
	})

	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(latest.ID, result.Reminder.ID)
	assert.Equal("latest", result.Reminder.Message)

	_, err = s.repository.GetByID(context.Background(), latest.ID)
	assert.ErrorIs(err, reminder.ErrReminderDoesNotExist)

	count, err := s.repository.Count(context.Background(), reminder.ReadOptions{})
	assert.Nil(err)
	assert.Equal(uint(1), count)
}

func (s *testSuite) TestCancelNothingToCancel() {
	s.repository.Add(reminder.Reminder{
		UserID:  USER_ID,
		Message: "pending only",
		At:      Now.Add(time.Hour),
		Status:  reminder.StatusPending,
	})

	_, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	s.Require().ErrorIs(err, reminder.ErrNothingToCancel)
}

func (s *testSuite) TestCancelStoreError() {
	s.repository.GetError = errors.New("store unavailable")

	_, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	s.Require().NotNil(err)
	s.Require().NotErrorIs(err, reminder.ErrNothingToCancel)
}

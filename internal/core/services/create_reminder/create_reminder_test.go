package createreminder

import (
	"context"
	"errors"
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
	parser     *reminder.FakeQueryParser
	scheduler  *reminder.FakeScheduler
	service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.repository = reminder.NewFakeReminderRepository()
	suite.parser = &reminder.FakeQueryParser{}
	suite.scheduler = reminder.NewFakeScheduler()
	suite.service = New(
		suite.logger,
		suite.repository,
		suite.parser,
		suite.scheduler,
		func() time.Time { return Now },
	)
}

func TestCreateReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCreateSuccess() {
	at := Now.Add(25 * time.Hour)
	s.parser.Result = reminder.ParsedQuery{Message: "buy milk", At: at}

	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID, Query: "buy milk tomorrow at 9am"})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(USER_ID, result.Reminder.UserID)
	assert.Equal("buy milk", result.Reminder.Message)
	assert.Equal(at, result.Reminder.At)
	assert.Equal(reminder.StatusPending, result.Reminder.Status)
	assert.False(result.Reminder.ScheduledAt.IsPresent)

	stored, err := s.repository.GetByID(context.Background(), result.Reminder.ID)
	assert.Nil(err)
	assert.Equal(reminder.StatusPending, stored.Status)
	assert.Empty(s.scheduler.Scheduled)
}

func (s *testSuite) TestCreateDueSoonUsesFastPath() {
	at := Now.Add(time.Minute)
	s.parser.Result = reminder.ParsedQuery{Message: "take out trash", At: at}

	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID, Query: "in 1 minute take out trash"})

	assert := s.Require()
	assert.Nil(err)
	assert.True(result.Reminder.ScheduledAt.IsPresent)
	assert.Equal(Now, result.Reminder.ScheduledAt.Value)
	assert.Len(s.scheduler.Scheduled, 1)
	assert.Equal(result.Reminder.ID, s.scheduler.Scheduled[0].ID)
}

func (s *testSuite) TestCreateFastPathFailureIsNotFatal() {
	s.parser.Result = reminder.ParsedQuery{Message: "take out trash", At: Now.Add(time.Minute)}
	s.scheduler.Error = errors.New("queue unavailable")

	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID, Query: "in 1 minute take out trash"})

	assert := s.Require()
	assert.Nil(err)
	assert.NotZero(result.Reminder.ID)
	assert.Len(s.logger.LoggedWithLevel(logging.WARNING), 1)
}

func (s *testSuite) TestCreateError() {
	cases := []struct {
		id            string
		parsed        reminder.ParsedQuery
		parseError    error
		createError   error
		expectedError error
	}{
		{
			id:            "1",
			parseError:    reminder.ErrQueryParsing,
			expectedError: reminder.ErrQueryParsing,
		},
		{
			id:            "2",
			parsed:        reminder.ParsedQuery{Message: "", At: Now.Add(time.Hour)},
			expectedError: reminder.ErrQueryParsing,
		},
		{
			id:            "3",
			parsed:        reminder.ParsedQuery{Message: "buy milk", At: Now},
			expectedError: reminder.ErrQueryParsing,
		},
		{
			id:            "4",
			parsed:        reminder.ParsedQuery{Message: "buy milk", At: Now.Add(-time.Hour)},
			expectedError: reminder.ErrQueryParsing,
		},
		{
			id:            "5",
			parsed:        reminder.ParsedQuery{Message: "buy milk", At: Now.Add(time.Hour)},
			createError:   errors.New("store unavailable"),
			expectedError: errors.New("store unavailable"),
		},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			s.SetupTest()
			s.parser.Result = testcase.parsed
			s.parser.Error = testcase.parseError
			s.repository.CreateError = testcase.createError

			_, err := s.service.Run(context.Background(), Input{UserID: USER_ID, Query: "whatever"})

			assert := s.Require()
			assert.NotNil(err)
			assert.Equal(testcase.expectedError.Error(), err.Error())
			assert.Empty(s.scheduler.Scheduled)
		})
	}
}

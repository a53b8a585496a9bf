package reminder

import (
	"context"
	c "remindbot/internal/core/domain/common"
	"remindbot/internal/core/domain/user"
	"sort"
	"sync"
	"time"
)

// FakeReminderRepository keeps reminders in memory and honors the same
// conditioned-update semantics as the pgx repository, so service tests can
// exercise the optimistic preconditions for real.
type FakeReminderRepository struct {
	CreateError   error
	GetError      error
	ReadError     error
	UpdateError   error
	ScheduleError error
	DeleteError   error

	lock      sync.Mutex
	nextID    ID
	reminders map[ID]Reminder
}

func NewFakeReminderRepository() *FakeReminderRepository {
	return &FakeReminderRepository{reminders: make(map[ID]Reminder)}
}

// Add seeds a reminder bypassing validation, assigning an ID if unset.
func (r *FakeReminderRepository) Add(rem Reminder) Reminder {
	r.lock.Lock()
	defer r.lock.Unlock()
	if rem.ID == 0 {
		r.nextID++
		rem.ID = r.nextID
	} else if rem.ID > r.nextID {
		r.nextID = rem.ID
	}
	r.reminders[rem.ID] = rem
	return rem
}

func (r *FakeReminderRepository) Create(ctx context.Context, input CreateInput) (Reminder, error) {
	if r.CreateError != nil {
		return Reminder{}, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.nextID++
	rem := Reminder{
		ID:          r.nextID,
		UserID:      input.UserID,
		Message:     input.Message,
		CreatedAt:   input.CreatedAt,
		At:          input.At,
		ScheduledAt: input.ScheduledAt,
		Status:      input.Status,
	}
	r.reminders[rem.ID] = rem
	return rem, nil
}

func (r *FakeReminderRepository) GetByID(ctx context.Context, id ID) (Reminder, error) {
	if r.GetError != nil {
		return Reminder{}, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rem, ok := r.reminders[id]
	if !ok {
		return Reminder{}, ErrReminderDoesNotExist
	}
	return rem, nil
}

func (r *FakeReminderRepository) GetLatestFired(ctx context.Context, userID user.ID) (Reminder, error) {
	if r.GetError != nil {
		return Reminder{}, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	var latest Reminder
	found := false
	for _, rem := range r.reminders {
		if rem.UserID != userID || rem.Status != StatusFired || !rem.FiredAt.IsPresent {
			continue
		}
		if !found || rem.FiredAt.Value.After(latest.FiredAt.Value) {
			latest = rem
			found = true
		}
	}
	if !found {
		return Reminder{}, ErrReminderDoesNotExist
	}
	return latest, nil
}

func (r *FakeReminderRepository) Read(ctx context.Context, options ReadOptions) ([]Reminder, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	reminders := make([]Reminder, 0)
	for _, rem := range r.reminders {
		if matches(rem, options) {
			reminders = append(reminders, rem)
		}
	}
	switch options.OrderBy {
	case OrderByAtAsc:
		sort.Slice(reminders, func(i, j int) bool { return reminders[i].At.Before(reminders[j].At) })
	case OrderByAtDesc:
		sort.Slice(reminders, func(i, j int) bool { return reminders[i].At.After(reminders[j].At) })
	case OrderByFiredAtDesc:
		sort.Slice(reminders, func(i, j int) bool {
			return reminders[i].FiredAt.Value.After(reminders[j].FiredAt.Value)
		})
	}
	if options.Limit.IsPresent && uint(len(reminders)) > options.Limit.Value {
		reminders = reminders[:options.Limit.Value]
	}
	return reminders, nil
}

func (r *FakeReminderRepository) Count(ctx context.Context, options ReadOptions) (uint, error) {
	if r.ReadError != nil {
		return 0, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	var count uint
	for _, rem := range r.reminders {
		if matches(rem, options) {
			count++
		}
	}
	return count, nil
}

func (r *FakeReminderRepository) Update(ctx context.Context, input UpdateInput) (Reminder, error) {
	if r.UpdateError != nil {
		return Reminder{}, r.UpdateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rem, ok := r.reminders[input.ID]
	if !ok {
		return Reminder{}, ErrReminderDoesNotExist
	}
	if input.ExpectStatus.IsPresent && rem.Status != input.ExpectStatus.Value {
		return Reminder{}, ErrReminderDoesNotExist
	}
	if input.ExpectFiredAt.IsPresent &&
		(!rem.FiredAt.IsPresent || !rem.FiredAt.Value.Equal(input.ExpectFiredAt.Value)) {
		return Reminder{}, ErrReminderDoesNotExist
	}
	if input.ExpectDueBy.IsPresent && rem.At.After(input.ExpectDueBy.Value) {
		return Reminder{}, ErrReminderDoesNotExist
	}
	if input.DoAtUpdate {
		rem.At = input.At
	}
	if input.DoStatusUpdate {
		rem.Status = input.Status
	}
	if input.DoFiredAtUpdate {
		rem.FiredAt = input.FiredAt
	}
	if input.DoScheduledAtUpdate {
		rem.ScheduledAt = input.ScheduledAt
	}
	r.reminders[rem.ID] = rem
	return rem, nil
}

func (r *FakeReminderRepository) Schedule(ctx context.Context, input ScheduleInput) ([]Reminder, error) {
	if r.ScheduleError != nil {
		return nil, r.ScheduleError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	claimed := make([]Reminder, 0)
	for id, rem := range r.reminders {
		if rem.Status != StatusPending || rem.At.After(input.AtBefore) {
			continue
		}
		if rem.ScheduledAt.IsPresent && rem.ScheduledAt.Value.After(input.RequeueBefore) {
			continue
		}
		rem.ScheduledAt = c.NewOptional(input.ScheduledAt, true)
		r.reminders[id] = rem
		claimed = append(claimed, rem)
	}
	sort.Slice(claimed, func(i, j int) bool { return claimed[i].At.Before(claimed[j].At) })
	return claimed, nil
}

func (r *FakeReminderRepository) Delete(ctx context.Context, input DeleteInput) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rem, ok := r.reminders[input.ID]
	if !ok {
		return ErrReminderDoesNotExist
	}
	if input.ExpectStatus.IsPresent && rem.Status != input.ExpectStatus.Value {
		return ErrReminderDoesNotExist
	}
	if input.ExpectFiredAt.IsPresent &&
		(!rem.FiredAt.IsPresent || !rem.FiredAt.Value.Equal(input.ExpectFiredAt.Value)) {
		return ErrReminderDoesNotExist
	}
	delete(r.reminders, input.ID)
	return nil
}

func (r *FakeReminderRepository) DeleteByUserID(ctx context.Context, userID user.ID) (uint, error) {
	if r.DeleteError != nil {
		return 0, r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	var count uint
	for id, rem := range r.reminders {
		if rem.UserID == userID {
			delete(r.reminders, id)
			count++
		}
	}
	return count, nil
}

func (r *FakeReminderRepository) DeleteFiredBefore(ctx context.Context, firedBefore time.Time) (uint, error) {
	if r.DeleteError != nil {
		return 0, r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	var count uint
	for id, rem := range r.reminders {
		if rem.Status == StatusFired && rem.FiredAt.IsPresent && rem.FiredAt.Value.Before(firedBefore) {
			delete(r.reminders, id)
			count++
		}
	}
	return count, nil
}

func matches(rem Reminder, options ReadOptions) bool {
	if options.UserIDEquals.IsPresent && rem.UserID != options.UserIDEquals.Value {
		return false
	}
	if options.StatusEquals.IsPresent && rem.Status != options.StatusEquals.Value {
		return false
	}
	return true
}

type FakeScheduler struct {
	Scheduled []Reminder
	Error     error
	lock      sync.Mutex
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

func (s *FakeScheduler) ScheduleReminder(ctx context.Context, r Reminder) error {
	if s.Error != nil {
		return s.Error
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Scheduled = append(s.Scheduled, r)
	return nil
}

type FakeSender struct {
	Sent  []Reminder
	Error error
	lock  sync.Mutex
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (s *FakeSender) SendReminder(ctx context.Context, r Reminder) error {
	s.lock.Lock()
	s.Sent = append(s.Sent, r)
	s.lock.Unlock()
	return s.Error
}

func (s *FakeSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

type FakeQueryParser struct {
	Result ParsedQuery
	Error  error
}

func (p *FakeQueryParser) Parse(ctx context.Context, query string, now time.Time) (ParsedQuery, error) {
	if p.Error != nil {
		return ParsedQuery{}, p.Error
	}
	return p.Result, nil
}

type FakeSnoozeParser struct {
	Result time.Time
	Error  error
}

func (p *FakeSnoozeParser) ParseSnooze(ctx context.Context, query string, now time.Time) (time.Time, error) {
	if p.Error != nil {
		return time.Time{}, p.Error
	}
	return p.Result, nil
}

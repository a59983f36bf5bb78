package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"enrollhub/internal/registration/models"
	id "enrollhub/pkg/domain"
	"enrollhub/pkg/platform/sentinel"
)

type RegistrationStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *RegistrationStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestRegistrationStoreSuite(t *testing.T) {
	suite.Run(t, new(RegistrationStoreSuite))
}

func (s *RegistrationStoreSuite) newRegistration(userID id.UserID, createdAt time.Time) *models.Registration {
	return models.NewRegistration(id.NewRegistrationID(), userID, id.NewProgramID(), nil, createdAt)
}

func (s *RegistrationStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds registration by ID", func() {
		registration := s.newRegistration(id.NewUserID(), time.Now())
		s.Require().NoError(s.store.Create(s.ctx, registration))

		found, err := s.store.FindByID(s.ctx, registration.ID)
		s.Require().NoError(err)
		s.Equal(registration.UserID, found.UserID)
		s.Equal(models.StatusPending, found.Status)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.NewRegistrationID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("Exists reflects store contents", func() {
		registration := s.newRegistration(id.NewUserID(), time.Now())
		s.Require().NoError(s.store.Create(s.ctx, registration))

		exists, err := s.store.Exists(s.ctx, registration.ID)
		s.Require().NoError(err)
		s.True(exists)

		exists, err = s.store.Exists(s.ctx, id.NewRegistrationID())
		s.Require().NoError(err)
		s.False(exists)
	})
}

func (s *RegistrationStoreSuite) TestUpdateStatus() {
	s.Run("overwrites status and notes atomically", func() {
		registration := s.newRegistration(id.NewUserID(), time.Now())
		note := "initial"
		registration.Notes = &note
		s.Require().NoError(s.store.Create(s.ctx, registration))

		now := time.Now().Add(time.Minute)
		updated, err := s.store.UpdateStatus(s.ctx, registration.ID, models.StatusVerified, nil, now)
		s.Require().NoError(err)
		s.Equal(models.StatusVerified, updated.Status)
		s.Nil(updated.Notes, "nil notes erase prior notes")
		s.WithinDuration(now, updated.UpdatedAt, time.Second)
	})

	s.Run("returns ErrNotFound and leaves store unchanged for unknown ID", func() {
		before, err := s.store.ListAll(s.ctx)
		s.Require().NoError(err)

		_, err = s.store.UpdateStatus(s.ctx, id.NewRegistrationID(), models.StatusVerified, nil, time.Now())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		after, err := s.store.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Len(after, len(before))
	})

	s.Run("returned registration does not alias store memory", func() {
		registration := s.newRegistration(id.NewUserID(), time.Now())
		s.Require().NoError(s.store.Create(s.ctx, registration))

		updated, err := s.store.UpdateStatus(s.ctx, registration.ID, models.StatusVerified, nil, time.Now())
		s.Require().NoError(err)
		updated.Status = models.StatusRejected

		found, err := s.store.FindByID(s.ctx, registration.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusVerified, found.Status)
	})
}

func (s *RegistrationStoreSuite) TestListings() {
	s.Run("lists by user newest first", func() {
		userID := id.NewUserID()
		base := time.Now()
		older := s.newRegistration(userID, base.Add(-time.Hour))
		newer := s.newRegistration(userID, base)
		other := s.newRegistration(id.NewUserID(), base)
		s.Require().NoError(s.store.Create(s.ctx, older))
		s.Require().NoError(s.store.Create(s.ctx, newer))
		s.Require().NoError(s.store.Create(s.ctx, other))

		listed, err := s.store.ListByUser(s.ctx, userID)
		s.Require().NoError(err)
		s.Require().Len(listed, 2)
		s.Equal(newer.ID, listed[0].ID)
		s.Equal(older.ID, listed[1].ID)
	})

	s.Run("ListAll returns every registration", func() {
		listed, err := s.store.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Len(listed, 3)
	})
}

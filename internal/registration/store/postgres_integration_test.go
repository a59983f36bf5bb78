//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"enrollhub/internal/registration/models"
	"enrollhub/internal/registration/store"
	usermodels "enrollhub/internal/user/models"
	userstore "enrollhub/internal/user/store"
	id "enrollhub/pkg/domain"
	"enrollhub/pkg/platform/sentinel"
	"enrollhub/pkg/testutil/containers"
)

type PostgresRegistrationSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.Postgres
	users *userstore.Postgres
	ctx   context.Context
}

func TestPostgresRegistrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRegistrationSuite))
}

func (s *PostgresRegistrationSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.pg.DB)
	s.users = userstore.NewPostgres(s.pg.DB)
	s.ctx = context.Background()
}

func (s *PostgresRegistrationSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateAll(s.ctx))
}

func (s *PostgresRegistrationSuite) seedUser() id.UserID {
	user := usermodels.NewUser(id.NewUserID(), id.NewUserID().String()+"@example.com", "hash", "Test User", "+62812", nil, usermodels.RoleStudent, time.Now().UTC())
	s.Require().NoError(s.users.Create(s.ctx, user))
	return user.ID
}

func (s *PostgresRegistrationSuite) seedProgram() id.ProgramID {
	programID := id.NewProgramID()
	_, err := s.pg.DB.ExecContext(s.ctx, `
		INSERT INTO training_programs (id, name, description, duration_hours, price, max_participants, start_date, end_date, is_active, created_at, updated_at)
		VALUES ($1, 'Go Fundamentals', 'desc', 40, 1500.00, 25, NOW(), NOW() + INTERVAL '30 days', true, NOW(), NOW())
	`, programID.String())
	s.Require().NoError(err)
	return programID
}

func (s *PostgresRegistrationSuite) newRegistration() *models.Registration {
	return models.NewRegistration(id.NewRegistrationID(), s.seedUser(), s.seedProgram(), nil, time.Now().UTC())
}

func (s *PostgresRegistrationSuite) TestCreateAndFind() {
	registration := s.newRegistration()
	s.Require().NoError(s.store.Create(s.ctx, registration))

	found, err := s.store.FindByID(s.ctx, registration.ID)
	s.Require().NoError(err)
	s.Equal(registration.UserID, found.UserID)
	s.Equal(models.StatusPending, found.Status)
}

func (s *PostgresRegistrationSuite) TestCreateRejectsMissingReferences() {
	registration := models.NewRegistration(id.NewRegistrationID(), id.NewUserID(), id.NewProgramID(), nil, time.Now().UTC())
	err := s.store.Create(s.ctx, registration)
	s.Require().ErrorIs(err, sentinel.ErrReferenceMissing)
}

func (s *PostgresRegistrationSuite) TestUpdateStatus() {
	registration := s.newRegistration()
	note := "initial"
	registration.Notes = &note
	s.Require().NoError(s.store.Create(s.ctx, registration))

	now := time.Now().UTC().Truncate(time.Microsecond)
	updated, err := s.store.UpdateStatus(s.ctx, registration.ID, models.StatusVerified, nil, now)
	s.Require().NoError(err)
	s.Equal(models.StatusVerified, updated.Status)
	s.Nil(updated.Notes)
	s.WithinDuration(now, updated.UpdatedAt, time.Second)
}

func (s *PostgresRegistrationSuite) TestUpdateStatusNotFound() {
	_, err := s.store.UpdateStatus(s.ctx, id.NewRegistrationID(), models.StatusVerified, nil, time.Now().UTC())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresRegistrationSuite) TestListByUserNewestFirst() {
	userID := s.seedUser()
	programID := s.seedProgram()
	base := time.Now().UTC()

	older := models.NewRegistration(id.NewRegistrationID(), userID, programID, nil, base.Add(-time.Hour))
	newer := models.NewRegistration(id.NewRegistrationID(), userID, programID, nil, base)
	s.Require().NoError(s.store.Create(s.ctx, older))
	s.Require().NoError(s.store.Create(s.ctx, newer))

	listed, err := s.store.ListByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal(newer.ID, listed[0].ID)
	s.Equal(older.ID, listed[1].ID)
}

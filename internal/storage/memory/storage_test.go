package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mortinious/tiles-game/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:        "player-1",
		Name:      "Alice",
		IsGuest:   true,
		CreatedAt: time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.Name, retrieved.Name)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", Name: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayersSortedByCreation() {
	older := &model.Player{ID: "p1", Name: "Old", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &model.Player{ID: "p2", Name: "New", CreatedAt: time.Now()}
	_ = s.storage.SavePlayer(s.ctx, newer)
	_ = s.storage.SavePlayer(s.ctx, older)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
	s.Equal(model.PlayerID("p1"), players[0].ID)
	s.Equal(model.PlayerID("p2"), players[1].ID)
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID: "player-1",
		Username: "alice",
	}
	_ = s.storage.SaveRegisteredPlayer(s.ctx, rp)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.PlayerID)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	sess := &model.GameSession{
		ID:        "abc12345",
		Name:      "Test Game",
		Stage:     model.StageReadyCheck,
		Board:     model.NewBoard(10, 10),
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveSession(s.ctx, sess)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "abc12345")
	s.Require().NoError(err)
	s.Equal(sess.Name, retrieved.Name)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	sess := &model.GameSession{ID: "abc12345", Board: model.NewBoard(10, 10)}
	_ = s.storage.SaveSession(s.ctx, sess)

	err := s.storage.DeleteSession(s.ctx, "abc12345")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "abc12345")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionExists() {
	exists, err := s.storage.SessionExists(s.ctx, "abc12345")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveSession(s.ctx, &model.GameSession{ID: "abc12345"})

	exists, err = s.storage.SessionExists(s.ctx, "abc12345")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestListSessionsSortedByCreation() {
	older := &model.GameSession{ID: "s1", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &model.GameSession{ID: "s2", CreatedAt: time.Now()}
	_ = s.storage.SaveSession(s.ctx, newer)
	_ = s.storage.SaveSession(s.ctx, older)

	sessions, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Len(sessions, 2)
	s.Equal(model.SessionID("s1"), sessions[0].ID)
	s.Equal(model.SessionID("s2"), sessions[1].ID)
}

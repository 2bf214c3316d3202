package postgres

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/pruve-api/internal/domain/entity"
)

// newTestDB создает изолированную SQLite-базу в памяти со схемой приложения
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "не удалось открыть SQLite в памяти")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// одна база в памяти живет только в пределах одного соединения
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Poll{},
		&entity.PollOption{},
		&entity.PollAnswer{},
		&entity.PollVote{},
		&entity.Team{},
		&entity.MatchSchedule{},
		&entity.MatchVote{},
		&entity.Comment{},
		&entity.League{},
		&entity.LeagueMembership{},
		&entity.LeagueMatchup{},
	)
	require.NoError(t, err, "не удалось создать схему")

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, name string) *entity.User {
	t.Helper()
	user := &entity.User{Email: email, Name: name, Picture: "https://img.pruve.app/" + name + ".png"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPoll(t *testing.T, db *gorm.DB, creatorID uint, question string, createdAt time.Time, options ...string) (*entity.Poll, []entity.PollOption) {
	t.Helper()
	poll := &entity.Poll{Type: entity.PollTypeWildcard, UserID: creatorID, Question: question, CreatedAt: createdAt}
	require.NoError(t, db.Create(poll).Error)

	opts := make([]entity.PollOption, 0, len(options))
	for _, text := range options {
		opt := entity.PollOption{PollID: poll.ID, OptionText: text}
		require.NoError(t, db.Create(&opt).Error)
		opts = append(opts, opt)
	}
	return poll, opts
}

func seedVote(t *testing.T, db *gorm.DB, pollID, optionID, userID uint) {
	t.Helper()
	require.NoError(t, db.Create(&entity.PollVote{PollID: pollID, OptionID: optionID, UserID: userID}).Error)
}

func seedMatch(t *testing.T, db *gorm.DB, number uint, matchTime time.Time) (*entity.MatchSchedule, entity.Team, entity.Team) {
	t.Helper()
	home := entity.Team{Name: "Chennai Super Kings", NickName: "CSK", Icon: "csk.png"}
	away := entity.Team{Name: "Mumbai Indians", NickName: "MI", Icon: "mi.png"}
	require.NoError(t, db.Create(&home).Error)
	require.NoError(t, db.Create(&away).Error)

	match := &entity.MatchSchedule{
		MatchNumber: number,
		Team1ID:     home.ID,
		Team2ID:     away.ID,
		MatchTime:   matchTime,
		Venue:       "Chepauk",
		Type:        "match",
	}
	require.NoError(t, db.Create(match).Error)
	return match, home, away
}

package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pruve-api/internal/domain/entity"
)

func TestConvertComments_MarksSelectedTeam(t *testing.T) {
	// Arrange
	voted := uint(2)
	rows := []entity.CommentRow{
		{
			CommentID:     1,
			CommentType:   entity.CommentTypeConversation,
			CommentText:   "go mi",
			CreatedAt:     time.Date(2024, 4, 5, 19, 30, 0, 0, time.UTC),
			UserID:        7,
			UserName:      "fan",
			VotedTeamID:   &voted,
			Team1ID:       1,
			Team1NickName: "CSK",
			Team2ID:       2,
			Team2NickName: "MI",
		},
		{CommentID: 2, Team1ID: 1, Team1NickName: "CSK", Team2ID: 2, Team2NickName: "MI"},
	}

	// Act
	comments := ConvertComments(rows)

	// Assert
	require.Len(t, comments, 2)
	assert.Equal(t, "2024-04-05 19:30:00", comments[0].Time)
	assert.False(t, comments[0].Teams[0].IsUserSelected)
	assert.True(t, comments[0].Teams[1].IsUserSelected, "Автор выбрал MI")
	assert.Equal(t, uint(7), comments[0].UserDetails.UID)
	assert.False(t, comments[1].Teams[0].IsUserSelected, "Без голоса ни одна команда не выбрана")
	assert.False(t, comments[1].Teams[1].IsUserSelected)
}

func TestConvertMatchCards_Empty(t *testing.T) {
	cards := ConvertMatchCards(nil)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

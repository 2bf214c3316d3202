package helper

import (
	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/handler/dto"
)

// CommentTimeLayout - формат времени комментария, который ожидает фронтенд
const CommentTimeLayout = "2006-01-02 15:04:05"

// ConvertMatchCards преобразует карточки матчей в DTO
func ConvertMatchCards(cards []entity.MatchCard) []dto.MatchCardDTO {
	converted := make([]dto.MatchCardDTO, len(cards))
	for i, c := range cards {
		converted[i] = dto.MatchCardDTO{
			MatchNumber: c.MatchNumber,
			Team1ID:     c.Team1ID,
			Team1Name:   c.Team1Name,
			Team1Icon:   c.Team1Icon,
			Team1Votes:  c.Team1Votes,
			Team2ID:     c.Team2ID,
			Team2Name:   c.Team2Name,
			Team2Icon:   c.Team2Icon,
			Team2Votes:  c.Team2Votes,
			MatchTime:   c.MatchTime,
			Venue:       c.Venue,
			Type:        c.Type,
			Description: c.Description,
			BookTickets: c.BookTickets,
		}
	}
	return converted
}

// ConvertComments преобразует строки комментариев в DTO.
// Для каждой из двух команд матча отмечается, выбрал ли ее автор комментария.
func ConvertComments(rows []entity.CommentRow) []dto.CommentDTO {
	converted := make([]dto.CommentDTO, len(rows))
	for i, r := range rows {
		converted[i] = dto.CommentDTO{
			CommentID:   r.CommentID,
			Type:        r.CommentType,
			MatchNumber: r.MatchNumber,
			UserDetails: dto.CommentUserDTO{
				UID:     r.UserID,
				Email:   r.UserEmail,
				Name:    r.UserName,
				Picture: r.UserPicture,
			},
			Time: r.CreatedAt.Format(CommentTimeLayout),
			Teams: []dto.CommentTeamDTO{
				{NickName: r.Team1NickName, IsUserSelected: selected(r.VotedTeamID, r.Team1ID)},
				{NickName: r.Team2NickName, IsUserSelected: selected(r.VotedTeamID, r.Team2ID)},
			},
			CommentText: r.CommentText,
		}
	}
	return converted
}

func selected(voted *uint, teamID uint) bool {
	return voted != nil && *voted == teamID
}

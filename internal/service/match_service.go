package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/domain/repository"
	"github.com/yourusername/pruve-api/internal/metrics"
	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
)

const scheduleCacheKey = "matchschedule"

// VoteAndCommentInput - выбор команды в матче и необязательный комментарий
type VoteAndCommentInput struct {
	MatchNumber uint
	UserID      uint
	TeamID      uint
	CommentText string
}

// VoteAndCommentResult - сохраненный голос и комментарий (nil, если текст пустой)
type VoteAndCommentResult struct {
	Vote    entity.MatchVote
	Comment *entity.Comment
}

// MatchService предоставляет методы для работы с расписанием, голосами и комментариями
type MatchService struct {
	matchRepo   repository.MatchRepository
	cacheRepo   repository.CacheRepository
	scheduleTTL time.Duration
	metrics     *metrics.Metrics
}

// NewMatchService создает новый сервис матчей. cacheRepo может быть nil, если Redis отключен.
func NewMatchService(
	matchRepo repository.MatchRepository,
	cacheRepo repository.CacheRepository,
	scheduleTTL time.Duration,
	m *metrics.Metrics,
) *MatchService {
	return &MatchService{
		matchRepo:   matchRepo,
		cacheRepo:   cacheRepo,
		scheduleTTL: scheduleTTL,
		metrics:     m,
	}
}

// ListSchedule возвращает все матчи с командами и голосами, используя кеш
func (s *MatchService) ListSchedule() ([]entity.MatchCard, error) {
	if s.cacheRepo != nil {
		var cached []entity.MatchCard
		err := s.cacheRepo.GetJSON(scheduleCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[MatchService] Ошибка чтения расписания из кеша: %v", err)
		}
	}

	cards, err := s.matchRepo.ListCards(0)
	if err != nil {
		return nil, storageError("list schedule", err)
	}
	if cards == nil {
		cards = []entity.MatchCard{}
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(scheduleCacheKey, cards, s.scheduleTTL); err != nil {
			log.Printf("[MatchService] Ошибка записи расписания в кеш: %v", err)
		}
	}
	return cards, nil
}

// ListMatchCards возвращает матчи, в которых пользователь еще не выбрал команду
func (s *MatchService) ListMatchCards(userID uint) ([]entity.MatchCard, error) {
	if userID == 0 {
		return nil, validationError("user id is required")
	}
	cards, err := s.matchRepo.ListCards(userID)
	if err != nil {
		return nil, storageError("list match cards", err)
	}
	if cards == nil {
		cards = []entity.MatchCard{}
	}
	return cards, nil
}

// VoteAndComment сохраняет выбор команды и, если текст не пустой, комментарий в одной транзакции
func (s *MatchService) VoteAndComment(input VoteAndCommentInput) (*VoteAndCommentResult, error) {
	text := strings.TrimSpace(input.CommentText)
	result := &VoteAndCommentResult{}

	err := s.matchRepo.Transaction(func(tx repository.MatchRepository) error {
		match, err := tx.GetMatch(input.MatchNumber)
		if err != nil {
			return err
		}
		if !match.HasTeam(input.TeamID) {
			return validationError("team %d does not play in match %d", input.TeamID, input.MatchNumber)
		}

		result.Vote = entity.MatchVote{
			TeamID:      input.TeamID,
			MatchNumber: input.MatchNumber,
			UserID:      input.UserID,
		}
		if err := tx.CreateVote(&result.Vote); err != nil {
			return err
		}

		if text == "" {
			return nil
		}
		voteID := result.Vote.ID
		comment := &entity.Comment{
			Type:        entity.CommentTypeConversation,
			UserID:      input.UserID,
			MatchNumber: input.MatchNumber,
			VoteID:      &voteID,
			CommentText: text,
		}
		if err := tx.CreateComment(comment); err != nil {
			return err
		}
		result.Comment = comment
		return nil
	})
	s.metrics.MatchVote(err)
	if err != nil {
		return nil, storageError("vote and comment", err)
	}

	s.invalidateSchedule()
	log.Printf("[MatchService] Пользователь %d выбрал команду %d в матче %d", input.UserID, input.TeamID, input.MatchNumber)
	return result, nil
}

func (s *MatchService) invalidateSchedule() {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(scheduleCacheKey); err != nil {
		log.Printf("[MatchService] Ошибка инвалидации кеша расписания: %v", err)
	}
}

// ListComments возвращает комментарии к матчу, старые первыми
func (s *MatchService) ListComments(matchNumber uint) ([]entity.CommentRow, error) {
	if _, err := s.matchRepo.GetMatch(matchNumber); err != nil {
		return nil, storageError("get match", err)
	}
	rows, err := s.matchRepo.ListCommentRows(repository.CommentFilter{MatchNumber: matchNumber})
	if err != nil {
		return nil, storageError("list comments", err)
	}
	if rows == nil {
		rows = []entity.CommentRow{}
	}
	return rows, nil
}

// ListAllComments возвращает комментарии ко всем матчам, новые первыми
func (s *MatchService) ListAllComments() ([]entity.CommentRow, error) {
	rows, err := s.matchRepo.ListCommentRows(repository.CommentFilter{NewestFirst: true})
	if err != nil {
		return nil, storageError("list all comments", err)
	}
	if rows == nil {
		rows = []entity.CommentRow{}
	}
	return rows, nil
}

package service

import (
	"log"
	"strings"

	"github.com/yourusername/pruve-api/internal/config"
	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/domain/repository"
	"github.com/yourusername/pruve-api/internal/metrics"
	"github.com/yourusername/pruve-api/internal/pkg/textutil"
)

// ResultsBroadcaster рассылает текущие результаты опроса подписчикам live-обновлений
type ResultsBroadcaster interface {
	BroadcastPollResults(pollID uint, counts []entity.OptionVoteCount) error
}

// CreatePollInput - данные для создания опроса
type CreatePollInput struct {
	UserID   uint
	Question string
	Options  []string
	Answer   string
}

// CreatedPoll - результат создания опроса
type CreatedPoll struct {
	PollID         uint
	Question       string
	Options        []entity.PollOption
	AnswerOptionID uint
}

// PollService предоставляет методы для работы с опросами
type PollService struct {
	pollRepo    repository.PollRepository
	userRepo    repository.UserRepository
	broadcaster ResultsBroadcaster
	metrics     *metrics.Metrics
	config      config.PollsConfig
}

// NewPollService создает новый сервис опросов.
// broadcaster и metrics могут быть nil.
func NewPollService(
	pollRepo repository.PollRepository,
	userRepo repository.UserRepository,
	broadcaster ResultsBroadcaster,
	m *metrics.Metrics,
	cfg config.PollsConfig,
) *PollService {
	return &PollService{
		pollRepo:    pollRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
		metrics:     m,
		config:      cfg,
	}
}

// CreatePoll создает опрос, его варианты, ответ автора и голос автора в одной транзакции
func (s *PollService) CreatePoll(input CreatePollInput) (*CreatedPoll, error) {
	if _, err := s.userRepo.GetByID(input.UserID); err != nil {
		return nil, storageError("get poll creator", err)
	}

	question, options, answer, err := s.normalizePollInput(input)
	if err != nil {
		return nil, err
	}

	created := &CreatedPoll{Question: question}
	err = s.pollRepo.Transaction(func(tx repository.PollRepository) error {
		poll := &entity.Poll{
			Type:     entity.PollTypeWildcard,
			UserID:   input.UserID,
			Question: question,
		}
		if err := tx.CreatePoll(poll); err != nil {
			return err
		}

		rows := make([]entity.PollOption, len(options))
		for i, text := range options {
			rows[i] = entity.PollOption{PollID: poll.ID, OptionText: text}
		}
		if err := tx.CreateOptions(rows); err != nil {
			return err
		}

		// при повторяющихся вариантах ответ привязывается к первому совпадению
		var answerOption *entity.PollOption
		for i := range rows {
			if rows[i].OptionText == answer {
				answerOption = &rows[i]
				break
			}
		}
		if answerOption == nil {
			return validationError("answer %q does not match any option", answer)
		}

		if err := tx.CreateAnswer(&entity.PollAnswer{
			PollID:     poll.ID,
			CreatorID:  input.UserID,
			OptionID:   answerOption.ID,
			AnswerText: answer,
		}); err != nil {
			return err
		}

		if err := tx.CreateVote(&entity.PollVote{
			PollID:   poll.ID,
			OptionID: answerOption.ID,
			UserID:   input.UserID,
		}); err != nil {
			return err
		}

		created.PollID = poll.ID
		created.Options = rows
		created.AnswerOptionID = answerOption.ID
		return nil
	})
	if err != nil {
		return nil, storageError("create poll", err)
	}

	s.metrics.PollCreated()
	log.Printf("[PollService] Пользователь %d создал опрос %d (%d вариантов)", input.UserID, created.PollID, len(options))
	return created, nil
}

// normalizePollInput проверяет и нормализует вопрос, варианты и ответ
func (s *PollService) normalizePollInput(input CreatePollInput) (string, []string, string, error) {
	question := textutil.Normalize(input.Question)
	if question == "" {
		return "", nil, "", validationError("question is required")
	}

	if len(input.Options) == 0 {
		return "", nil, "", validationError("at least one option is required")
	}
	if s.config.MaxOptions > 0 && len(input.Options) > s.config.MaxOptions {
		return "", nil, "", validationError("at most %d options are allowed", s.config.MaxOptions)
	}

	options := make([]string, 0, len(input.Options))
	for _, raw := range input.Options {
		text := textutil.Normalize(raw)
		if text == "" {
			return "", nil, "", validationError("options must not be blank")
		}
		options = append(options, text)
	}

	answer := textutil.Normalize(input.Answer)
	if answer == "" {
		return "", nil, "", validationError("answer is required")
	}
	return question, options, answer, nil
}

// Vote регистрирует голос пользователя и рассылает обновленные результаты
func (s *PollService) Vote(pollID, optionID, userID uint) error {
	err := s.pollRepo.Transaction(func(tx repository.PollRepository) error {
		exists, err := tx.Exists(pollID)
		if err != nil {
			return err
		}
		if !exists {
			return notFoundError("poll %d", pollID)
		}

		belongs, err := tx.OptionBelongsToPoll(pollID, optionID)
		if err != nil {
			return err
		}
		if !belongs {
			return validationError("option %d does not belong to poll %d", optionID, pollID)
		}

		voted, err := tx.HasUserVoted(pollID, userID)
		if err != nil {
			return err
		}
		if voted {
			return conflictError("user %d already voted on poll %d", userID, pollID)
		}

		return tx.CreateVote(&entity.PollVote{PollID: pollID, OptionID: optionID, UserID: userID})
	})
	s.metrics.PollVote(err)
	if err != nil {
		return storageError("vote", err)
	}

	s.broadcastResults(pollID)
	return nil
}

// broadcastResults отправляет live-результаты. Ошибки только логируются: голос уже сохранен.
func (s *PollService) broadcastResults(pollID uint) {
	if s.broadcaster == nil {
		return
	}
	counts, err := s.pollRepo.CountVotesByOption(pollID)
	if err != nil {
		log.Printf("[PollService] Не удалось подсчитать голоса опроса %d для рассылки: %v", pollID, err)
		return
	}
	if err := s.broadcaster.BroadcastPollResults(pollID, counts); err != nil {
		log.Printf("[PollService] Ошибка рассылки результатов опроса %d: %v", pollID, err)
	}
}

// GetPoll возвращает результаты одного опроса с точки зрения зрителя
func (s *PollService) GetPoll(pollID, viewerID uint) (*entity.PollResults, error) {
	rows, err := s.pollRepo.GetResultRows(repository.PollFilter{PollID: pollID})
	if err != nil {
		return nil, storageError("get poll", err)
	}
	results := assemblePollResults(rows, viewerID, s.config.PredictionAccuracyDefault)
	if len(results) == 0 {
		return nil, notFoundError("poll %d", pollID)
	}
	return &results[0], nil
}

// ListUserPolls возвращает опросы пользователя, новые первыми. Зрителем считается сам автор.
func (s *PollService) ListUserPolls(userID uint) ([]entity.PollResults, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, storageError("get user", err)
	}
	rows, err := s.pollRepo.GetResultRows(repository.PollFilter{CreatorID: userID})
	if err != nil {
		return nil, storageError("list user polls", err)
	}
	return assemblePollResults(rows, userID, s.config.PredictionAccuracyDefault), nil
}

// ListFeed возвращает все опросы с точки зрения зрителя, новые первыми
func (s *PollService) ListFeed(viewerID uint) ([]entity.PollResults, error) {
	rows, err := s.pollRepo.GetResultRows(repository.PollFilter{})
	if err != nil {
		return nil, storageError("list polls", err)
	}
	return assemblePollResults(rows, viewerID, s.config.PredictionAccuracyDefault), nil
}

// LiveCounts возвращает текущее количество голосов по вариантам для снимка WebSocket
func (s *PollService) LiveCounts(pollID uint) ([]entity.OptionVoteCount, error) {
	exists, err := s.pollRepo.Exists(pollID)
	if err != nil {
		return nil, storageError("check poll", err)
	}
	if !exists {
		return nil, notFoundError("poll %d", pollID)
	}
	counts, err := s.pollRepo.CountVotesByOption(pollID)
	if err != nil {
		return nil, storageError("count votes", err)
	}
	return counts, nil
}

// assemblePollResults сворачивает плоские строки опрос x вариант x голос в результаты.
// Порядок опросов и вариантов берется из порядка строк.
func assemblePollResults(rows []entity.PollResultRow, viewerID uint, predictionAccuracy int) []entity.PollResults {
	results := make([]entity.PollResults, 0)
	pollIndex := make(map[uint]int)
	optionIndex := make(map[uint]int)
	voterSeen := make(map[uint]map[string]struct{})

	for _, row := range rows {
		pi, ok := pollIndex[row.PollID]
		if !ok {
			results = append(results, entity.PollResults{
				PollID:                 row.PollID,
				Type:                   row.PollType,
				Question:               row.Question,
				CreatedAt:              row.CreatedAt,
				CreatorID:              row.CreatorID,
				CreatorName:            row.CreatorName,
				CreatorPicture:         row.CreatorPicture,
				AuthorSelectedOptionID: row.AnswerOptionID,
				Options:                []entity.OptionResult{},
				Voters:                 []string{},
				PredictionAccuracy:     predictionAccuracy,
			})
			pi = len(results) - 1
			pollIndex[row.PollID] = pi
			voterSeen[row.PollID] = make(map[string]struct{})
		}
		poll := &results[pi]

		oi, ok := optionIndex[row.OptionID]
		if !ok {
			poll.Options = append(poll.Options, entity.OptionResult{
				OptionID:   row.OptionID,
				OptionText: row.OptionText,
			})
			oi = len(poll.Options) - 1
			optionIndex[row.OptionID] = oi
		}

		if row.VoterID == nil {
			continue
		}
		poll.Options[oi].VoteCount++
		poll.TotalVoteCount++

		if viewerID != 0 && *row.VoterID == viewerID {
			selected := row.OptionID
			poll.UserSelected = &selected
		}
		if row.VoterName != nil {
			name := strings.TrimSpace(*row.VoterName)
			if _, dup := voterSeen[row.PollID][name]; !dup && name != "" {
				voterSeen[row.PollID][name] = struct{}{}
				poll.Voters = append(poll.Voters, name)
			}
		}
	}
	return results
}

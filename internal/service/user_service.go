package service

import (
	"errors"
	"log"
	"sort"
	"strings"

	"github.com/yourusername/pruve-api/internal/config"
	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/domain/repository"
	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
	"github.com/yourusername/pruve-api/internal/pkg/textutil"
)

// TokenIssuer выпускает access-токены
type TokenIssuer interface {
	GenerateToken(user *entity.User) (string, error)
}

// UserMatch - пользователь, найденный нечетким поиском
type UserMatch struct {
	User  entity.User
	Score int
}

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	search   config.SearchConfig
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, tokens TokenIssuer, search config.SearchConfig) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		search:   search,
	}
}

// CreateOrFetchUser возвращает пользователя по email, создавая его при первом входе.
// Новый access-токен выпускается при каждом вызове.
func (s *UserService) CreateOrFetchUser(email, name, picture string) (*entity.User, string, error) {
	email = entity.NormalizeEmail(email)
	if email == "" {
		return nil, "", validationError("email is required")
	}

	user, err := s.userRepo.GetByEmail(email)
	switch {
	case err == nil:
		log.Printf("[UserService] Пользователь %s уже существует (ID=%d)", email, user.ID)
	case errors.Is(err, apperrors.ErrNotFound):
		user, err = s.createUser(email, name, picture)
		if err != nil {
			return nil, "", err
		}
	default:
		return nil, "", storageError("get user by email", err)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, "", storageError("issue token", err)
	}
	return user, token, nil
}

// createUser вставляет пользователя. Проигравший гонку за уникальный email перечитывает существующую запись.
func (s *UserService) createUser(email, name, picture string) (*entity.User, error) {
	user := &entity.User{
		Email:   email,
		Name:    strings.TrimSpace(name),
		Picture: strings.TrimSpace(picture),
	}
	err := s.userRepo.Create(user)
	if err == nil {
		log.Printf("[UserService] Создан пользователь %s (ID=%d)", email, user.ID)
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return nil, storageError("create user", err)
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, storageError("re-read user after conflict", err)
	}
	return existing, nil
}

// GetUser возвращает пользователя по ID
func (s *UserService) GetUser(userID uint) (*entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, storageError("get user", err)
	}
	return user, nil
}

// SearchUsers ищет пользователей по похожести имени на запрос.
// Возвращает не более search.limit совпадений с оценкой выше search.min_score.
func (s *UserService) SearchUsers(query string) ([]UserMatch, error) {
	query = textutil.Normalize(query)
	if query == "" {
		return nil, validationError("user_name is required")
	}

	users, err := s.userRepo.List()
	if err != nil {
		return nil, storageError("list users", err)
	}

	matches := make([]UserMatch, 0)
	for _, u := range users {
		score := textutil.Ratio(query, u.Name)
		if score > s.search.MinScore {
			matches = append(matches, UserMatch{User: u, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].User.ID < matches[j].User.ID
	})

	if s.search.Limit > 0 && len(matches) > s.search.Limit {
		matches = matches[:s.search.Limit]
	}
	return matches, nil
}

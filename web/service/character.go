package service

import (
	"errors"

	"github.com/yukkurinet/hyakki-portal/database"
	"github.com/yukkurinet/hyakki-portal/database/model"
	"github.com/yukkurinet/hyakki-portal/logger"

	"github.com/google/uuid"
)

// MaxCharactersPerUser caps how many characters one account may own.
const MaxCharactersPerUser = 3

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrCharacterLimit    = errors.New("maximum character limit reached")
)

type CharacterService struct{}

// Create adds a character for the user, enforcing the per-user cap.
func (s *CharacterService) Create(userId, username, race, class string) (*model.Character, error) {
	db := database.GetDB()

	var count int64
	if err := db.Model(&model.Character{}).Where("user_id = ?", userId).Count(&count).Error; err != nil {
		return nil, err
	}
	if count >= MaxCharactersPerUser {
		return nil, ErrCharacterLimit
	}

	character := &model.Character{
		Id:       uuid.NewString(),
		Username: username,
		Race:     race,
		Class:    class,
		Level:    1,
		UserId:   userId,
	}
	if err := db.Create(character).Error; err != nil {
		return nil, err
	}

	logger.Infof("New character created: %s for user %s", username, userId)
	return character, nil
}

func (s *CharacterService) ListByUser(userId string) ([]model.Character, error) {
	db := database.GetDB()

	characters := make([]model.Character, 0)
	err := db.Where("user_id = ?", userId).Find(&characters).Error
	return characters, err
}

func (s *CharacterService) Get(id string) (*model.Character, error) {
	db := database.GetDB()

	character := &model.Character{}
	err := db.Where("id = ?", id).First(character).Error
	if database.IsNotFound(err) {
		return nil, ErrCharacterNotFound
	}
	if err != nil {
		return nil, err
	}
	return character, nil
}

// Rename changes the character's display name; nothing else is editable.
func (s *CharacterService) Rename(id, username string) (*model.Character, error) {
	character, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	character.Username = username
	if err := database.GetDB().Save(character).Error; err != nil {
		return nil, err
	}

	logger.Infof("Character updated: %s", character.Username)
	return character, nil
}

func (s *CharacterService) Delete(id string) error {
	character, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := database.GetDB().Delete(character).Error; err != nil {
		return err
	}

	logger.Infof("Character deleted: %s", character.Username)
	return nil
}

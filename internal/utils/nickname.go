package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var (
	nicknameAdjectives = []string{
		"clever", "jolly", "brave", "sly", "gentle", "quick", "calm", "bold",
		"witty", "eager", "lucky", "proud", "quiet", "sunny", "swift", "wise",
	}
	nicknameAnimals = []string{
		"panda", "fox", "raccoon", "koala", "lion", "otter", "falcon", "badger",
		"lynx", "heron", "wolf", "gecko", "bison", "crane", "mole", "tiger",
	}
)

// GenerateNickname returns a random "adjective_animal_NNN" handle that
// matches the nickname rules (word characters and dashes, at least three
// characters long).
func GenerateNickname() (string, error) {
	adjective, err := randomItem(nicknameAdjectives)
	if err != nil {
		return "", err
	}
	animal, err := randomItem(nicknameAnimals)
	if err != nil {
		return "", err
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("error generating nickname suffix: %w", err)
	}

	return fmt.Sprintf("%s_%s_%d", adjective, animal, n.Int64()), nil
}

func randomItem(items []string) (string, error) {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(len(items))))
	if err != nil {
		return "", fmt.Errorf("error picking random item: %w", err)
	}
	return items[i.Int64()], nil
}

package storage

import (
	"fmt"

	"github.com/procureflow/procureflow/internal/shared/id"
)

// CanvassObjectPath is tickets/{ticketID}/canvass/{random}{ext}.
func CanvassObjectPath(ticketID uint, originalName string) (string, error) {
	name, err := id.RandomFileName(originalName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("tickets/%d/canvass/%s", ticketID, name), nil
}

// AvatarObjectPath is users/{userID}/avatar/{random}{ext}.
func AvatarObjectPath(userID uint, originalName string) (string, error) {
	name, err := id.RandomFileName(originalName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("users/%d/avatar/%s", userID, name), nil
}

package entities

import "time"

// GameScore tracks one user's progress in one game. HighScore only ever
// increases; Score is the latest submitted run.
type GameScore struct {
	UserID    string    `json:"user"`
	UserName  string    `json:"userName,omitempty"`
	GameName  string    `json:"gameName"`
	Level     int       `json:"level"`
	Score     int       `json:"score"`
	HighScore int       `json:"highScore"`
	PlayTime  int       `json:"playTime"`
	UpdatedAt time.Time `json:"updated_at"`
}

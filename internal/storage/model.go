package storage

import "time"

type dbSession struct {
	ID        string
	Token     string
	CreatedAt time.Time
	ExpireAt  time.Time
	UserID    string
}

type dbGoal struct {
	ID            string
	UserID        string
	Title         string
	TargetAmount  float64
	CurrentAmount float64
	TargetDate    time.Time
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

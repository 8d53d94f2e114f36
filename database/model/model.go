// Package model defines the database models for the portal.
package model

import "time"

// Roles assigned to users. Mutating routes for rankings, server status and
// bosses require RoleAdmin; everything else only needs an authenticated user.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User is an identity record. PasswordHash is empty for Discord-only
// accounts; DiscordId is empty for local accounts. At least one of the two is
// always set.
type User struct {
	Id           string    `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	DiscordId    *string   `json:"discordId,omitempty" gorm:"uniqueIndex"`
	Avatar       *string   `json:"avatar"`
	Role         string    `json:"role" gorm:"not null;default:member"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Character is a playable character owned by a user. A user may have at most
// three.
type Character struct {
	Id       string `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"not null"`
	Race     string `json:"race" gorm:"not null"`
	Class    string `json:"class" gorm:"column:class;not null"`
	Level    int    `json:"level" gorm:"not null;default:1"`
	UserId   string `json:"userId" gorm:"index;not null"`
}

// Post is a forum post. Likes is a denormalized counter; LikedBy holds the
// users behind it.
type Post struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"not null"`
	Likes     int       `json:"likes" gorm:"not null;default:0"`
	AuthorId  string    `json:"authorId" gorm:"index;not null"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorId"`
	LikedBy   []User    `json:"-" gorm:"many2many:post_likes"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime"`
}

// Ranking types.
const (
	RankingHyakki = "hyakki"
	RankingPvp    = "pvp"
)

// Ranking is one leaderboard row. Id is "<type>-<rank>" so seed and upsert
// stay idempotent.
type Ranking struct {
	Id     string `json:"id" gorm:"primaryKey"`
	Type   string `json:"type" gorm:"index;not null"`
	Rank   int    `json:"rank" gorm:"not null"`
	Player string `json:"player" gorm:"not null"`
	Score  int    `json:"score" gorm:"not null"`
}

// ServerStatus is a singleton row (Id = 1) describing the game server.
type ServerStatus struct {
	Id            int       `json:"id" gorm:"primaryKey"`
	Online        bool      `json:"online"`
	Players       int       `json:"players"`
	MaxPlayers    int       `json:"maxPlayers"`
	Event         string    `json:"event"`
	UptimeDays    int       `json:"uptimeDays"`
	UptimeHours   int       `json:"uptimeHours"`
	UptimeMinutes int       `json:"uptimeMinutes"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// Boss is a world-map boss.
type Boss struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"not null"`
	Location string `json:"location" gorm:"not null"`
	Defeated bool   `json:"defeated"`
}

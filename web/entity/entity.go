// Package entity defines the JSON shapes the API returns to the frontend.
package entity

import (
	"time"

	"github.com/yukkurinet/hyakki-portal/database/model"
)

// PublicUser is the externally visible view of a user. The password hash
// never leaves the service layer.
type PublicUser struct {
	Id        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Avatar    *string `json:"avatar,omitempty"`
	DiscordId *string `json:"discordId,omitempty"`
	Role      string  `json:"role,omitempty"`
}

// NewPublicUser projects a model.User to its public view.
func NewPublicUser(u *model.User) PublicUser {
	return PublicUser{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		DiscordId: u.DiscordId,
		Role:      u.Role,
	}
}

// AuthResponse is the body of successful register/login calls.
type AuthResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}

// PostView is a post formatted for display: author fields flattened,
// timestamp paired with a human relative time, liker ids listed so the
// frontend can render the like state.
type PostView struct {
	Id           string   `json:"id"`
	Author       string   `json:"author"`
	AuthorId     string   `json:"authorId"`
	AuthorAvatar *string  `json:"authorAvatar"`
	Content      string   `json:"content"`
	Timestamp    string   `json:"timestamp"`
	DisplayTime  string   `json:"displayTime"`
	Likes        int      `json:"likes"`
	UserLiked    []string `json:"userLiked"`
}

// RankingRow is one leaderboard line. Score is labeled per ranking type:
// defeats on the hyakki board, kills on the pvp board.
type RankingRow struct {
	Rank    int    `json:"rank"`
	Player  string `json:"player"`
	Defeats *int   `json:"defeats,omitempty"`
	Kills   *int   `json:"kills,omitempty"`
}

// RankingsResponse groups both leaderboards.
type RankingsResponse struct {
	HyakkiRanking []RankingRow `json:"hyakkiRanking"`
	PvpRanking    []RankingRow `json:"pvpRanking"`
}

// Uptime is the structured uptime block of the server status.
type Uptime struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// ServerStatusView is the public server status shape.
type ServerStatusView struct {
	Online     bool   `json:"online"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Event      string `json:"event"`
	Uptime     Uptime `json:"uptime"`
}

// NewServerStatusView projects the singleton row to its public shape.
func NewServerStatusView(s *model.ServerStatus) ServerStatusView {
	return ServerStatusView{
		Online:     s.Online,
		Players:    s.Players,
		MaxPlayers: s.MaxPlayers,
		Event:      s.Event,
		Uptime: Uptime{
			Days:    s.UptimeDays,
			Hours:   s.UptimeHours,
			Minutes: s.UptimeMinutes,
		},
	}
}

// WorldMapResponse is the world map with boss defeat progress.
type WorldMapResponse struct {
	Bosses        []model.Boss `json:"bosses"`
	DefeatedCount int          `json:"defeatedCount"`
	TotalCount    int          `json:"totalCount"`
}

// ProfilePost is a post on the profile page: the raw row plus display time.
type ProfilePost struct {
	model.Post
	DisplayTime string `json:"displayTime"`
}

// Profile is the full profile view with owned characters and posts.
type Profile struct {
	Id         string            `json:"id"`
	Username   string            `json:"username"`
	Email      string            `json:"email"`
	Avatar     *string           `json:"avatar"`
	DiscordId  *string           `json:"discordId"`
	CreatedAt  time.Time         `json:"createdAt"`
	Characters []model.Character `json:"characters"`
	Posts      []ProfilePost     `json:"posts"`
}

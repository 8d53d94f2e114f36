package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yukkurinet/hyakki-portal/config"
	"github.com/yukkurinet/hyakki-portal/util/common"

	"golang.org/x/oauth2"
)

const discordAPIBase = "https://discord.com/api"

// DiscordProvider implements Provider against Discord's OAuth2 endpoints with
// the identify and email scopes.
type DiscordProvider struct {
	conf    *oauth2.Config
	apiBase string
}

func NewDiscordProvider() *DiscordProvider {
	return &DiscordProvider{
		conf: &oauth2.Config{
			ClientID:     config.GetDiscordClientID(),
			ClientSecret: config.GetDiscordClientSecret(),
			RedirectURL:  config.GetDiscordCallbackURL(),
			Scopes:       []string{"identify", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  discordAPIBase + "/oauth2/authorize",
				TokenURL: discordAPIBase + "/oauth2/token",
			},
		},
		apiBase: discordAPIBase,
	}
}

func (p *DiscordProvider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

// ExchangeCode trades the authorization code for an access token and fetches
// the user's profile from /users/@me.
func (p *DiscordProvider) ExchangeCode(ctx context.Context, code string) (*Profile, error) {
	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("discord code exchange: %w", err)
	}

	client := p.conf.Client(ctx, tok)
	resp, err := client.Get(p.apiBase + "/users/@me")
	if err != nil {
		return nil, fmt.Errorf("discord profile fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, common.NewErrorf("discord profile fetch: unexpected status %d", resp.StatusCode)
	}

	var me struct {
		Id       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return nil, fmt.Errorf("discord profile decode: %w", err)
	}
	if me.Id == "" {
		return nil, common.NewError("discord profile missing id")
	}

	return &Profile{
		Id:         me.Id,
		Username:   me.Username,
		Email:      me.Email,
		AvatarHash: me.Avatar,
	}, nil
}

// AvatarURL computes the CDN address for a profile's avatar, or "" when the
// profile has none.
func AvatarURL(p *Profile) string {
	if p.AvatarHash == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", p.Id, p.AvatarHash)
}

// PlaceholderEmail synthesizes an address for providers that withhold the
// real one. No uniqueness guarantee against real addresses; kept as-is
// pending a product decision.
func PlaceholderEmail(p *Profile) string {
	return p.Id + "@discord.com"
}

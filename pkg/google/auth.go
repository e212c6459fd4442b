package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

var ErrUnauthenticated = fmt.Errorf("google calendar authentication is required")

// Auth builds authenticated HTTP clients from a client-secrets file and a
// previously stored token file. Obtaining the initial token (the OAuth
// consent flow) is outside the analysis engine.
type Auth struct {
	credentialsPath string
	tokenPath       string
}

func NewAuth(credentialsPath string, tokenPath string) *Auth {
	return &Auth{
		credentialsPath: credentialsPath,
		tokenPath:       tokenPath,
	}
}

func (a *Auth) oauthConfig() (*oauth2.Config, error) {
	secrets, err := os.ReadFile(a.credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read Google credentials file %s: %w", a.credentialsPath, err)
	}
	oauthConfig, err := google.ConfigFromJSON(secrets, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse Google credentials file: %w", err)
	}
	return oauthConfig, nil
}

func (a *Auth) getToken() (*oauth2.Token, error) {
	file, err := os.Open(a.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to read Google token file %s: %w", a.tokenPath, err)
	}
	defer file.Close()

	var token oauth2.Token
	if err := json.NewDecoder(file).Decode(&token); err != nil {
		return nil, fmt.Errorf("unable to parse Google token file: %w", err)
	}
	return &token, nil
}

func (a *Auth) getClient(ctx context.Context) (*http.Client, error) {
	oauthConfig, err := a.oauthConfig()
	if err != nil {
		log.Error(err)
		return nil, err
	}
	token, err := a.getToken()
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if token == nil {
		log.Debug("no stored Google token, authentication is required")
		return nil, ErrUnauthenticated
	}
	return oauthConfig.Client(ctx, token), nil
}

// Package session holds the interactive client's state between commands.
package session

import "knights/internal/client/api"

type Session struct {
	APIBaseURL  string
	Client      *api.Client
	AuthToken   string
	CurrentPath *api.PathResponse
	Verbose     bool
}

func New(baseURL string) *Session {
	return &Session{
		APIBaseURL: baseURL,
		Client:     api.New(baseURL),
	}
}

func (s *Session) GetAPIBaseURL() string {
	return s.APIBaseURL
}

func (s *Session) SetAPIBaseURL(url string) {
	s.APIBaseURL = url
	s.Client.SetBaseURL(url)
}

func (s *Session) GetClient() *api.Client {
	return s.Client
}

func (s *Session) GetAuthToken() string {
	return s.AuthToken
}

func (s *Session) SetAuthToken(token string) {
	s.AuthToken = token
	s.Client.SetToken(token)
}

func (s *Session) GetCurrentPath() *api.PathResponse {
	return s.CurrentPath
}

func (s *Session) SetCurrentPath(p *api.PathResponse) {
	s.CurrentPath = p
}

func (s *Session) IsVerbose() bool {
	return s.Verbose
}

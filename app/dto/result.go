package dto

import "github.com/vibast-solutions/ms-go-calendar/app/entity"

// AuthResult is what Register and Login hand back to the HTTP layer.
type AuthResult struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

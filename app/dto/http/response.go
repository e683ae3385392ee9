package http

import (
	"time"

	"github.com/vibast-solutions/ms-go-calendar/app/entity"
)

type AuthResponse struct {
	ID           uint64 `json:"id"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

type EventResponse struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	Importance  string    `json:"importance"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewEventResponse(event *entity.Event) EventResponse {
	resp := EventResponse{
		ID:         event.ID,
		UserID:     event.UserID,
		Title:      event.Title,
		Date:       event.Date,
		Importance: string(event.Importance),
		CreatedAt:  event.CreatedAt,
		UpdatedAt:  event.UpdatedAt,
	}
	if event.Description.Valid {
		desc := event.Description.String
		resp.Description = &desc
	}
	return resp
}

func NewEventListResponse(events []*entity.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, NewEventResponse(event))
	}
	return out
}

type ErrorResponse struct {
	Error string `json:"error"`
}

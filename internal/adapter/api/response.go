package api

import "github.com/cyclesync/cyclesync-client/internal/domain"

// Wire shapes for the CycleSync API. Success bodies are documented per
// operation; every failure body is an object with a "detail" string.

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User   *domain.User  `json:"user"`
	Tokens domain.Tokens `json:"tokens"`
}

type predictionsResponse struct {
	Prediction domain.Prediction `json:"prediction"`
}

type subscribeRequest struct {
	PriceID string `json:"price_id"`
}

type subscribeResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Username string  `json:"username" validate:"required,notblank,max=64"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,max=72"`
	TeamID   *string `json:"team_id"  validate:"omitempty,notblank"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	TeamID    *string   `json:"team_id"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Public catalog ---

type createPublicComponentRequest struct {
	ID           string  `json:"id"       validate:"required,notblank"`
	Name         string  `json:"name"     validate:"required,notblank"`
	Vendor       string  `json:"vendor"   validate:"required,notblank"`
	Category     string  `json:"category" validate:"required"`
	Cost         float64 `json:"cost"     validate:"gte=0"`
	Source       *string `json:"source"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url"    validate:"omitempty,url"`
	CADFileURL   *string `json:"cad_file_url" validate:"omitempty,url"`
	Availability *string `json:"availability"`
}

type updatePublicComponentRequest struct {
	Name        *string  `json:"name"`
	Vendor      *string  `json:"vendor"`
	Category    *string  `json:"category"`
	Cost        *float64 `json:"cost" validate:"omitempty,gte=0"`
	Source      *string  `json:"source"`
	Description *string  `json:"description"`
}

type createdComponentResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// --- Team inventory ---

type createTeamComponentRequest struct {
	TeamID            string  `json:"team_id"  validate:"required,notblank"`
	PublicComponentID *string `json:"public_component_id"`
	Name              string  `json:"name"     validate:"required,notblank"`
	Vendor            string  `json:"vendor"   validate:"required,notblank"`
	Quantity          int     `json:"quantity" validate:"gte=0"`
	Location          *string `json:"location"`
	Notes             *string `json:"notes"`
	AddedBy           *string `json:"added_by"`
	ImageURL          *string `json:"image_url"    validate:"omitempty,url"`
	CADFileURL        *string `json:"cad_file_url" validate:"omitempty,url"`
}

type updateTeamComponentRequest struct {
	Name       *string `json:"name"`
	Vendor     *string `json:"vendor"`
	Quantity   *int    `json:"quantity" validate:"omitempty,gte=0"`
	Location   *string `json:"location"`
	Notes      *string `json:"notes"`
	AddedBy    *string `json:"added_by"`
	ImageURL   *string `json:"image_url"    validate:"omitempty,url"`
	CADFileURL *string `json:"cad_file_url" validate:"omitempty,url"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

type createdTeamComponentResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

package handler

import (
	"github.com/frcparts/components-api/internal/core/domain"
	"github.com/frcparts/components-api/internal/core/ports"
)

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		TeamID:    u.TeamID,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// --- Request → Domain / service input ---

func toPublicComponent(req createPublicComponentRequest) *domain.PublicComponent {
	return &domain.PublicComponent{
		ID:           req.ID,
		Name:         req.Name,
		Vendor:       req.Vendor,
		Category:     req.Category,
		Cost:         req.Cost,
		Source:       req.Source,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		CADFileURL:   req.CADFileURL,
		Availability: req.Availability,
	}
}

func toPublicComponentPatch(req updatePublicComponentRequest) domain.PublicComponentPatch {
	return domain.PublicComponentPatch{
		Name:        req.Name,
		Vendor:      req.Vendor,
		Category:    req.Category,
		Cost:        req.Cost,
		Source:      req.Source,
		Description: req.Description,
	}
}

func toCreateTeamComponentInput(req createTeamComponentRequest) ports.CreateTeamComponentInput {
	return ports.CreateTeamComponentInput{
		TeamID:            req.TeamID,
		PublicComponentID: req.PublicComponentID,
		Name:              req.Name,
		Vendor:            req.Vendor,
		Quantity:          req.Quantity,
		Location:          req.Location,
		Notes:             req.Notes,
		AddedBy:           req.AddedBy,
		ImageURL:          req.ImageURL,
		CADFileURL:        req.CADFileURL,
	}
}

func toTeamComponentPatch(req updateTeamComponentRequest) domain.TeamComponentPatch {
	return domain.TeamComponentPatch{
		Name:       req.Name,
		Vendor:     req.Vendor,
		Quantity:   req.Quantity,
		Location:   req.Location,
		Notes:      req.Notes,
		AddedBy:    req.AddedBy,
		ImageURL:   req.ImageURL,
		CADFileURL: req.CADFileURL,
	}
}

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/internal/dto"
	"github.com/GlebRadaev/presaleadmin/internal/service/authservice"
	pkgauth "github.com/GlebRadaev/presaleadmin/pkg/auth"
	"github.com/GlebRadaev/presaleadmin/pkg/utils"
	"github.com/GlebRadaev/presaleadmin/pkg/validate"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=auth
type Service interface {
	Login(ctx context.Context, email, password string) (*authservice.Session, error)
	Logout(ctx context.Context)
	Me(ctx context.Context, id string) (*domain.Operator, error)
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login godoc
//
//	@Summary		Authenticate operator
//	@Description	Log in with backend admin credentials and get a dashboard JWT token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.LoginResponseDTO
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"Invalid credentials"
//	@Failure		403		{object}	utils.Response				"Account is not an admin"
//	@Failure		422		{object}	utils.ValidationResponse	"Validation failed"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/admin/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := validate.Struct(req); fields != nil {
		utils.RespondWithValidationError(w, fields)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrInvalidCredentials):
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, authservice.ErrNotAdmin):
			utils.RespondWithError(w, http.StatusForbidden, "Account is not an admin")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	w.Header().Set("Authorization", "Bearer "+session.Token)
	utils.RespondWithJSON(w, http.StatusOK, dto.LoginResponseDTO{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Operator:  toOperatorDTO(session.Operator),
	})
}

// Logout godoc
//
//	@Summary		Log out operator
//	@Description	Drop the backend session held by the service
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Router			/api/admin/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.Logout(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Logged out"})
}

// Me godoc
//
//	@Summary		Current operator
//	@Description	Return the profile of the logged in operator as known to the backend
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OperatorDTO
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := pkgauth.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	operator, err := h.authService.Me(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toOperatorDTO(*operator))
}

func toOperatorDTO(o domain.Operator) dto.OperatorDTO {
	return dto.OperatorDTO{
		ID:    o.ID,
		Email: o.Email,
		Name:  o.Name,
		Role:  o.Role,
	}
}

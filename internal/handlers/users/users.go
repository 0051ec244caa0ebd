package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/presaleadmin/internal/backend"
	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/internal/dto"
	"github.com/GlebRadaev/presaleadmin/internal/service/userservice"
	"github.com/GlebRadaev/presaleadmin/pkg/utils"
	"github.com/GlebRadaev/presaleadmin/pkg/validate"
)

//go:generate mockgen -source=users.go -destination=mock_users.go -package=users
type Service interface {
	List(ctx context.Context, filter userservice.Filter) ([]userservice.UserWithSummary, error)
	Get(ctx context.Context, id string) (*userservice.UserDetails, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
}

type UserHandler struct {
	userService Service
}

func New(userService Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetUsers godoc
//
//	@Summary		List users
//	@Description	Users with their transaction count and total spend, newest first
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			search		query		string	false	"Substring of name, email or wallet address"
//	@Param			kyc_status	query		string	false	"KYC status"	Enums(pending, verified, rejected)
//	@Param			role		query		string	false	"Role"			Enums(admin, user)
//	@Success		200			{array}		dto.UserResponseDTO
//	@Failure		401			{object}	utils.Response	"Unauthorized"
//	@Failure		502			{object}	utils.Response	"Can't load data from backend"
//	@Router			/api/admin/users [get]
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	users, err := h.userService.List(r.Context(), userservice.Filter{
		Search:    query.Get("search"),
		KYCStatus: query.Get("kyc_status"),
		Role:      query.Get("role"),
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Can't load data from backend")
		return
	}

	response := make([]dto.UserResponseDTO, 0, len(users))
	for _, u := range users {
		response = append(response, dto.NewUserResponse(u.User).WithSummary(u.Summary))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetUser godoc
//
//	@Summary		User details
//	@Description	A user with all of their transactions, newest first
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	dto.UserDetailsResponseDTO
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		502	{object}	utils.Response	"Can't load data from backend"
//	@Router			/api/admin/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	details, err := h.userService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusBadGateway, "Can't load data from backend")
		return
	}

	transactions := make([]dto.TransactionResponseDTO, 0, len(details.Transactions))
	for _, tx := range details.Transactions {
		transactions = append(transactions, dto.NewTransactionResponse(tx, details.User.Email))
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UserDetailsResponseDTO{
		User:         dto.NewUserResponse(details.User).WithSummary(details.Summary),
		Transactions: transactions,
	})
}

// UpdateUser godoc
//
//	@Summary		Update user
//	@Description	Partially update a user; omitted fields are left unchanged
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"User ID"
//	@Param			request	body		dto.UpdateUserRequestDTO	true	"Fields to update"
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"Unauthorized"
//	@Failure		404		{object}	utils.Response				"User not found"
//	@Failure		422		{object}	utils.ValidationResponse	"Validation failed"
//	@Failure		502		{object}	utils.Response				"Can't update user"
//	@Router			/api/admin/users/{id} [patch]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateUserRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := validate.Struct(req); fields != nil {
		utils.RespondWithValidationError(w, fields)
		return
	}

	user, err := h.userService.Update(r.Context(), id, req.ToPatch())
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrEmptyPatch):
			utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		case errors.Is(err, userservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, backend.ErrRejected):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusBadGateway, "Can't update user")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserResponse(*user))
}

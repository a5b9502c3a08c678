package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/api_gateway/service"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
)

// AccountHandler handles HTTP requests for the account directory
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Create registers a new directory account. An omitted type is inferred
// from the account name.
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	accountType, err := account.ParseType(req.Type)
	if err != nil {
		RespondBadRequest(c, "Invalid account type")
		return
	}

	acc, err := h.accountService.CreateAccount(c.Request.Context(), req.Name, req.Code, accountType)
	if err != nil {
		if errors.Is(err, account.ErrDuplicateAccount{}) || errors.Is(err, account.ErrDuplicateCode{}) {
			RespondConflict(c, err.Error())
			return
		}
		h.logger.Error("Failed to create account", "name", req.Name, "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapAccountToResponse(acc))
}

// GetByName retrieves a directory account, returns 404 if not registered
func (h *AccountHandler) GetByName(c *gin.Context) {
	name := c.Param("name")

	acc, err := h.accountService.GetAccountByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get account", "name", name, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// List retrieves the full account directory ordered by name
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list accounts", "error", err)
		RespondInternalError(c)
		return
	}

	response := AccountListResponse{Accounts: []AccountResponse{}}
	for _, acc := range accounts {
		response.Accounts = append(response.Accounts, mapAccountToResponse(acc))
	}
	response.Count = len(response.Accounts)

	RespondOK(c, response)
}

// mapAccountToResponse maps a directory account to its response DTO
func mapAccountToResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		ID:        acc.ID.String(),
		Name:      acc.Name,
		Code:      acc.Code,
		Type:      string(acc.Type),
		CreatedAt: acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: acc.UpdatedAt.Format(time.RFC3339),
	}
}

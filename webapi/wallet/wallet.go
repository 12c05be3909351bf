// Package wallet exposes the ledger core over HTTP. Ownership checks compare
// the path account id against the authenticated subject; terminal withdrawal
// transitions are administrative actions.
package wallet

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/wallet/pkg/config"
	"github.com/cryptofolio/wallet/pkg/domain/ledger"
	"github.com/cryptofolio/wallet/pkg/middleware"
	walletsvc "github.com/cryptofolio/wallet/pkg/service/wallet"
	"github.com/cryptofolio/wallet/webapi/common"
)

// Routes registers the wallet ledger endpoints.
//
//	POST /accounts                  provision an account (admin)
//	GET  /accounts/:id/balance      current balance (owner or admin)
//	POST /accounts/:id/deposits     credit a deposit (admin)
//	POST /accounts/:id/withdrawals  reserve a withdrawal (owner)
//	GET  /accounts/:id/transactions audit history (owner or admin)
//	POST /withdrawals/:id/approve   confirm settlement (admin)
//	POST /withdrawals/:id/reject    refund (admin)
func Routes(app *fiber.App, svc *walletsvc.Service, cfg *config.AppConfig) {
	protected := middleware.JwtProtected(cfg.Jwt)
	admin := middleware.AdminRequired()

	app.Post("/accounts", protected, admin, CreateAccount(svc))
	app.Get("/accounts/:id/balance", protected, GetBalance(svc))
	app.Post("/accounts/:id/deposits", protected, admin, Deposit(svc))
	app.Post("/accounts/:id/withdrawals", protected, Withdraw(svc))
	app.Get("/accounts/:id/transactions", protected, ListTransactions(svc))
	app.Post("/withdrawals/:id/approve", protected, admin, Approve(svc))
	app.Post("/withdrawals/:id/reject", protected, admin, Reject(svc))
}

// CreateAccount returns a handler that provisions a wallet account.
func CreateAccount(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		opening := decimal.Zero
		if input.OpeningBalance != "" {
			opening, err = decimal.NewFromString(input.OpeningBalance)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid opening balance", err, fiber.StatusBadRequest)
			}
		}
		acc, err := svc.CreateAccount(c.UserContext(), opening)
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", fiber.Map{
			"id":      acc.ID,
			"balance": acc.Balance.String(),
		})
	}
}

// GetBalance returns a handler that reads an account's current balance.
func GetBalance(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		if !canAccess(c, accountID) {
			return common.ProblemDetailsJSON(c, "Forbidden", nil, fiber.StatusForbidden)
		}
		balance, err := svc.GetBalance(c.UserContext(), accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance retrieved", BalanceResponse{
			AccountID: accountID,
			Balance:   balance.String(),
		})
	}
}

// Deposit returns a handler that credits funds into an account.
func Deposit(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[DepositRequest](c)
		if input == nil {
			return err
		}
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		var detail *ledger.DepositDetail
		if input.FundingSource != "" {
			detail = &ledger.DepositDetail{FundingSource: input.FundingSource}
		}
		tx, err := svc.Deposit(c.UserContext(), accountID, amount, input.Description, detail)
		if err != nil {
			log.Errorf("Deposit failed: %v", err)
			return common.ProblemDetailsJSON(c, "Deposit failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deposit credited", toTransactionResponse(tx))
	}
}

// Withdraw returns a handler that reserves a withdrawal for the authenticated
// account owner.
func Withdraw(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		caller, err := middleware.AccountIDFromContext(c)
		if err != nil || caller != accountID {
			return common.ProblemDetailsJSON(c, "Forbidden", nil, fiber.StatusForbidden)
		}
		input, err := common.BindAndValidate[WithdrawRequest](c)
		if input == nil {
			return err
		}
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		var detail *ledger.WithdrawalDetail
		if input.DestinationAddress != "" {
			detail = &ledger.WithdrawalDetail{DestinationAddress: input.DestinationAddress}
		}
		tx, err := svc.CreateWithdrawal(c.UserContext(), accountID, amount, input.Description, detail)
		if err != nil {
			log.Errorf("Withdrawal failed: %v", err)
			return common.ProblemDetailsJSON(c, "Withdrawal failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Withdrawal requested", toTransactionResponse(tx))
	}
}

// Approve returns a handler that marks a pending withdrawal as settled.
func Approve(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err, fiber.StatusBadRequest)
		}
		tx, err := svc.ApproveWithdrawal(c.UserContext(), txID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Approval failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal approved", toTransactionResponse(tx))
	}
}

// Reject returns a handler that fails a pending withdrawal and refunds it.
func Reject(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err, fiber.StatusBadRequest)
		}
		tx, err := svc.RejectWithdrawal(c.UserContext(), txID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Rejection failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal rejected", toTransactionResponse(tx))
	}
}

// ListTransactions returns a handler for the audit query.
func ListTransactions(svc *walletsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		if !canAccess(c, accountID) {
			return common.ProblemDetailsJSON(c, "Forbidden", nil, fiber.StatusForbidden)
		}
		history, err := svc.ListTransactions(c.UserContext(), accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		resp := make([]TransactionResponse, 0, len(history))
		for _, tx := range history {
			resp = append(resp, toTransactionResponse(tx))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions retrieved", resp)
	}
}

// canAccess reports whether the caller owns the account or holds the admin role.
func canAccess(c *fiber.Ctx, accountID uuid.UUID) bool {
	if middleware.IsAdmin(c) {
		return true
	}
	caller, err := middleware.AccountIDFromContext(c)
	return err == nil && caller == accountID
}

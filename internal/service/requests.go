package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fluxbank/demo-bank/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestMoneyParams describes a new money request: the caller asks the
// holder of SenderAccountNumber to authorize a transfer to the caller's
// account.
type RequestMoneyParams struct {
	UserEmail           string
	RequesterAccountID  string
	SenderAccountNumber string
	Amount              decimal.Decimal
	Description         string
}

// RequestMoney creates a pending money request. No balance is touched until
// the counterparty approves.
func (s *LedgerService) RequestMoney(ctx context.Context, p RequestMoneyParams) (*models.MoneyRequest, error) {
	if err := ValidateAmount(p.Amount); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidAmount, Message: err.Error()}
	}
	if p.Description == "" {
		return nil, &ServiceError{Code: ErrCodeInvalidInput, Message: "description is required"}
	}

	var request models.MoneyRequest
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		requesterAccount, err := s.dir.AccountByID(ctx, p.RequesterAccountID)
		if err != nil || requesterAccount.UserEmail != p.UserEmail {
			return &ServiceError{Code: ErrCodeInvalidAccounts, Message: "requester account not found"}
		}

		requester, err := s.dir.UserByEmail(ctx, p.UserEmail)
		if err != nil {
			return &ServiceError{Code: ErrCodeNotFound, Message: "requester not found"}
		}

		if _, err := s.dir.ResolveByNumber(ctx, p.SenderAccountNumber); err != nil {
			return &ServiceError{Code: ErrCodeInvalidAccounts, Message: "sender account not found"}
		}

		request = models.MoneyRequest{
			ID:                     uuid.New().String(),
			RequesterID:            requesterAccount.ID,
			RequesterAccountNumber: requesterAccount.AccountNumber,
			RequesterName:          requester.FullName(),
			SenderAccountNumber:    p.SenderAccountNumber,
			Amount:                 p.Amount,
			Description:            p.Description,
			Status:                 models.MoneyRequestStatusPending,
			Date:                   time.Now(),
		}

		requests, err := s.dir.MoneyRequests(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load money requests", Err: err}
		}
		return s.dir.SaveMoneyRequests(ctx, append(requests, request))
	})
	if err != nil {
		return nil, err
	}

	s.activity.RecordAmount(ctx, models.LogTypeTransaction, "money_request",
		fmt.Sprintf("Requested money from account ••••%s", lastFour(p.SenderAccountNumber)),
		p.UserEmail, p.Amount, string(models.MoneyRequestStatusPending))

	return &request, nil
}

// PendingRequestsFor returns the pending requests in which any of the user's
// accounts appears as sender or requester.
func (s *LedgerService) PendingRequestsFor(ctx context.Context, userEmail string) ([]models.MoneyRequest, error) {
	accounts, err := s.dir.AccountsOf(ctx, userEmail)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load accounts", Err: err}
	}

	numbers := make(map[string]bool, len(accounts))
	for _, account := range accounts {
		numbers[account.AccountNumber] = true
	}

	requests, err := s.dir.MoneyRequests(ctx)
	if err != nil {
		return nil, &ServiceError{Code: ErrCodeInternalError, Message: "failed to load money requests", Err: err}
	}

	var pending []models.MoneyRequest
	for _, request := range requests {
		if request.Status != models.MoneyRequestStatusPending {
			continue
		}
		if numbers[request.SenderAccountNumber] || numbers[request.RequesterAccountNumber] {
			pending = append(pending, request)
		}
	}
	return pending, nil
}

// ApproveRequest runs the transfer (sender account → requester account) and
// marks the request approved as one unit. If the transfer fails validation
// the request stays pending and no mutation occurs. The request is marked
// approved before the balance writes so a retry after a storage failure
// cannot pay twice.
func (s *LedgerService) ApproveRequest(ctx context.Context, userEmail, requestID string) (*TransferResult, error) {
	var result *TransferResult
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		requests, err := s.dir.MoneyRequests(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load money requests", Err: err}
		}

		idx := requestIndex(requests, requestID)
		if idx < 0 {
			return &ServiceError{Code: ErrCodeNotFound, Message: "money request not found"}
		}
		request := requests[idx]
		if request.Status != models.MoneyRequestStatusPending {
			return &ServiceError{Code: ErrCodeRequestNotPending, Message: "money request has already been resolved"}
		}

		source, err := s.dir.ResolveByNumber(ctx, request.SenderAccountNumber)
		if err != nil {
			return &ServiceError{Code: ErrCodeInvalidAccounts, Message: "sender account not found"}
		}
		if source.Account.UserEmail != userEmail {
			return &ServiceError{Code: ErrCodeUnauthorized, Message: "only the sender can approve this request"}
		}

		dest, err := s.dir.ResolveByNumber(ctx, request.RequesterAccountNumber)
		if err != nil {
			return &ServiceError{Code: ErrCodeInvalidAccounts, Message: "requester account not found"}
		}

		if err := validateTransferable(source.Account, dest.Account, request.Amount); err != nil {
			return err
		}

		// The request leaves pending before the balance writes. If a later
		// write fails, a retried approval is rejected as already resolved
		// rather than paying twice.
		requests[idx].Status = models.MoneyRequestStatusApproved
		if err := s.dir.SaveMoneyRequests(ctx, requests); err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to persist money requests", Err: err}
		}

		result, err = s.applyTransfer(ctx, source.Account, dest.Account, request.Amount, pairDescriptions{
			debit:          request.Description,
			debitCategory:  "transfer",
			credit:         request.Description,
			creditCategory: "transfer",
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.finishTransfer(ctx, userEmail, result)
	return result, nil
}

// RejectRequest marks a pending request rejected. Balances are never touched.
func (s *LedgerService) RejectRequest(ctx context.Context, userEmail, requestID string) error {
	err := s.dir.Update(ctx, func(ctx context.Context) error {
		requests, err := s.dir.MoneyRequests(ctx)
		if err != nil {
			return &ServiceError{Code: ErrCodeInternalError, Message: "failed to load money requests", Err: err}
		}

		idx := requestIndex(requests, requestID)
		if idx < 0 {
			return &ServiceError{Code: ErrCodeNotFound, Message: "money request not found"}
		}
		if requests[idx].Status != models.MoneyRequestStatusPending {
			return &ServiceError{Code: ErrCodeRequestNotPending, Message: "money request has already been resolved"}
		}

		source, err := s.dir.ResolveByNumber(ctx, requests[idx].SenderAccountNumber)
		if err != nil {
			return &ServiceError{Code: ErrCodeInvalidAccounts, Message: "sender account not found"}
		}
		if source.Account.UserEmail != userEmail {
			return &ServiceError{Code: ErrCodeUnauthorized, Message: "only the sender can reject this request"}
		}

		requests[idx].Status = models.MoneyRequestStatusRejected
		return s.dir.SaveMoneyRequests(ctx, requests)
	})
	if err != nil {
		return err
	}

	s.activity.Record(ctx, models.LogTypeTransaction, "money_request_rejected",
		fmt.Sprintf("Rejected money request %s", requestID), userEmail)
	return nil
}

func requestIndex(requests []models.MoneyRequest, id string) int {
	for i := range requests {
		if requests[i].ID == id {
			return i
		}
	}
	return -1
}

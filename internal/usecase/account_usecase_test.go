package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
	"github.com/paulossjunior/exemplokiro-sub001/internal/integrity"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase/mocks"
)

func newRecorder() *integrity.Recorder {
	hasher := integrity.NewHasher()
	signer := integrity.NewSigner(staticKeys("test-secret"))
	return integrity.NewRecorder(hasher, signer, mocks.NewMockIDGenerator())
}

func TestBankAccountUseCase_CreateBankAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateBankAccountInput
		expectError bool
		errorType   error
	}{
		{
			name: "successful creation",
			input: usecase.CreateBankAccountInput{
				ProjectID: "proj-1",
				Name:      "Research Grant Account",
				Budget:    decimal.NewFromInt(50000),
				CreatedBy: "user-1",
			},
		},
		{
			name: "zero budget is allowed",
			input: usecase.CreateBankAccountInput{
				ProjectID: "proj-1",
				Name:      "Unfunded Account",
				Budget:    decimal.Zero,
				CreatedBy: "user-1",
			},
		},
		{
			name: "reject empty name",
			input: usecase.CreateBankAccountInput{
				ProjectID: "proj-1",
				Name:      "   ",
				Budget:    decimal.NewFromInt(1000),
				CreatedBy: "user-1",
			},
			expectError: true,
			errorType:   domain.ErrInvalidAccountName,
		},
		{
			name: "reject negative budget",
			input: usecase.CreateBankAccountInput{
				ProjectID: "proj-1",
				Name:      "Broken Account",
				Budget:    decimal.NewFromInt(-1),
				CreatedBy: "user-1",
			},
			expectError: true,
			errorType:   domain.ErrNegativeBudget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bankRepo := mocks.NewMockBankAccountRepository()
			auditRepo := mocks.NewMockAuditRepository()

			uc := usecase.NewBankAccountUseCase(bankRepo, auditRepo, newRecorder(), mocks.NewMockIDGenerator())

			account, err := uc.CreateBankAccount(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.ID == "" {
				t.Error("expected account to be assigned an ID")
			}

			entries := auditRepo.Entries()
			if len(entries) != 1 {
				t.Fatalf("expected 1 audit entry, got %d", len(entries))
			}
			if entries[0].EntityType != domain.EntityTypeBankAccount {
				t.Errorf("expected entity type %q, got %q", domain.EntityTypeBankAccount, entries[0].EntityType)
			}
			if entries[0].EntityID != account.ID {
				t.Errorf("audit entry references %q, want %q", entries[0].EntityID, account.ID)
			}
		})
	}
}

func TestAccountingAccountUseCase_CreateAccountingAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountingAccountInput
		expectError bool
		errorType   error
	}{
		{
			name: "successful creation",
			input: usecase.CreateAccountingAccountInput{
				Code:      "3.3.90.14",
				Name:      "Travel Expenses",
				CreatedBy: "user-1",
			},
		},
		{
			name: "reject missing code",
			input: usecase.CreateAccountingAccountInput{
				Name:      "Travel Expenses",
				CreatedBy: "user-1",
			},
			expectError: true,
			errorType:   domain.ErrMissingField,
		},
		{
			name: "reject empty name",
			input: usecase.CreateAccountingAccountInput{
				Code:      "3.3.90.14",
				CreatedBy: "user-1",
			},
			expectError: true,
			errorType:   domain.ErrInvalidAccountName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountingRepo := mocks.NewMockAccountingAccountRepository()
			auditRepo := mocks.NewMockAuditRepository()

			uc := usecase.NewAccountingAccountUseCase(accountingRepo, auditRepo, newRecorder(), mocks.NewMockIDGenerator())

			account, err := uc.CreateAccountingAccount(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.Code != tt.input.Code {
				t.Errorf("expected code %q, got %q", tt.input.Code, account.Code)
			}

			if len(auditRepo.Entries()) != 1 {
				t.Fatalf("expected 1 audit entry, got %d", len(auditRepo.Entries()))
			}
		})
	}
}

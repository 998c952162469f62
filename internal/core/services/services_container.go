package services

import (
	"github.com/SscSPs/payables_ledger/internal/core/ports/events"
	portsrepo "github.com/SscSPs/payables_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/payables_ledger/internal/core/ports/services"
	"github.com/SscSPs/payables_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher) *portssvc.ServiceContainer {
	settlementOptions := []SettlementOption{WithEventPublisher(publisher)}
	if cfg.SettlementBalanceFloor != nil {
		settlementOptions = append(settlementOptions, WithBalanceFloor(*cfg.SettlementBalanceFloor))
	}

	return &portssvc.ServiceContainer{
		Category:    NewCategoryService(repos),
		BankAccount: NewBankAccountService(repos),
		Obligation:  NewObligationService(repos),
		Settlement:  NewSettlementService(repos, settlementOptions...),
		Journal:     NewJournalService(repos),
	}
}

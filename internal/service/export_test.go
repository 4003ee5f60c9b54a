package service

// TrackedAccounts reports how many accounts have a lock and ledger cache.
func TrackedAccounts(s *TransactionService) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

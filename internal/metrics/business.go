package metrics

// IncrementBoardCreated increments board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementBoardDeleted increments board deletion counter
func (m *Metrics) IncrementBoardDeleted() {
	m.safeExecute("IncrementBoardDeleted", func() {
		m.BoardDeletedTotal.Inc()
	})
}

// RecordLogin counts a login attempt by outcome
func (m *Metrics) RecordLogin(success bool) {
	m.safeExecute("RecordLogin", func() {
		result := "failure"
		if success {
			result = "success"
		}
		m.LoginAttemptsTotal.WithLabelValues(result).Inc()
	})
}

// IncrementLogout increments logout counter
func (m *Metrics) IncrementLogout() {
	m.safeExecute("IncrementLogout", func() {
		m.LogoutTotal.Inc()
	})
}

// RecordRevocationCache counts a revocation cache lookup ("hit", "miss", "error")
func (m *Metrics) RecordRevocationCache(result string) {
	m.safeExecute("RecordRevocationCache", func() {
		m.RevocationCacheRequests.WithLabelValues(result).Inc()
	})
}

// AddRevokedTokensPurged adds to the purge counter
func (m *Metrics) AddRevokedTokensPurged(count int64) {
	m.safeExecute("AddRevokedTokensPurged", func() {
		m.RevokedTokensPurged.Add(float64(count))
	})
}

// SetUsersTotal sets total users gauge
func (m *Metrics) SetUsersTotal(count int64) {
	m.safeExecute("SetUsersTotal", func() {
		m.UsersTotal.Set(float64(count))
	})
}

// SetBoardsTotal sets total boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

// SetParticipantsTotal sets total participants gauge
func (m *Metrics) SetParticipantsTotal(count int64) {
	m.safeExecute("SetParticipantsTotal", func() {
		m.ParticipantsTotal.Set(float64(count))
	})
}

// SetRevokedTokensTotal sets the revocation store size gauge
func (m *Metrics) SetRevokedTokensTotal(count int64) {
	m.safeExecute("SetRevokedTokensTotal", func() {
		m.RevokedTokensTotal.Set(float64(count))
	})
}

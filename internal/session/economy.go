package session

import "github.com/vovakirdan/tui-runner/internal/account"

// AwardCurrency adds n to the balance and persists.
func (m *Manager) AwardCurrency(n int) {
	if !m.active || n <= 0 {
		return
	}
	m.profile.Currency += n
	_ = m.PersistProfile()
}

// RecordScore keeps the best of score and the stored best, then persists.
func (m *Manager) RecordScore(score int) {
	if !m.active {
		return
	}
	m.profile.BestScore = max(m.profile.BestScore, score)
	_ = m.PersistProfile()
}

// Purchase buys skinID when unowned and affordable, then equips it if owned.
// The profile is persisted whether or not anything changed.
func (m *Manager) Purchase(skinID string) {
	if !m.active {
		return
	}
	skin, ok := account.SkinByID(skinID)
	if !ok {
		return
	}
	if !m.profile.Owns(skin.ID) && m.profile.Currency >= skin.Cost {
		m.profile.Currency -= skin.Cost
		m.profile.Owned = append(m.profile.Owned, skin.ID)
		m.logger.Info("skin purchased", "user", m.profile.Username, "skin", skin.ID, "cost", skin.Cost)
	}
	if m.profile.Owns(skin.ID) {
		m.profile.Equipped = skin.ID
	}
	_ = m.PersistProfile()
}

// Equip selects an owned skin and persists. Unowned skins are ignored.
func (m *Manager) Equip(skinID string) {
	if !m.active || !m.profile.Owns(skinID) {
		return
	}
	if _, ok := account.SkinByID(skinID); !ok {
		return
	}
	m.profile.Equipped = skinID
	_ = m.PersistProfile()
}

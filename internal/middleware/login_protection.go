// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LoginProtection locks an account after repeated failed logins.
// Lockouts double with each repeat, capped at 24 hours.
type LoginProtection struct {
	mu       sync.Mutex
	attempts map[string]*loginAttempt
	now      func() time.Time

	maxFailedAttempts int
	lockoutDuration   time.Duration
	attemptWindow     time.Duration
}

type loginAttempt struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
	lockouts    int
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	MaxFailedAttempts int           // default 5
	LockoutDuration   time.Duration // default 15m
	AttemptWindow     time.Duration // default 15m
}

// NewLoginProtection creates a LoginProtection, filling zero fields with defaults.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = 5
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = 15 * time.Minute
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = 15 * time.Minute
	}
	return &LoginProtection{
		attempts:          make(map[string]*loginAttempt),
		now:               time.Now,
		maxFailedAttempts: cfg.MaxFailedAttempts,
		lockoutDuration:   cfg.LockoutDuration,
		attemptWindow:     cfg.AttemptWindow,
	}
}

func loginKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsLocked reports whether email is locked and for how much longer.
func (lp *LoginProtection) IsLocked(email string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	a, ok := lp.attempts[loginKey(email)]
	if !ok {
		return false, 0
	}
	now := lp.now()
	if now.Before(a.lockedUntil) {
		return true, a.lockedUntil.Sub(now)
	}
	return false, 0
}

// RecordFailure counts a failed login and reports whether it triggered a lockout.
func (lp *LoginProtection) RecordFailure(email string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	key := loginKey(email)
	now := lp.now()
	a, ok := lp.attempts[key]
	if !ok || now.Sub(a.firstFailed) > lp.attemptWindow {
		if !ok {
			a = &loginAttempt{}
			lp.attempts[key] = a
		}
		a.count = 1
		a.firstFailed = now
		return false, 0
	}

	a.count++
	if a.count < lp.maxFailedAttempts {
		return false, 0
	}

	lock := lp.lockoutDuration
	for i := 0; i < a.lockouts && lock < 24*time.Hour; i++ {
		lock *= 2
	}
	lock = min(lock, 24*time.Hour)

	a.lockedUntil = now.Add(lock)
	a.lockouts++
	a.count = 0
	slog.Warn("account locked due to failed logins", "email", key, "lockouts", a.lockouts, "duration", lock)
	return true, lock
}

// RecordSuccess clears the failure history of email.
func (lp *LoginProtection) RecordSuccess(email string) {
	lp.mu.Lock()
	delete(lp.attempts, loginKey(email))
	lp.mu.Unlock()
}

// Prune removes entries whose lockout and window have both expired.
func (lp *LoginProtection) Prune() {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := lp.now()
	for key, a := range lp.attempts {
		if now.After(a.lockedUntil) && now.Sub(a.firstFailed) > lp.attemptWindow {
			delete(lp.attempts, key)
		}
	}
}

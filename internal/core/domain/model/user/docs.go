// Package user models wallet-identified traders and admins.
//
// A User is keyed by its lower-cased wallet address and carries a role and a
// KYC tier/status. Caller is the slim, already-authenticated identity handed
// to domain services; it never carries more than id and role.
package user

// Package models defines the core domain models for splitsettle.
//
// # Models
//
//   - Participant: someone who shares the group's expenses. Either a named
//     person with an amount spent, or an anonymous group of people who spent
//     nothing and only share the debt.
//   - Transfer: one directed, positive amount of money owed by one
//     participant to another.
//
// Participants are identified by their Identifier. Within a single
// settlement run identifiers are unique; ValidateParticipants enforces it.
//
// # Design Principles
//
// 1. **Exhaustive variants**: every accessor on Participant switches on Kind,
// so a new kind fails loudly instead of silently behaving like a named person.
// 2. **Exact money**: amounts use money.Money, never float64.
// 3. **Value types**: Participant and Transfer are small values, safe to copy.
package models

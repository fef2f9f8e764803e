// Package models defines the core domain models for Otokogi.
//
// Otokogi tracks "loser pays" janken (rock-paper-scissors) events: a group
// plays one round per event, exactly one participant loses and picks up the
// whole bill, and the system keeps running fairness statistics per person.
//
// # Models
//
//   - Event: one gathering with a total bill and an optional round result
//   - Participant: a person who plays, with cached running counters
//   - Participation: one participant's outcome in one event's round
//   - User: an account that owns events and participants
//   - Snapshot: a pre-migration client-local dataset
//
// # Design Principles
//
//  1. Amounts are integer yen (int64); the fair share is floored division.
//  2. Participant counters and the event result flag are write-through
//     caches. Participation rows are the source of truth and every derived
//     value is recomputable from them (see internal/ledger).
//  3. Avoid circular references: relationships use ID strings, not pointers.
//
// # Terminology
//
// "Won" is inverted relative to game terminology: the participant with
// Won=true lost the round and is the designated payer of the full bill.
package models

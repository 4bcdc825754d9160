// Package models defines the persisted domain models for splitledger.
//
// # Models
//
//   - Group: a set of members sharing expenses, owned by the member who created it
//   - Member: a group member; the ID is the identity carried in bearer tokens
//   - Expense: money one member fronted for the whole group
//   - Payment: a direct transfer between two members that settles debt
//
// Balances, settlements and category summaries are never stored. They are
// derived from a group snapshot by the calculator package on every request.
//
// # Money
//
// Models expose amounts as decimal currency values (Value). Storage keeps
// integer cents and converts at the boundary with calculator.ToCents.
package models

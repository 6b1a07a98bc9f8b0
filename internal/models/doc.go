// Package models defines the core domain models for ticketapp.
//
// # Models
//
//   - Ticket: a trackable unit of work with a title, optional description
//     and a lifecycle status
//   - Credential: an email/password pair held by the user registry
//   - Session: the marker of the currently authenticated identity
//
// All three are persisted as JSON under fixed local storage keys (see package
// storage). The JSON field names are part of the on-disk format and must stay
// compatible with data exported from the browser version of the app.
//
// # Errors
//
// Every failure the user can cause (empty title, duplicate email, missing
// ticket, wrong password) is an *AppError. Callers branch on the kind with
// errors.Is and show AppError.Message to the user.
package models

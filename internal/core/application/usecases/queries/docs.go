// Package queries contains the read side of the desk. Handlers read straight
// from the database into flat read models and never load aggregates.
package queries

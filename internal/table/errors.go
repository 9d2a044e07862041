package table

import (
	"errors"
	"fmt"
)

// StoreError represents a failure reported by the storage engine, tagged
// with the operation that hit it. Not-found is never a StoreError: Get
// returns a nil iterator and GetOne returns sql.ErrNoRows for that.
type StoreError struct {
	// Code identifies the error category.
	Code StoreErrorCode

	// Op names the operation that failed ("add column", "upsert", ...).
	Op string

	// Table is the affected table.
	Table string

	// Column is the affected column, when one is involved.
	Column string

	// Err is the underlying engine error.
	Err error
}

// StoreErrorCode categorizes store errors.
type StoreErrorCode string

const (
	// ErrCodeSchema indicates DDL (add-column, index) was rejected by the engine.
	ErrCodeSchema StoreErrorCode = "SCHEMA_ERROR"

	// ErrCodeQuery indicates a malformed statement or a constraint violation.
	ErrCodeQuery StoreErrorCode = "QUERY_ERROR"

	// ErrCodeTx indicates exclusive-transaction acquisition or commit failed.
	ErrCodeTx StoreErrorCode = "TX_ERROR"
)

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: %s (table=%s, column=%s): %v", e.Code, e.Op, e.Table, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %s (table=%s): %v", e.Code, e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsSchemaError returns true if the error is a rejected DDL operation.
// Uses errors.As to handle wrapped errors.
func IsSchemaError(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeSchema
	}
	return false
}

// IsQueryError returns true if the error is a failed statement or
// constraint violation.
func IsQueryError(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeQuery
	}
	return false
}

// IsTxError returns true if the error is a failed exclusive transaction.
// Callers decide whether to retry the whole upsert; there is no internal
// retry loop.
func IsTxError(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeTx
	}
	return false
}

func newSchemaError(table, column, op string, err error) *StoreError {
	return &StoreError{Code: ErrCodeSchema, Op: op, Table: table, Column: column, Err: err}
}

func newQueryError(table, op string, err error) *StoreError {
	return &StoreError{Code: ErrCodeQuery, Op: op, Table: table, Err: err}
}

func newTxError(table, op string, err error) *StoreError {
	return &StoreError{Code: ErrCodeTx, Op: op, Table: table, Err: err}
}

package table

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreError_Message(t *testing.T) {
	err := newSchemaError("t", "c", "add column", errors.New("boom"))
	assert.Contains(t, err.Error(), "SCHEMA_ERROR")
	assert.Contains(t, err.Error(), "table=t")
	assert.Contains(t, err.Error(), "column=c")

	err = newQueryError("t", "select", errors.New("boom"))
	assert.Contains(t, err.Error(), "QUERY_ERROR")
	assert.NotContains(t, err.Error(), "column=")
}

func TestStoreError_Predicates(t *testing.T) {
	schemaErr := fmt.Errorf("wrapped: %w", newSchemaError("t", "c", "add column", errors.New("x")))
	queryErr := newQueryError("t", "select", errors.New("x"))
	txErr := newTxError("t", "upsert begin exclusive", errors.New("x"))

	assert.True(t, IsSchemaError(schemaErr))
	assert.False(t, IsSchemaError(queryErr))

	assert.True(t, IsQueryError(queryErr))
	assert.False(t, IsQueryError(txErr))

	assert.True(t, IsTxError(txErr))
	assert.False(t, IsTxError(errors.New("plain")))
}

func TestStoreError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := newQueryError("t", "select", inner)
	assert.ErrorIs(t, err, inner)
}

package dynamo

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdateExpr_SingleField(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{"firstname": "alice"})
	require.NoError(t, err)
	assert.Equal(t, "SET #f0 = :v0", ue.Expr)
	assert.Equal(t, map[string]string{"#f0": "firstname"}, ue.Names)
	_, ok := ue.Values[":v0"]
	assert.True(t, ok)
}

func TestBuildUpdateExpr_MultipleFields_Deterministic(t *testing.T) {
	updates := map[string]interface{}{
		"lastname":  "martin",
		"email":     "a@gmail.com",
		"firstname": "alice",
	}
	// Call twice to verify determinism.
	ue1, err := buildUpdateExpr(updates)
	require.NoError(t, err)
	ue2, err := buildUpdateExpr(updates)
	require.NoError(t, err)

	assert.Equal(t, ue1.Expr, ue2.Expr)

	// Keys must be sorted: email < firstname < lastname
	assert.Equal(t, "email", ue1.Names["#f0"])
	assert.Equal(t, "firstname", ue1.Names["#f1"])
	assert.Equal(t, "lastname", ue1.Names["#f2"])
	assert.Equal(t, "SET #f0 = :v0, #f1 = :v1, #f2 = :v2", ue1.Expr)
}

func TestBuildUpdateExpr_ValuesMarshalledCorrectly(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{"verified": true})
	require.NoError(t, err)
	av, ok := ue.Values[":v0"]
	require.True(t, ok)
	boolVal, isBool := av.(*types.AttributeValueMemberBOOL)
	require.True(t, isBool)
	assert.True(t, boolVal.Value)
}

func TestBuildUpdateExpr_NilRemovesField(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{"reset_token": nil})
	require.NoError(t, err)
	assert.Equal(t, "REMOVE #f0", ue.Expr)
	assert.Equal(t, map[string]string{"#f0": "reset_token"}, ue.Names)
	// No SET part, so no values at all — never a NULL-typed attribute, which
	// would be rejected against a string-typed GSI key.
	assert.Empty(t, ue.Values)
}

func TestBuildUpdateExpr_MixedSetAndRemove(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{
		"password_hash":      "new-hash",
		"reset_token":        nil,
		"reset_token_expiry": nil,
	})
	require.NoError(t, err)

	// Sorted: password_hash < reset_token < reset_token_expiry
	assert.Equal(t, "SET #f0 = :v0 REMOVE #f1, #f2", ue.Expr)
	assert.Equal(t, "password_hash", ue.Names["#f0"])
	assert.Equal(t, "reset_token", ue.Names["#f1"])
	assert.Equal(t, "reset_token_expiry", ue.Names["#f2"])
	av, ok := ue.Values[":v0"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "new-hash", av.Value)
	assert.Len(t, ue.Values, 1)
}

func TestBuildUpdateExpr_EmptyMap_ReturnsError(t *testing.T) {
	_, err := buildUpdateExpr(map[string]interface{}{})
	assert.ErrorContains(t, err, "no fields to update")
}

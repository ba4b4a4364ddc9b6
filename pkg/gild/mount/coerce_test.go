package mount

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildlabs/gild/pkg/gild/openapi"
)

func TestCoercerSet_Builtins(t *testing.T) {
	set := NewCoercerSet()
	id := uuid.MustParse("0d3f5a1c-7c2e-4b86-9a1f-52f6f3f7b0aa")
	when, err := time.Parse(time.RFC3339, "2024-05-01T12:30:00Z")
	require.NoError(t, err)

	tests := []struct {
		name    string
		schema  *openapi.Schema
		raw     string
		want    interface{}
		wantErr bool
	}{
		{"string", openapi.StringSchema(), "hello", "hello", false},
		{"integer", openapi.IntegerSchema(), "42", int64(42), false},
		{"int32", openapi.Int32Schema(), "7", int32(7), false},
		{"number", openapi.NumberSchema(), "2.5", 2.5, false},
		{"boolean", openapi.BooleanSchema(), "true", true, false},
		{"uuid", openapi.UUIDSchema(), id.String(), id, false},
		{"date-time", openapi.DateTimeSchema(), "2024-05-01T12:30:00Z", when, false},
		{"nil schema passes through", nil, "raw", "raw", false},
		{"bad integer", openapi.IntegerSchema(), "forty-two", nil, true},
		{"bad uuid", openapi.UUIDSchema(), "12345", nil, true},
		{"bad boolean", openapi.BooleanSchema(), "yep", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := set.CoerceValue(tt.schema, tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoercerSet_UnknownTypeFails(t *testing.T) {
	set := NewCoercerSet()
	_, err := set.CoerceValue(&openapi.Schema{Type: "object"}, "{}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no coercer registered")
}

func TestCoercerSet_FormatFallsBackToType(t *testing.T) {
	set := NewCoercerSet()

	// No "string/email" coercer is registered, so the bare string one runs
	got, err := set.CoerceValue(&openapi.Schema{Type: "string", Format: "email"}, "a@b.dev")
	require.NoError(t, err)
	assert.Equal(t, "a@b.dev", got)

	set.Register("string", "email", func(raw string) (interface{}, error) {
		return "custom:" + raw, nil
	})
	got, err = set.CoerceValue(&openapi.Schema{Type: "string", Format: "email"}, "a@b.dev")
	require.NoError(t, err)
	assert.Equal(t, "custom:a@b.dev", got)
}

func TestCoercerSet_CoerceParam_Query(t *testing.T) {
	set := NewCoercerSet()

	c := newFakeCtx()
	c.query.Set("limit", "12")
	got, err := set.CoerceParam(c, openapi.Param.Query.Integer("limit"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), got)

	// Absent and optional binds nothing
	got, err = set.CoerceParam(newFakeCtx(), openapi.Param.Query.Integer("limit"))
	require.NoError(t, err)
	assert.Nil(t, got)

	// Absent and required fails
	_, err = set.CoerceParam(newFakeCtx(), openapi.Param.Query.Integer("limit").AsRequired())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required query parameter")
}

func TestCoercerSet_CoerceParam_Header(t *testing.T) {
	set := NewCoercerSet()

	c := newFakeCtx()
	c.headers.Set("X-Request-Id", "0d3f5a1c-7c2e-4b86-9a1f-52f6f3f7b0aa")
	got, err := set.CoerceParam(c, openapi.Param.Header.UUID("X-Request-Id"))
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("0d3f5a1c-7c2e-4b86-9a1f-52f6f3f7b0aa"), got)

	_, err = set.CoerceParam(newFakeCtx(), openapi.Param.Header.String("X-Tenant").AsRequired())
	require.Error(t, err)
}

func TestCoercerSet_CoerceParam_MissingPathParam(t *testing.T) {
	set := NewCoercerSet()
	_, err := set.CoerceParam(newFakeCtx(), openapi.Param.Path.String("id"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing path parameter")
}

func TestCoercerSet_ArrayQuery(t *testing.T) {
	set := NewCoercerSet()
	spec := openapi.Param.Query.Array("tag", openapi.StringSchema())

	c := newFakeCtx()
	c.query.Add("tag", "scifi")
	c.query.Add("tag", "classic")
	got, err := set.CoerceParam(c, spec)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"scifi", "classic"}, got)

	// Single comma-separated value splits
	c = newFakeCtx()
	c.query.Set("tag", "scifi, classic")
	got, err = set.CoerceParam(c, spec)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"scifi", "classic"}, got)
}

func TestCoercerSet_ArrayOfIntegers(t *testing.T) {
	set := NewCoercerSet()
	spec := openapi.Param.Query.Array("year", openapi.IntegerSchema())

	c := newFakeCtx()
	c.query.Set("year", "1965,1970")
	got, err := set.CoerceParam(c, spec)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(1965), int64(1970)}, got)

	c = newFakeCtx()
	c.query.Set("year", "1965,soon")
	_, err = set.CoerceParam(c, spec)
	require.Error(t, err)
}

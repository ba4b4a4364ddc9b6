package repository

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gildlabs/gild/pkg/gild"
)

func TestModelThenProperty_TwoEntriesInOrder(t *testing.T) {
	reg := gild.NewRegistry()
	class := gild.Class("Book")

	require.NoError(t, Model().WithDescription("A book in the catalog").Apply(reg, class))
	require.NoError(t, Property().AsID().Apply(reg, class.Property("id")))

	entries := reg.ResolveAggregate(class)
	require.Len(t, entries, 2)
	assert.Equal(t, gild.KindModel, entries[0].Kind)
	assert.Equal(t, class, entries[0].Site)
	assert.Equal(t, gild.KindProperty, entries[1].Kind)
	assert.Equal(t, class.Property("id"), entries[1].Site)
}

func TestModelDefinition_Aggregation(t *testing.T) {
	reg := gild.NewRegistry()
	class := gild.Class("Book")

	require.NoError(t, Model().AsStrict().Apply(reg, class))
	require.NoError(t, PropertyOf(TypeString).AsID().AsGenerated().Apply(reg, class.Property("id")))
	require.NoError(t, PropertyOf(TypeString).AsRequired().Apply(reg, class.Property("title")))
	require.NoError(t, Property().Apply(reg, class.Property("pages")))
	require.NoError(t, ArrayPropertyOf(TypeString).Apply(reg, class.Property("tags")))

	definition, err := ModelDefinition(reg, class)
	require.NoError(t, err)
	assert.Equal(t, "Book", definition.Name)
	assert.True(t, definition.Model.Strict)

	require.Len(t, definition.Properties, 4)
	names := make([]string, 0, len(definition.Properties))
	for _, property := range definition.Properties {
		names = append(names, property.Name)
	}
	assert.Equal(t, []string{"id", "title", "pages", "tags"}, names, "declaration order")

	id, ok := definition.IDProperty()
	require.True(t, ok)
	assert.Equal(t, "id", id.Name)
	assert.True(t, id.Spec.Generated)

	pages := definition.Properties[2].Spec
	assert.True(t, pages.Infer, "omitted type stays an inference sentinel")

	tags := definition.Properties[3].Spec
	assert.Equal(t, TypeArray, tags.Type)
	assert.Equal(t, TypeString, tags.ItemType)
}

func TestModelDefinition_NameOverride(t *testing.T) {
	reg := gild.NewRegistry()
	class := gild.Class("LegacyBook")

	require.NoError(t, Model().WithName("books").Apply(reg, class))

	definition, err := ModelDefinition(reg, class)
	require.NoError(t, err)
	assert.Equal(t, "books", definition.Name)
	assert.Equal(t, "LegacyBook", definition.Class)
}

func TestModelDefinition_MissingModel(t *testing.T) {
	reg := gild.NewRegistry()
	class := gild.Class("Book")

	_, err := ModelDefinition(reg, class)
	require.Error(t, err)

	require.NoError(t, Property().Apply(reg, class.Property("title")))
	_, err = ModelDefinition(reg, class)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no model metadata")
}

func TestInferProperty(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want PropertyType
	}{
		{"string", "x", TypeString},
		{"int", 1, TypeInteger},
		{"int64", int64(1), TypeInteger},
		{"float64", 1.5, TypeNumber},
		{"bool", true, TypeBoolean},
		{"time", time.Time{}, TypeDate},
		{"uuid", uuid.UUID{}, TypeString},
		{"slice", []string{}, TypeArray},
		{"map", map[string]int{}, TypeObject},
		{"struct", struct{}{}, TypeObject},
		{"pointer", (*int)(nil), TypeInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InferProperty(reflect.TypeOf(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := InferProperty(reflect.TypeOf(make(chan int)))
	assert.Error(t, err)
}

func TestPropertySpec_ResolveType(t *testing.T) {
	explicit := PropertyOf(TypeDate)
	got, err := explicit.ResolveType(reflect.TypeOf("ignored"))
	require.NoError(t, err)
	assert.Equal(t, TypeDate, got)

	inferred := Property()
	got, err = inferred.ResolveType(reflect.TypeOf(42))
	require.NoError(t, err)
	assert.Equal(t, TypeInteger, got)
}

func TestRepositoryBinding(t *testing.T) {
	reg := gild.NewRegistry()
	class := gild.Class("BookRepository")

	require.NoError(t, For("Book", "db").Apply(reg, class))

	spec, err := RepositoryBinding(reg, class)
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, "Book", spec.Model)
	assert.Equal(t, "db", spec.DataSource)

	none, err := RepositoryBinding(reg, gild.Class("NotARepository"))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRepositorySpec_Validate(t *testing.T) {
	assert.Error(t, For("", "db").Validate())
	assert.Error(t, For("Book", "").Validate())

	reg := gild.NewRegistry()
	err := For("", "db").Apply(reg, gild.Class("BookRepository"))
	require.Error(t, err)
	assert.Equal(t, 0, reg.Size())
}

func TestRelation_AlwaysUnsupported(t *testing.T) {
	reg := gild.NewRegistry()
	class := gild.Class("Book")

	// Builder path fails before the registry
	err := Relation(HasMany, "Review").WithForeignKey("bookId").Apply(reg, class)
	require.Error(t, err)
	assert.ErrorIs(t, err, gild.ErrUnsupported)

	var unsupported *gild.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, unsupported.Feature, "hasMany")

	// Direct registry writes fail the same way
	err = reg.Annotate(class, Relation(BelongsTo, "Author"))
	require.Error(t, err)
	assert.ErrorIs(t, err, gild.ErrUnsupported)

	assert.Equal(t, 0, reg.Size())
}

func TestRelationType_StringParseRoundTrip(t *testing.T) {
	types := []RelationType{BelongsTo, HasOne, HasMany, HasManyThrough, ReferencesMany}
	for _, relationType := range types {
		parsed, err := ParseRelationType(relationType.String())
		require.NoError(t, err)
		assert.Equal(t, relationType, parsed)
	}
	_, err := ParseRelationType("owns")
	assert.Error(t, err)
}

func TestPropertyType_StringParseRoundTrip(t *testing.T) {
	types := []PropertyType{TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeDate, TypeObject, TypeArray}
	for _, propertyType := range types {
		parsed, err := ParsePropertyType(propertyType.String())
		require.NoError(t, err)
		assert.Equal(t, propertyType, parsed)
	}
	_, err := ParsePropertyType("decimal")
	assert.Error(t, err)
}

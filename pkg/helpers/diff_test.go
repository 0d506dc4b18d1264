package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alaines/alertas-api/pkg/models"
)

func TestApplyChange(t *testing.T) {
	t.Run("NilLeavesValueUntouched", func(t *testing.T) {
		diff := map[string]models.FieldChange{}
		got := ApplyChange(diff, "name", "cam-01", nil)
		assert.Equal(t, "cam-01", got)
		assert.Empty(t, diff)
	})

	t.Run("SameValueRecordsNothing", func(t *testing.T) {
		diff := map[string]models.FieldChange{}
		next := "cam-01"
		got := ApplyChange(diff, "name", "cam-01", &next)
		assert.Equal(t, "cam-01", got)
		assert.Empty(t, diff)
	})

	t.Run("ChangedValueRecordsFromTo", func(t *testing.T) {
		diff := map[string]models.FieldChange{}
		next := "cam-02"
		got := ApplyChange(diff, "name", "cam-01", &next)
		assert.Equal(t, "cam-02", got)
		assert.Len(t, diff, 1)
		assert.Equal(t, "cam-01", diff["name"].From)
		assert.Equal(t, "cam-02", diff["name"].To)
	})
}

func TestApplyChangePtr(t *testing.T) {
	t.Run("NilNextLeavesValueUntouched", func(t *testing.T) {
		diff := map[string]models.FieldChange{}
		current := "old note"
		got := ApplyChangePtr(diff, "notes", &current, nil)
		assert.Equal(t, &current, got)
		assert.Empty(t, diff)
	})

	t.Run("SettingUnsetFieldRecordsNilFrom", func(t *testing.T) {
		diff := map[string]models.FieldChange{}
		next := "new note"
		got := ApplyChangePtr[string](diff, "notes", nil, &next)
		assert.Equal(t, "new note", *got)
		assert.Len(t, diff, 1)
		assert.Nil(t, diff["notes"].From)
		assert.Equal(t, "new note", diff["notes"].To)
	})

	t.Run("SameValueRecordsNothing", func(t *testing.T) {
		diff := map[string]models.FieldChange{}
		current := "note"
		next := "note"
		got := ApplyChangePtr(diff, "notes", &current, &next)
		assert.Equal(t, "note", *got)
		assert.Empty(t, diff)
	})

	t.Run("ChangedValueRecordsFromTo", func(t *testing.T) {
		diff := map[string]models.FieldChange{}
		current := "old"
		next := "new"
		got := ApplyChangePtr(diff, "notes", &current, &next)
		assert.Equal(t, "new", *got)
		assert.Equal(t, "old", diff["notes"].From)
		assert.Equal(t, "new", diff["notes"].To)
	})
}

package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CleanManifest(t *testing.T) {
	m, err := LoadDir(filepath.Join("testdata", "zoo"))
	require.NoError(t, err)

	assert.Empty(t, Validate(m))
}

func TestValidate_UnknownAncestor(t *testing.T) {
	m := &Manifest{Classes: []Class{{Name: "Dog", Extends: []string{"Animal"}}}}

	errs := Validate(m)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeUnknownAncestor, errs[0].Code)
	assert.Contains(t, errs[0].Message, "Animal")
}

func TestValidate_Cycle(t *testing.T) {
	m, err := LoadDir(filepath.Join("testdata", "cycle"))
	require.NoError(t, err)

	errs := Validate(m)
	require.NotEmpty(t, errs)

	found := false
	for _, e := range errs {
		if e.Code == ErrCodeCycle {
			found = true
			assert.Contains(t, e.Message, "inheritance cycle")
		}
	}
	assert.True(t, found, "cycle must be reported")
}

func TestValidate_UnknownClassInObject(t *testing.T) {
	m := &Manifest{
		Classes: []Class{{Name: "Dog"}},
		Objects: []Object{{Class: "Cat", ID: "1"}},
	}

	errs := Validate(m)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeUnknownClass, errs[0].Code)
}

func TestValidate_DuplicateID(t *testing.T) {
	m := &Manifest{
		Classes: []Class{{Name: "Dog"}},
		Objects: []Object{
			{Class: "Dog", ID: "1"},
			{Class: "Dog", ID: "1"},
		},
	}

	errs := Validate(m)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeDuplicateID, errs[0].Code)
}

func TestValidate_SelfCycle(t *testing.T) {
	m := &Manifest{Classes: []Class{{Name: "A", Extends: []string{"A"}}}}

	errs := Validate(m)
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrCodeCycle, errs[0].Code)
}

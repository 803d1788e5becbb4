package couplethammer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kalexmills/couplet-hammer/src/couplethammer"
)

func Test_DuplicateHash(t *testing.T) {
	equal := [][]string{
		{"the cat sat", "the cat sat"},
		{"the cat sat", "THE CAT SAT"},
		{"the cats sat", "the cat's sat"},
		{"the cat sat", "the cat sat?"},
		{"The cat sat,\non the mat!", "\"the cat sat\non the mat\""},
	}
	notEqual := [][]string{
		{"the cat sat", "the cats sat"},
		{"the cat sat", "thecat sat"},
		{"the cat sat", "the cat\nsat"},
		{"the cat sat\non the mat", "the cat sat\non the hat"},
	}

	for _, tt := range equal {
		assert.Equal(t, couplethammer.DuplicateHash(tt[0]), couplethammer.DuplicateHash(tt[1]), "hash('%s') != hash('%s')", tt[0], tt[1])
	}
	for _, tt := range notEqual {
		assert.NotEqual(t, couplethammer.DuplicateHash(tt[0]), couplethammer.DuplicateHash(tt[1]), "hash('%s') == hash('%s')", tt[0], tt[1])
	}
}

package symtab

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTable(t *testing.T) {
	tab := New(4)

	for _, s := range []string{"dummy_one", "dummy_two", "dummy_three", "test_case"} {
		_, err := tab.Intern(s)
		assert.NoError(t, err)
	}

	id, err := tab.Intern("test_case")
	assert.NoError(t, err)
	assert.Equal(t, ID(3), id)

	text, err := tab.Resolve(id)
	assert.NoError(t, err)
	assert.Equal(t, "test_case", text)

	stats := tab.Stats()
	assert.Equal(t, 4, stats.Strings)
	assert.Equal(t, 38, stats.Arena.Used)
	assert.Equal(t, 2, stats.Arena.Growths)
	assert.Equal(t, 4+16+32, stats.Arena.Reserved)
}

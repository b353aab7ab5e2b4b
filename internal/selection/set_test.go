package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Toggle(t *testing.T) {
	s := NewSet()

	s.Toggle("A")
	assert.True(t, s.IsSelected("A"))
	assert.Equal(t, 1, s.Count())

	s.Toggle("A")
	assert.False(t, s.IsSelected("A"))
	assert.Equal(t, 0, s.Count())
}

func TestSet_ToggleAll(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		allIDs   []string
		expected []string
	}{
		{
			name:     "empty selection selects everything",
			selected: nil,
			allIDs:   []string{"A", "B", "C"},
			expected: []string{"A", "B", "C"},
		},
		{
			name:     "partial selection lands on full selection",
			selected: []string{"B"},
			allIDs:   []string{"A", "B", "C"},
			expected: []string{"A", "B", "C"},
		},
		{
			name:     "full selection clears",
			selected: []string{"A", "B", "C"},
			allIDs:   []string{"A", "B", "C"},
			expected: []string{},
		},
		{
			name:     "different ids but equal count still selects all",
			selected: []string{"X", "Y", "Z"},
			allIDs:   []string{"A", "B", "C"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet()
			for _, id := range tt.selected {
				s.Toggle(id)
			}

			s.ToggleAll(tt.allIDs)

			assert.Equal(t, len(tt.expected), s.Count())
			for _, id := range tt.expected {
				assert.True(t, s.IsSelected(id), "expected %s selected", id)
			}
		})
	}
}

func TestSet_ToggleAllEmptyList(t *testing.T) {
	s := NewSet()
	s.ToggleAll(nil)
	assert.Equal(t, 0, s.Count())
}

func TestSet_InsertionOrder(t *testing.T) {
	s := NewSet()
	s.Toggle("C")
	s.Toggle("A")
	s.Toggle("B")
	assert.Equal(t, []string{"C", "A", "B"}, s.IDs())

	s.Toggle("A")
	assert.Equal(t, []string{"C", "B"}, s.IDs())
}

func TestSet_Prune(t *testing.T) {
	s := NewSet()
	s.Toggle("A")
	s.Toggle("B")
	s.Toggle("C")

	s.Prune([]string{"A", "C", "D"})

	assert.Equal(t, []string{"A", "C"}, s.IDs())
	assert.False(t, s.IsSelected("B"))
}

func TestSet_Clear(t *testing.T) {
	s := NewSet()
	s.Toggle("A")
	s.Toggle("B")

	s.Clear()

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.IDs())
}

func TestSet_EndToEndScenario(t *testing.T) {
	s := NewSet()

	s.Toggle("A")
	s.Toggle("B")
	assert.Equal(t, []string{"A", "B"}, s.IDs())

	// 2 of 3 selected: toggle-all must land on full selection
	s.ToggleAll([]string{"A", "B", "C"})
	assert.Equal(t, 3, s.Count())
	assert.True(t, s.IsSelected("C"))

	// All 3 selected: toggle-all clears
	s.ToggleAll([]string{"A", "B", "C"})
	assert.Equal(t, 0, s.Count())
}

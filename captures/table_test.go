package captures

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/domino14/capgrid/board"
)

func TestComboCounts(t *testing.T) {
	is := is.New(t)
	tb := NewTable()
	for pos := 0; pos < board.NumCells; pos++ {
		nc := len(Neighbors(pos))
		switch nc {
		case 2:
			is.Equal(tb.Count(pos), 1)
		case 3:
			is.Equal(tb.Count(pos), 4)
		case 4:
			is.Equal(tb.Count(pos), 11)
			is.Equal(tb.Count(pos), combin.Binomial(4, 2)+combin.Binomial(4, 3)+1)
		default:
			t.Fatalf("unexpected neighbor count %d at %d", nc, pos)
		}
	}
}

func TestNeighborTopology(t *testing.T) {
	is := is.New(t)
	counts := make([]int, board.NumCells)
	for pos := range counts {
		counts[pos] = len(Neighbors(pos))
		for _, n := range Neighbors(pos) {
			// adjacency is symmetric
			is.True(contains(Neighbors(n), pos))
		}
	}
	is.Equal(counts, []int{2, 3, 2, 3, 4, 3, 2, 3, 2})
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func TestGenerationOrder(t *testing.T) {
	tb := NewTable()
	assert.Equal(t, []Combo{
		{1, 3}, {1, 5}, {1, 7}, {3, 5}, {3, 7}, {5, 7},
		{1, 3, 5}, {1, 3, 7}, {1, 5, 7}, {3, 5, 7},
		{1, 3, 5, 7},
	}, tb.For(4))
	assert.Equal(t, []Combo{{0, 2}, {0, 4}, {2, 4}, {0, 2, 4}}, tb.For(1))
	assert.Equal(t, []Combo{{1, 3}}, tb.For(0))
	assert.Equal(t, []Combo{{5, 7}}, tb.For(8))
}

func TestTablesAreIndependentAndStable(t *testing.T) {
	a := NewTable()
	b := NewTable()
	for pos := 0; pos < board.NumCells; pos++ {
		assert.Equal(t, a.For(pos), b.For(pos))
	}
}

func TestCapturable(t *testing.T) {
	is := is.New(t)
	s := board.FromCells([board.NumCells]uint8{0, 1, 0, 2, 0, 5, 0, 6, 0})

	sum, ok := Combo{1, 3}.Capturable(s)
	is.True(ok)
	is.Equal(sum, uint8(3))

	sum, ok = Combo{1, 5}.Capturable(s)
	is.True(ok)
	is.Equal(sum, uint8(6))

	_, ok = Combo{1, 7}.Capturable(s)
	is.True(!ok) // 7 > threshold

	_, ok = Combo{0, 1}.Capturable(s)
	is.True(!ok) // cell 0 is empty

	sum, ok = Combo{0, 1}.Sum(s)
	is.True(!ok)
	is.Equal(sum, uint8(0))
}

package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpineLookups(t *testing.T) {
	a := &Section{ID: "a"}
	b := &Section{ID: "b"}
	dup := &Section{ID: "a"}
	spine := NewSpine(a, b, dup)

	require.Equal(t, 3, spine.Len())
	assert.Same(t, b, spine.At(1))
	assert.Nil(t, spine.At(-1))
	assert.Nil(t, spine.At(3))

	assert.Equal(t, 2, spine.IndexOf(dup), "IndexOf matches by identity")
	assert.Equal(t, NotFound, spine.IndexOf(&Section{ID: "a"}))
	assert.Equal(t, NotFound, spine.IndexOf(nil))

	assert.Equal(t, 0, spine.IndexOfID("a"), "IndexOfID returns the first match")
	assert.Equal(t, NotFound, spine.IndexOfID("missing"))
	assert.Equal(t, NotFound, spine.IndexOfID(""))
}

func TestSpineGrowsAndShrinks(t *testing.T) {
	spine := NewSpine(&Section{ID: "one"})
	spine.Append(&Section{ID: "two"}, &Section{ID: "three"})
	require.Equal(t, 3, spine.Len())

	spine.Truncate(1)
	require.Equal(t, 1, spine.Len())
	assert.Equal(t, "one", spine.At(0).ID)

	spine.Truncate(-5)
	assert.Equal(t, 0, spine.Len())
}

func TestSpineSectionsIsACopy(t *testing.T) {
	spine := NewSpine(&Section{ID: "one"}, &Section{ID: "two"})
	sections := spine.Sections()
	sections[0] = &Section{ID: "replaced"}
	assert.Equal(t, "one", spine.At(0).ID)
}

func TestSpineConcurrentReaders(t *testing.T) {
	spine := NewSpine(&Section{ID: "one"}, &Section{ID: "two"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = spine.IndexOfID("two")
				_ = spine.At(j % 2)
			}
		}()
	}
	spine.Append(&Section{ID: "three"})
	wg.Wait()
	assert.Equal(t, 3, spine.Len())
}

func TestBookTitleFallback(t *testing.T) {
	book := &Book{Spine: NewSpine(&Section{ID: "intro", Title: "Introduction"})}
	assert.Equal(t, "Introduction", book.Title())

	book.Metadata.Title = "Three Men in a Boat"
	assert.Equal(t, "Three Men in a Boat", book.Title())

	assert.Equal(t, "Untitled", (&Book{}).Title())
	assert.Equal(t, "", (*Section)(nil).DisplayTitle())
}

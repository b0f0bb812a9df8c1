package vdom

import (
	"fmt"
	"testing"
)

func benchList(n int) *Element {
	return H(TagUl, nil, Repeat(n, func(i int) Node {
		return H(TagLi, Attrs{KeyAttr: fmt.Sprint(i), "class": "item"}, Textf("item %d", i))
	}))
}

func BenchmarkH(b *testing.B) {
	b.Run("simple div", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = H(TagDiv, Attrs{"class": "card"})
		}
	})

	b.Run("with children", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = H(TagDiv, Attrs{"class": "card"},
				H(TagH1, nil, "Title"),
				H(TagP, nil, "Content", i),
			)
		}
	})

	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("list %d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = benchList(size)
			}
		})
	}
}

func BenchmarkClassify(b *testing.B) {
	prev := H(TagDiv, Attrs{"class": "a", "id": "x"}, "text")
	same := H(TagDiv, Attrs{"class": "a", "id": "x"}, "text")
	changed := H(TagDiv, Attrs{"class": "b", "id": "x"}, "text")

	b.Run("unchanged", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Classify(prev, same)
		}
	})
	b.Run("attributes", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Classify(prev, changed)
		}
	})
	b.Run("text", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Classify(Str("a"), Str("b"))
		}
	})
}

package weakcache_test

import (
	"fmt"

	"github.com/dacapoday/smart/weakcache"
)

type font struct {
	name string
}

func Example() {
	cache, err := weakcache.New[font](weakcache.Config{Capacity: 16})
	if err != nil {
		panic(err)
	}
	defer cache.Close()

	loads := 0
	load := func() (*font, error) {
		loads++
		return &font{name: "mono"}, nil
	}

	a, _ := cache.Acquire("mono", load)
	b, _ := cache.Acquire("mono", load)
	fmt.Println(a.Get() == b.Get(), loads)

	a.Reset()
	b.Reset()

	c, _ := cache.Acquire("mono", load)
	defer c.Reset()
	fmt.Println(loads)

	// Output:
	// true 1
	// 2
}

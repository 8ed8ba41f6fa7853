package unique_test

import (
	"fmt"

	"github.com/dacapoday/smart/unique"
)

func Example() {
	p := new(int)
	*p = 1

	up1 := unique.New(p)
	up2 := up1.Move()
	fmt.Println(up1.Valid(), *up2.Get())

	data := up2.Release()
	fmt.Println(up2.Valid(), *data)

	// Output:
	// false 1
	// false 1
}

package set_test

import (
	"fmt"
	"slices"

	"github.com/ardnew/flagset/set"
)

func ExampleBits() {
	const (
		A uint8 = 0b01
		B uint8 = 0b10
	)

	fmt.Printf("%#b\n", set.Of(set.Bits[uint8]()))
	fmt.Printf("%#b\n", set.Of(set.Bits[uint8](), A))
	fmt.Printf("%#b\n", set.Of(set.Bits[uint8](), A, B))
	// Output:
	// 0b0
	// 0b1
	// 0b11
}

func ExampleMembers() {
	s := set.Members[string]().Build(slices.Values([]string{"Horned", "Winged", "Horned"}))

	fmt.Println(set.Sorted(s))
	// Output:
	// [Horned Winged]
}

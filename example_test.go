package complexmap_test

import (
	"fmt"

	"go.llib.dev/complexmap"
)

func ExampleMap() {
	type Conn struct{ Addr string }

	primary := &Conn{Addr: "10.0.0.1"}
	replica := &Conn{Addr: "10.0.0.1"}

	m, err := complexmap.New([]*Conn{primary, replica}, []string{"primary", "replica"})
	if err != nil {
		panic(err)
	}

	role, _ := m.Get(replica)
	fmt.Println(role)

	for m.Rewind(); m.Valid(); m.Next() {
		role, _ := m.Current()
		fmt.Println(m.Key().Addr, role)
	}
	// Output:
	// replica
	// 10.0.0.1 primary
	// 10.0.0.1 replica
}

func ExampleMap_Seek() {
	m, _ := complexmap.New([]string{"a", "b", "c"}, []int{1, 2, 3})
	if err := m.Seek("b"); err != nil {
		panic(err)
	}
	for ; m.Valid(); m.Next() {
		v, _ := m.Current()
		fmt.Println(m.Key(), v)
	}
	// Output:
	// b 2
	// c 3
}

func ExampleMap_All() {
	key := []int{1, 2}
	m, _ := complexmap.New[[]int, string](nil, nil)
	m.Set(key, "by instance")
	m.Set([]int{1, 2}, "another instance")

	for k, v := range m.All() {
		fmt.Println(k, v)
	}
	// Output:
	// [1 2] by instance
	// [1 2] another instance
}

func ExampleStrict() {
	m, _ := complexmap.New([]string{"a", "b", "c"}, []int{1, 2, 3}, complexmap.Strict[string]())
	for m.Rewind(); m.Valid(); m.Next() {
		if m.Key() == "b" {
			_ = m.Delete("b")
			continue
		}
		fmt.Println(m.Key())
	}
	// Output:
	// a
	// c
}

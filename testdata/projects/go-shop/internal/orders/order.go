package orders

import "fmt"

type Order struct {
	Total float64
}

func (o Order) Print() {
	fmt.Println(o.Total)
}

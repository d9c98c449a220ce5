package runtime

import "fmt"

// Add sums two numbers. Anything else on either side is an error.
func Add(left Value, right Value) (Number, error) {
	switch l := left.(type) {
	case Number:
		switch r := right.(type) {
		case Number:
			return l + r, nil
		case *Function:
			return 0, fmt.Errorf("'+' only supported between numbers, right operand is %s", r)
		}
	case *Function:
		return 0, fmt.Errorf("'+' only supported between numbers, left operand is %s", l)
	}
	return 0, fmt.Errorf("'+' only supported between numbers")
}

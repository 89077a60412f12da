package metrics

import "fmt"

func errorType(err error) string {
	return fmt.Sprintf("%T", err)
}
